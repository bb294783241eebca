// Package catalog holds the static definitions every plan is generated
// from: phase-organized core task templates, their dependency categories
// and the fixed institutions they happen at. The catalog is validated
// once at load; a malformed template is a startup failure, never a
// per-request one.
package catalog

import (
	"fmt"
	"time"

	"github.com/relokit/settler/core/model"
)

// Phase groups templates by settlement stage. Each phase owns a default
// day window; template day offsets must fall inside it.
type Phase int

const (
	PhaseArrival Phase = iota
	PhaseHousing
	PhaseIdentity
	PhaseDailyLife
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseArrival:
		return "arrival"
	case PhaseHousing:
		return "housing"
	case PhaseIdentity:
		return "identity-banking"
	case PhaseDailyLife:
		return "daily-life"
	default:
		return "unknown"
	}
}

// Window returns the inclusive day range a phase may schedule into.
func (p Phase) Window() (first, last int) {
	switch p {
	case PhaseArrival:
		return 0, 2
	case PhaseHousing:
		return 3, model.DefaultHorizonDays
	case PhaseIdentity:
		return 7, model.DefaultHorizonDays
	case PhaseDailyLife:
		return 14, model.DefaultHorizonDays
	default:
		return 0, model.DefaultHorizonDays
	}
}

// Condition gates a template on a profile flag.
type Condition int

const (
	Always Condition = iota
	IfHasChildren
	IfNeedsVehicle
)

// Anchor selects where a template's location comes from.
type Anchor int

const (
	// AnchorNone leaves the task intentionally without a location.
	AnchorNone Anchor = iota
	// AnchorInstitution uses a fixed institution from the locations table.
	AnchorInstitution
	// AnchorArea places the task in the profile's first preferred area.
	AnchorArea
	// AnchorOffice uses the profile's office location, geocoding the
	// office address when coordinates are missing.
	AnchorOffice
)

// Template is a core task definition prior to instantiation.
type Template struct {
	ID          string
	Title       string
	Description string
	Phase       Phase
	DayOffset   int
	Priority    model.Priority
	Duration    time.Duration
	Documents   []string
	Requires    []model.Category
	Provides    []model.Category
	Anchor      Anchor
	Institution string // institutions table key, only with AnchorInstitution
	Condition   Condition
	// UserDatable templates may be pinned to a profile key date; the
	// resulting task is treated as user-specified.
	UserDatable bool
}

// Catalog is a validated set of templates plus the institution table.
type Catalog struct {
	templates    []Template
	institutions map[string]model.Location
	byID         map[string]Template
	providers    map[model.Category][]string
}

// ConfigurationError reports a malformed catalog. It is fatal at load.
type ConfigurationError struct {
	TemplateID string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.TemplateID == "" {
		return "catalog: " + e.Reason
	}
	return fmt.Sprintf("catalog: template %s: %s", e.TemplateID, e.Reason)
}

// DependencyCycleError reports a cyclic dependency declaration between
// templates. Like ConfigurationError it aborts startup.
type DependencyCycleError struct {
	Cycle []string
}

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("catalog: dependency cycle through templates %v", e.Cycle)
}

// New validates the given templates and institution table and returns a
// Catalog. Validation covers identifier uniqueness, category vocabulary,
// phase windows, provider existence and dependency cycles.
func New(templates []Template, institutions map[string]model.Location) (*Catalog, error) {
	c := &Catalog{
		templates:    templates,
		institutions: institutions,
		byID:         make(map[string]Template, len(templates)),
		providers:    make(map[model.Category][]string),
	}
	for _, t := range templates {
		if t.ID == "" {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("template %q has no id", t.Title)}
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, &ConfigurationError{TemplateID: t.ID, Reason: "duplicate id"}
		}
		if t.Title == "" {
			return nil, &ConfigurationError{TemplateID: t.ID, Reason: "missing title"}
		}
		first, last := t.Phase.Window()
		if t.DayOffset < first || t.DayOffset > last {
			return nil, &ConfigurationError{TemplateID: t.ID,
				Reason: fmt.Sprintf("day offset %d outside %s window %d-%d", t.DayOffset, t.Phase, first, last)}
		}
		if t.Duration <= 0 {
			return nil, &ConfigurationError{TemplateID: t.ID, Reason: "non-positive duration"}
		}
		for _, cat := range append(append([]model.Category{}, t.Requires...), t.Provides...) {
			if !cat.Valid() {
				return nil, &ConfigurationError{TemplateID: t.ID,
					Reason: fmt.Sprintf("unknown dependency category %q", cat)}
			}
		}
		if t.Anchor == AnchorInstitution {
			if _, ok := institutions[t.Institution]; !ok {
				return nil, &ConfigurationError{TemplateID: t.ID,
					Reason: fmt.Sprintf("unknown institution %q", t.Institution)}
			}
		}
		c.byID[t.ID] = t
		for _, cat := range t.Provides {
			c.providers[cat] = append(c.providers[cat], t.ID)
		}
	}
	for _, t := range templates {
		for _, cat := range t.Requires {
			if len(c.providers[cat]) == 0 {
				return nil, &ConfigurationError{TemplateID: t.ID,
					Reason: fmt.Sprintf("requires %s which no template provides", cat)}
			}
		}
	}
	if cycle := c.findCycle(); cycle != nil {
		return nil, &DependencyCycleError{Cycle: cycle}
	}
	return c, nil
}

// findCycle walks the template dependency graph (A depends on B when B
// provides a category A requires) and returns the first cycle found.
func (c *Catalog) findCycle() []string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(c.templates))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		switch state[id] {
		case visiting:
			// Trim the stack down to where the cycle starts.
			for i, s := range stack {
				if s == id {
					return append(append([]string{}, stack[i:]...), id)
				}
			}
			return append(append([]string{}, stack...), id)
		case done:
			return nil
		}
		state[id] = visiting
		stack = append(stack, id)
		t := c.byID[id]
		for _, cat := range t.Requires {
			for _, dep := range c.providers[cat] {
				if dep == id {
					// Self-provision does not satisfy own requirement.
					return append(append([]string{}, stack...), id)
				}
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, t := range c.templates {
		if cycle := visit(t.ID); cycle != nil {
			return cycle
		}
	}
	return nil
}

// Templates returns the templates in declaration order.
func (c *Catalog) Templates() []Template { return c.templates }

// Template looks up a template by id.
func (c *Catalog) Template(id string) (Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Institution looks up a fixed location by key.
func (c *Catalog) Institution(key string) (model.Location, bool) {
	loc, ok := c.institutions[key]
	return loc, ok
}

// Providers returns the template ids that satisfy a category.
func (c *Catalog) Providers(cat model.Category) []string {
	return c.providers[cat]
}
