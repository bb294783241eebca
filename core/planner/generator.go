package planner

import (
	"github.com/relokit/settler/core/catalog"
	"github.com/relokit/settler/core/logger"
	"github.com/relokit/settler/core/model"
)

// Generator instantiates catalog templates against a customer profile.
// Task identifiers are derived from template ids so that two runs over
// the same profile produce identical tasks.
type Generator struct {
	cat *catalog.Catalog
	log logger.Logger
}

// NewGenerator returns a Generator over a validated catalog.
func NewGenerator(cat *catalog.Catalog, log logger.Logger) *Generator {
	return &Generator{cat: cat, log: log}
}

// Generate produces the core tasks for the profile. Conditional templates
// are skipped unless the corresponding profile flag is set; user-datable
// templates are pinned to profile key dates when present.
func (g *Generator) Generate(profile model.CustomerProfile) []model.Task {
	var tasks []model.Task
	for _, tmpl := range g.cat.Templates() {
		switch tmpl.Condition {
		case catalog.IfHasChildren:
			if !profile.HasChildren {
				continue
			}
		case catalog.IfNeedsVehicle:
			if !profile.NeedsVehicle {
				continue
			}
		}

		task := g.instantiate(tmpl, profile)
		tasks = append(tasks, task)
	}
	g.log.Debugw("core tasks generated", map[string]any{
		"count":   len(tasks),
		"profile": profile.Name,
	})
	return tasks
}

// InstantiateTemplate builds a task from a single template, used by the
// resolver's auto-insert repair path.
func (g *Generator) InstantiateTemplate(id string, profile model.CustomerProfile) (model.Task, bool) {
	tmpl, ok := g.cat.Template(id)
	if !ok {
		return model.Task{}, false
	}
	return g.instantiate(tmpl, profile), true
}

func (g *Generator) instantiate(tmpl catalog.Template, profile model.CustomerProfile) model.Task {
	day := tmpl.DayOffset
	userSpecified := false
	if tmpl.UserDatable {
		if keyDay, ok := profile.KeyDay(tmpl.ID); ok {
			day = keyDay
			userSpecified = true
		}
	}

	return model.Task{
		ID:            "task-" + tmpl.ID,
		TemplateID:    tmpl.ID,
		Title:         tmpl.Title,
		Description:   tmpl.Description,
		Kind:          model.KindCore,
		Day:           day,
		Priority:      tmpl.Priority,
		Duration:      tmpl.Duration,
		Documents:     tmpl.Documents,
		Requires:      tmpl.Requires,
		Provides:      tmpl.Provides,
		Location:      g.locationFor(tmpl, profile),
		UserSpecified: userSpecified,
	}
}

func (g *Generator) locationFor(tmpl catalog.Template, profile model.CustomerProfile) model.Location {
	switch tmpl.Anchor {
	case catalog.AnchorInstitution:
		loc, _ := g.cat.Institution(tmpl.Institution)
		return loc
	case catalog.AnchorArea:
		area := ""
		if len(profile.PreferredAreas) > 0 {
			area = profile.PreferredAreas[0]
		}
		return catalog.AreaLocation(area)
	case catalog.AnchorOffice:
		if profile.Office.Resolved() {
			return profile.Office
		}
		if profile.OfficeAddress != "" {
			return model.PendingLocation("Office", profile.OfficeAddress)
		}
		return model.Location{State: model.LocationNone}
	default:
		return model.Location{State: model.LocationNone}
	}
}
