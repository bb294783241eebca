package model

import (
	"fmt"
	"time"
)

// TaskKind separates mandatory settlement activities from POI-derived
// convenience suggestions.
type TaskKind int

const (
	KindCore TaskKind = iota
	KindExtended
)

// String returns a human-readable representation of the task kind.
func (k TaskKind) String() string {
	switch k {
	case KindCore:
		return "core"
	case KindExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Priority ranks tasks within a day.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Category names a prerequisite a task can require or satisfy. The set is
// closed: catalog validation rejects any category not listed here, so a
// typo in a template fails at startup instead of at plan time.
type Category string

const (
	CatArrived       Category = "has-arrived"
	CatAccommodation Category = "has-accommodation"
	CatLocalPhone    Category = "has-local-phone"
	CatTransportCard Category = "has-transport-card"
	CatViewedHousing Category = "has-viewed-housing"
	CatBankAccount   Category = "has-bank-account"
	CatHousing       Category = "has-housing"
	CatTaxID         Category = "has-tax-id"
	CatResidentID    Category = "has-resident-id"
	CatInsurance     Category = "has-health-insurance"
)

// Categories lists every known prerequisite category.
func Categories() []Category {
	return []Category{
		CatArrived, CatAccommodation, CatLocalPhone, CatTransportCard,
		CatViewedHousing, CatBankAccount, CatHousing, CatTaxID,
		CatResidentID, CatInsurance,
	}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// SameDaySatisfiable reports whether a requirement on c may be met by a
// provider scheduled on the same day. Arrival-day chains (pickup, then
// check-in, then errands) would otherwise spread over three days; every
// other category needs at least one full day between provider and
// dependent.
func (c Category) SameDaySatisfiable() bool {
	switch c {
	case CatArrived, CatAccommodation, CatLocalPhone:
		return true
	default:
		return false
	}
}

// Task is a single scheduled activity. Day is an offset in days from the
// profile's arrival date.
type Task struct {
	ID          string
	TemplateID  string // catalog template key, empty for extended tasks
	Title       string
	Description string
	Kind        TaskKind
	Day         int
	Priority    Priority
	Duration    time.Duration
	Documents   []string
	Requires    []Category
	Provides    []Category
	Location    Location

	// UserSpecified marks a core task whose day came from a profile key
	// date. Such days are kept free of extended suggestions.
	UserSpecified bool

	// Extended tasks carry the recommendation rationale and a reference
	// to the core task they were generated around.
	Reason   string
	AnchorID string
}

// EndHour estimates the hour of day the task finishes, assuming activities
// start at 10:00. Used by the same-day expansion cutoff.
func (t Task) EndHour() int {
	return 10 + int(t.Duration.Hours())
}

// Validate checks structural task invariants.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task %q has no id", t.Title)
	}
	if t.Day < 0 {
		return fmt.Errorf("task %s has negative day offset %d", t.ID, t.Day)
	}
	if t.Kind == KindExtended && t.AnchorID == "" {
		return fmt.Errorf("extended task %s has no anchor", t.ID)
	}
	return nil
}
