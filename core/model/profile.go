package model

import (
	"fmt"
	"time"
)

// CustomerProfile is the read-only snapshot a scheduling run works from.
// The dialogue layer owns its lifecycle; the planner never mutates it.
type CustomerProfile struct {
	Name           string    `json:"name"`
	ArrivalDate    time.Time `json:"arrival_date"`
	OfficeAddress  string    `json:"office_address,omitempty"`
	Office         Location  `json:"office,omitempty"`
	HousingBudget  int       `json:"housing_budget,omitempty"`
	PreferredAreas []string  `json:"preferred_areas,omitempty"`
	Bedrooms       int       `json:"bedrooms,omitempty"`
	FamilySize     int       `json:"family_size,omitempty"`
	HasChildren    bool      `json:"has_children,omitempty"`
	NeedsVehicle   bool      `json:"needs_vehicle,omitempty"`
	RemoteWork     bool      `json:"remote_work,omitempty"`
	TempStayDays   int       `json:"temp_stay_days,omitempty"`
	// KeyDates maps a catalog template key to a user-stated date in
	// YYYY-MM-DD form ("property-viewing" -> "2026-09-04").
	KeyDates map[string]string `json:"key_dates,omitempty"`
}

// KeyDay converts the user-stated date for a template into a day offset
// from the arrival date. The second return value is false when the user
// gave no date, or the date does not parse, or it falls before arrival.
func (p CustomerProfile) KeyDay(templateID string) (int, bool) {
	raw, ok := p.KeyDates[templateID]
	if !ok || raw == "" {
		return 0, false
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return 0, false
	}
	offset := int(d.Sub(p.ArrivalDate).Hours() / 24)
	if offset < 0 {
		return 0, false
	}
	return offset, true
}

// Validate checks the minimum a scheduling run needs.
func (p CustomerProfile) Validate() error {
	if p.ArrivalDate.IsZero() {
		return fmt.Errorf("profile has no arrival date")
	}
	if p.FamilySize < 0 {
		return fmt.Errorf("family size must be non-negative")
	}
	return nil
}

// BudgetTier buckets the housing budget the way the recommender scores it.
type BudgetTier int

const (
	BudgetUnknown BudgetTier = iota
	BudgetLow
	BudgetHigh
)

// Tier classifies the monthly housing budget. The threshold mirrors the
// recommendation rules: below it markets and convenience stores score up,
// above it cafes and gyms do.
func (p CustomerProfile) Tier() BudgetTier {
	switch {
	case p.HousingBudget <= 0:
		return BudgetUnknown
	case p.HousingBudget < 25000:
		return BudgetLow
	default:
		return BudgetHigh
	}
}
