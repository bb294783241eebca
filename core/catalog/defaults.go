package catalog

import (
	"time"

	"github.com/relokit/settler/core/model"
)

// DefaultTemplates is the built-in 30-day settlement knowledge base.
// Day offsets are phase defaults; the generator moves user-datable tasks
// to profile key dates and the resolver may push tasks later.
func DefaultTemplates() []Template {
	return []Template{
		// Phase 1: arrival and settling in (days 0-2).
		{
			ID: "airport-pickup", Title: "Airport Pickup",
			Description: "Arrange transportation from the airport to the temporary accommodation",
			Phase:       PhaseArrival, DayOffset: 0, Priority: model.PriorityHigh,
			Duration:  2 * time.Hour,
			Documents: []string{"Passport", "Visa", "Flight itinerary"},
			Provides:  []model.Category{model.CatArrived},
			Anchor:    AnchorInstitution, Institution: "airport",
		},
		{
			ID: "temp-checkin", Title: "Check in to Temporary Accommodation",
			Description: "Check in to the hotel or serviced apartment",
			Phase:       PhaseArrival, DayOffset: 0, Priority: model.PriorityHigh,
			Duration:  time.Hour,
			Documents: []string{"Passport", "Booking confirmation"},
			Requires:  []model.Category{model.CatArrived},
			Provides:  []model.Category{model.CatAccommodation},
			Anchor:    AnchorArea,
		},
		{
			ID: "sim-card", Title: "Get a Local SIM Card",
			Description: "Purchase and activate a local phone number; needed for nearly everything that follows",
			Phase:       PhaseArrival, DayOffset: 0, Priority: model.PriorityHigh,
			Duration:  time.Hour,
			Documents: []string{"Passport"},
			Provides:  []model.Category{model.CatLocalPhone},
			Anchor:    AnchorInstitution, Institution: "mobile-shop",
		},
		{
			ID: "essential-supplies", Title: "Buy Essential Supplies",
			Description: "Stock up on food, toiletries and basic necessities near the accommodation",
			Phase:       PhaseArrival, DayOffset: 1, Priority: model.PriorityHigh,
			Duration: 2 * time.Hour,
			Requires: []model.Category{model.CatAccommodation},
			Anchor:   AnchorArea,
		},
		{
			ID: "transport-card", Title: "Get a Transportation Card",
			Description: "Buy a stored-value transit card and learn the metro and bus routes",
			Phase:       PhaseArrival, DayOffset: 1, Priority: model.PriorityHigh,
			Duration: time.Hour,
			Requires: []model.Category{model.CatAccommodation},
			Provides: []model.Category{model.CatTransportCard},
			Anchor:   AnchorInstitution, Institution: "mtr-central",
		},
		{
			ID: "office-visit", Title: "Visit the Office",
			Description: "Visit the workplace and time the commute",
			Phase:       PhaseArrival, DayOffset: 2, Priority: model.PriorityMedium,
			Duration: 2 * time.Hour,
			Requires: []model.Category{model.CatTransportCard},
			Anchor:   AnchorOffice,
		},

		// Phase 2: housing (day 3 onward).
		{
			ID: "property-viewing", Title: "Property Viewing",
			Description: "View shortlisted rental properties in the preferred areas",
			Phase:       PhaseHousing, DayOffset: 3, Priority: model.PriorityHigh,
			Duration:  4 * time.Hour,
			Documents: []string{"Passport", "Employment letter", "Proof of income"},
			Requires:  []model.Category{model.CatTransportCard},
			Provides:  []model.Category{model.CatViewedHousing},
			Anchor:    AnchorArea, UserDatable: true,
		},
		{
			ID: "lease-signing", Title: "Sign the Rental Contract",
			Description: "Sign the lease and pay the deposit",
			Phase:       PhaseHousing, DayOffset: 8, Priority: model.PriorityHigh,
			Duration:  2 * time.Hour,
			Documents: []string{"Passport", "Employment letter", "Deposit funds"},
			Requires:  []model.Category{model.CatViewedHousing, model.CatBankAccount},
			Provides:  []model.Category{model.CatHousing},
			Anchor:    AnchorArea,
		},

		// Phase 3: identity and banking (day 7 onward).
		{
			ID: "bank-account", Title: "Open a Bank Account",
			Description: "Open a local current account at one of the major banks",
			Phase:       PhaseIdentity, DayOffset: 7, Priority: model.PriorityHigh,
			Duration:  2 * time.Hour,
			Documents: []string{"Passport", "Proof of address", "Employment letter"},
			Requires:  []model.Category{model.CatLocalPhone},
			Provides:  []model.Category{model.CatBankAccount},
			Anchor:    AnchorInstitution, Institution: "banking-district", UserDatable: true,
		},
		{
			ID: "tax-registration", Title: "Register for a Tax File Number",
			Description: "Register with the revenue authority",
			Phase:       PhaseIdentity, DayOffset: 9, Priority: model.PriorityMedium,
			Duration:  3 * time.Hour,
			Documents: []string{"Passport", "Employment letter"},
			Requires:  []model.Category{model.CatBankAccount},
			Provides:  []model.Category{model.CatTaxID},
			Anchor:    AnchorInstitution, Institution: "government-office",
		},
		{
			ID: "resident-id", Title: "Apply for a Resident Identity Card",
			Description: "Apply for the local resident identity card at the immigration office",
			Phase:       PhaseIdentity, DayOffset: 10, Priority: model.PriorityHigh,
			Duration:  2 * time.Hour,
			Documents: []string{"Passport", "Visa", "Employment letter", "Proof of address"},
			Requires:  []model.Category{model.CatHousing},
			Provides:  []model.Category{model.CatResidentID},
			Anchor:    AnchorInstitution, Institution: "immigration-office", UserDatable: true,
		},

		// Phase 4: daily life (day 14 onward).
		{
			ID: "utilities-setup", Title: "Set Up Utilities",
			Description: "Activate water, electricity and gas for the new residence",
			Phase:       PhaseDailyLife, DayOffset: 14, Priority: model.PriorityMedium,
			Duration: 2 * time.Hour,
			Requires: []model.Category{model.CatHousing, model.CatBankAccount},
			Anchor:   AnchorNone,
		},
		{
			ID: "internet-setup", Title: "Set Up Internet",
			Description: "Order a broadband connection for the new residence",
			Phase:       PhaseDailyLife, DayOffset: 15, Priority: model.PriorityMedium,
			Duration: 2 * time.Hour,
			Requires: []model.Category{model.CatHousing},
			Anchor:   AnchorNone,
		},
		{
			ID: "health-insurance", Title: "Register for Health Insurance",
			Description: "Enroll in the local health insurance scheme",
			Phase:       PhaseDailyLife, DayOffset: 16, Priority: model.PriorityMedium,
			Duration:  2 * time.Hour,
			Documents: []string{"Resident ID", "Bank account details"},
			Requires:  []model.Category{model.CatResidentID, model.CatBankAccount},
			Provides:  []model.Category{model.CatInsurance},
			Anchor:    AnchorInstitution, Institution: "hospital",
		},
		{
			ID: "family-doctor", Title: "Register with a Family Doctor",
			Description: "Find and register with a local clinic",
			Phase:       PhaseDailyLife, DayOffset: 17, Priority: model.PriorityLow,
			Duration: 2 * time.Hour,
			Requires: []model.Category{model.CatInsurance},
			Anchor:   AnchorArea,
		},
		{
			ID: "school-registration", Title: "Register Children for School",
			Description: "Visit schools in the area and complete enrollment",
			Phase:       PhaseDailyLife, DayOffset: 18, Priority: model.PriorityHigh,
			Duration:  3 * time.Hour,
			Documents: []string{"Passports", "Proof of address", "Vaccination records"},
			Requires:  []model.Category{model.CatHousing},
			Anchor:    AnchorArea, Condition: IfHasChildren,
		},
		{
			ID: "license-conversion", Title: "Convert the Driver's License",
			Description: "Convert the foreign driver's license at the transport authority",
			Phase:       PhaseDailyLife, DayOffset: 20, Priority: model.PriorityMedium,
			Duration:  3 * time.Hour,
			Documents: []string{"Passport", "Resident ID", "Foreign driver's license"},
			Requires:  []model.Category{model.CatResidentID},
			Anchor:    AnchorInstitution, Institution: "transport-department",
			Condition: IfNeedsVehicle, UserDatable: true,
		},
	}
}

// Default returns the built-in catalog, validated.
func Default() (*Catalog, error) {
	return New(DefaultTemplates(), DefaultInstitutions())
}
