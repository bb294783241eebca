package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/planner"
	"github.com/relokit/settler/core/poi"
)

type ProfileDef struct {
	Name           string            `yaml:"name"`
	ArrivalDate    string            `yaml:"arrival_date"`
	OfficeAddress  string            `yaml:"office_address,omitempty"`
	HousingBudget  int               `yaml:"housing_budget,omitempty"`
	PreferredAreas []string          `yaml:"preferred_areas,omitempty"`
	FamilySize     int               `yaml:"family_size,omitempty"`
	HasChildren    bool              `yaml:"has_children,omitempty"`
	NeedsVehicle   bool              `yaml:"needs_vehicle,omitempty"`
	KeyDates       map[string]string `yaml:"key_dates,omitempty"`
}

func (p ProfileDef) ToModel() (model.CustomerProfile, error) {
	arrival, err := time.Parse("2006-01-02", p.ArrivalDate)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("arrival_date: %w", err)
	}
	return model.CustomerProfile{
		Name:           p.Name,
		ArrivalDate:    arrival,
		OfficeAddress:  p.OfficeAddress,
		HousingBudget:  p.HousingBudget,
		PreferredAreas: p.PreferredAreas,
		FamilySize:     p.FamilySize,
		HasChildren:    p.HasChildren,
		NeedsVehicle:   p.NeedsVehicle,
		KeyDates:       p.KeyDates,
	}, nil
}

// POIDef places a candidate relative to whichever anchor is queried, so
// every anchor in the scenario sees it nearby.
type POIDef struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Address   string  `yaml:"address"`
	LatOffset float64 `yaml:"lat_offset"`
	LonOffset float64 `yaml:"lon_offset"`
	Rating    float64 `yaml:"rating"`
	Category  string  `yaml:"category"`
}

func (d POIDef) ToCandidate() poi.Candidate {
	return poi.Candidate{
		ID:       d.ID,
		Name:     d.Name,
		Address:  d.Address,
		Lat:      d.LatOffset,
		Lon:      d.LonOffset,
		Rating:   d.Rating,
		Category: d.Category,
	}
}

type GeocodeDef struct {
	DisplayName string  `yaml:"display_name"`
	Lat         float64 `yaml:"lat"`
	Lon         float64 `yaml:"lon"`
}

type PlannerDef struct {
	MaxTasksPerDay    int    `yaml:"max_tasks_per_day,omitempty"`
	MissingDependency string `yaml:"missing_dependency,omitempty"`
}

func (p PlannerDef) ToConfig() planner.Config {
	cfg := planner.Config{MaxTasksPerDay: p.MaxTasksPerDay}
	if p.MissingDependency != "" {
		cfg.MissingDependency = planner.MissingDependencyPolicy(p.MissingDependency)
	}
	return cfg
}

type Expected struct {
	MaxPerDay   int      `yaml:"max_per_day"`
	MinCore     int      `yaml:"min_core,omitempty"`
	MinExtended int      `yaml:"min_extended,omitempty"`
	Templates   []string `yaml:"templates,omitempty"`
	// ClearDays lists day offsets that must carry no extended tasks,
	// typically days pinned by a key date.
	ClearDays []int `yaml:"clear_days,omitempty"`
}

type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Profile     ProfileDef  `yaml:"profile"`
	POIs        []POIDef    `yaml:"pois,omitempty"`
	Geocode     *GeocodeDef `yaml:"geocode,omitempty"`
	Planner     PlannerDef  `yaml:"planner,omitempty"`
	Expected    Expected    `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
