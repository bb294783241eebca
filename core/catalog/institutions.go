package catalog

import "github.com/relokit/settler/core/model"

// DefaultInstitutions is the fixed-location table for the default
// (Hong Kong) deployment: places that do not depend on where the
// customer ends up living.
func DefaultInstitutions() map[string]model.Location {
	return map[string]model.Location{
		"airport": {
			ID: "loc-hkia", Name: "Hong Kong International Airport",
			Address: "1 Sky Plaza Road, Lantau", State: model.LocationResolved,
			Lat: 22.3080, Lon: 113.9185, Rating: 4.5, Category: "airport",
		},
		"immigration-office": {
			ID: "loc-immigration", Name: "Immigration Department",
			Address: "Immigration Tower, 7 Gloucester Road, Wan Chai", State: model.LocationResolved,
			Lat: 22.2783, Lon: 114.1747, Rating: 3.5, Category: "government",
		},
		"transport-department": {
			ID: "loc-transport-dept", Name: "Transport Department",
			Address: "3 Kai Shing Street, Kowloon Bay", State: model.LocationResolved,
			Lat: 22.3227, Lon: 114.2095, Rating: 3.8, Category: "government",
		},
		"government-office": {
			ID: "loc-revenue-tower", Name: "Inland Revenue Centre",
			Address: "5 Concorde Road, Kai Tak", State: model.LocationResolved,
			Lat: 22.3247, Lon: 114.1996, Rating: 3.6, Category: "government",
		},
		"banking-district": {
			ID: "loc-central-banking", Name: "Central Banking District",
			Address: "Central, Hong Kong", State: model.LocationResolved,
			Lat: 22.2810, Lon: 114.1580, Rating: 4.0, Category: "banking",
		},
		"mtr-central": {
			ID: "loc-mtr-central", Name: "Central MTR Station",
			Address: "Central, Hong Kong Island", State: model.LocationResolved,
			Lat: 22.2813, Lon: 114.1580, Rating: 4.5, Category: "transit",
		},
		"mobile-shop": {
			ID: "loc-mobile-cwb", Name: "Mobile Service Shop, Causeway Bay",
			Address: "Causeway Bay, Hong Kong", State: model.LocationResolved,
			Lat: 22.2800, Lon: 114.1850, Rating: 4.2, Category: "retail",
		},
		"hospital": {
			ID: "loc-ruttonjee", Name: "Ruttonjee Hospital",
			Address: "266 Queen's Road East, Wan Chai", State: model.LocationResolved,
			Lat: 22.2740, Lon: 114.1755, Rating: 4.0, Category: "healthcare",
		},
	}
}

// areaCoordinates maps common residential areas to coordinates used when
// a task is anchored to the customer's preferred area.
var areaCoordinates = map[string][2]float64{
	"Wan Chai":      {22.2783, 114.1747},
	"Sheung Wan":    {22.2850, 114.1550},
	"Central":       {22.2810, 114.1580},
	"Causeway Bay":  {22.2800, 114.1850},
	"Tsim Sha Tsui": {22.2950, 114.1720},
	"Admiralty":     {22.2780, 114.1650},
	"Mid-Levels":    {22.2750, 114.1500},
}

// defaultArea is used when the profile names no preferred area or names
// one the table does not know.
const defaultArea = "Wan Chai"

// AreaLocation returns a resolved location for a preferred residential
// area, falling back to the default area for unknown names.
func AreaLocation(area string) model.Location {
	name := area
	coords, ok := areaCoordinates[area]
	if !ok {
		name = defaultArea
		coords = areaCoordinates[defaultArea]
	}
	return model.Location{
		ID:       "loc-area-" + slug(name),
		Name:     name,
		Address:  name + ", Hong Kong",
		State:    model.LocationResolved,
		Lat:      coords[0],
		Lon:      coords[1],
		Rating:   4.0,
		Category: "residential",
	}
}

// Districts lists the district names used for extended-task
// deduplication by (category, district).
func Districts() []string {
	return []string{
		"Wan Chai", "Central", "Admiralty", "Causeway Bay", "Sheung Wan",
		"Mid-Levels", "Quarry Bay", "Tai Koo", "Tsim Sha Tsui", "Mong Kok",
		"Yau Ma Tei", "Jordan", "Kowloon", "Sha Tin", "Tuen Mun",
	}
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
