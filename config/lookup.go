package config

import "fmt"

// LookupConfig selects the external map-service endpoints.
type LookupConfig struct {
	// Provider is "overpass" or "none". With "none" plans carry core
	// tasks only.
	Provider string `json:"provider"`
	// OverpassURL overrides the Overpass API endpoint.
	OverpassURL string `json:"overpass_url"`
	// NominatimURL overrides the Nominatim geocoding endpoint.
	NominatimURL string `json:"nominatim_url"`
	// City biases geocoding queries, appended to every address.
	City string `json:"city"`
	// ResultsPerCategory caps Overpass results per category query.
	ResultsPerCategory int `json:"results_per_category"`
}

// SetDefaults applies the public OpenStreetMap endpoints.
func (c *LookupConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = "overpass"
	}
	if c.City == "" {
		c.City = "Hong Kong"
	}
	if c.ResultsPerCategory == 0 {
		c.ResultsPerCategory = 10
	}
}

// Validate checks the provider selection.
func (c LookupConfig) Validate() error {
	if c.Provider != "overpass" && c.Provider != "none" {
		return fmt.Errorf("unknown lookup provider %q", c.Provider)
	}
	if c.ResultsPerCategory < 1 {
		return fmt.Errorf("results_per_category must be at least 1")
	}
	return nil
}
