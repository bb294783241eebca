// Package poi defines the external lookup capabilities the planner
// depends on. Both are injected so scheduling runs stay deterministic
// under test; the HTTP-backed implementations live in infra/poi.
package poi

import "context"

// Candidate is a point of interest returned by a nearby search.
type Candidate struct {
	ID       string
	Name     string
	Address  string
	Lat      float64
	Lon      float64
	Rating   float64
	Category string
}

// Source searches points of interest around a coordinate. Categories use
// the planner's vocabulary ("supermarket", "pharmacy", ...); mapping to
// provider tags is the implementation's concern.
type Source interface {
	SearchNearby(ctx context.Context, lat, lon float64, radiusM int, categories []string) ([]Candidate, error)
}

// GeocodeResult is a resolved address.
type GeocodeResult struct {
	DisplayName string
	Lat         float64
	Lon         float64
}

// ErrNotFound is returned by Geocoder implementations when the address
// resolves to nothing; callers treat it as a recoverable miss rather
// than a transport failure.
type notFoundError struct{ address string }

func (e notFoundError) Error() string { return "geocode: no result for " + e.address }

// NotFound builds the sentinel miss error for an address.
func NotFound(address string) error { return notFoundError{address: address} }

// IsNotFound reports whether err is a geocoding miss.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}
