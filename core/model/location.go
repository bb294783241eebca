package model

import (
	"encoding/json"
	"fmt"
)

// LocationState distinguishes a location that is intentionally absent from
// one that is still awaiting geocoding. The two were conflated in earlier
// plan formats, which made tasks silently lose their map markers.
type LocationState int

const (
	// LocationNone means the task deliberately has no location.
	LocationNone LocationState = iota
	// LocationPending means a profile-supplied address still has to be
	// geocoded (or geocoding failed and the address remains unresolved).
	LocationPending
	// LocationResolved means coordinates are known.
	LocationResolved
)

// String returns the wire representation of the state.
func (s LocationState) String() string {
	switch s {
	case LocationNone:
		return "none"
	case LocationPending:
		return "pending"
	case LocationResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Location is a place a task happens at: a fixed institution, a geocoded
// profile address or a POI candidate.
type Location struct {
	ID       string
	Name     string
	Address  string
	State    LocationState
	Lat      float64
	Lon      float64
	Rating   float64
	Category string
}

// ResolvedLocation builds a location with known coordinates.
func ResolvedLocation(id, name, address string, lat, lon float64) Location {
	return Location{ID: id, Name: name, Address: address, State: LocationResolved, Lat: lat, Lon: lon}
}

// PendingLocation builds a location that still needs geocoding.
func PendingLocation(name, address string) Location {
	return Location{Name: name, Address: address, State: LocationPending}
}

// Resolved reports whether coordinates are usable.
func (l Location) Resolved() bool { return l.State == LocationResolved }

type locationJSON struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Address  string   `json:"address,omitempty"`
	State    string   `json:"state"`
	Lat      *float64 `json:"latitude,omitempty"`
	Lon      *float64 `json:"longitude,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Category string   `json:"category,omitempty"`
}

// MarshalJSON keeps the none/pending/resolved distinction on the wire and
// only emits coordinates when they are actually resolved.
func (l Location) MarshalJSON() ([]byte, error) {
	out := locationJSON{
		ID:       l.ID,
		Name:     l.Name,
		Address:  l.Address,
		State:    l.State.String(),
		Rating:   l.Rating,
		Category: l.Category,
	}
	if l.State == LocationResolved {
		lat, lon := l.Lat, l.Lon
		out.Lat, out.Lon = &lat, &lon
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the tagged state.
func (l *Location) UnmarshalJSON(data []byte) error {
	var in locationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.ID = in.ID
	l.Name = in.Name
	l.Address = in.Address
	l.Rating = in.Rating
	l.Category = in.Category
	switch in.State {
	case "none", "":
		l.State = LocationNone
	case "pending":
		l.State = LocationPending
	case "resolved":
		l.State = LocationResolved
		if in.Lat == nil || in.Lon == nil {
			return fmt.Errorf("resolved location %q without coordinates", in.Name)
		}
		l.Lat, l.Lon = *in.Lat, *in.Lon
	default:
		return fmt.Errorf("unknown location state %q", in.State)
	}
	return nil
}
