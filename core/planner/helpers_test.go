package planner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/relokit/settler/core/catalog"
	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/core/poi"
)

type nopLog struct{}

func (nopLog) Debugf(string, ...any)         {}
func (nopLog) Debugw(string, map[string]any) {}
func (nopLog) Infof(string, ...any)          {}
func (nopLog) Warnf(string, ...any)          {}
func (nopLog) Errorf(string, ...any)         {}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return cat
}

func testProfile() model.CustomerProfile {
	return model.CustomerProfile{
		Name:           "John Chen",
		ArrivalDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		OfficeAddress:  "25 Harbour Road, Wan Chai",
		HousingBudget:  30000,
		PreferredAreas: []string{"Wan Chai"},
		FamilySize:     1,
	}
}

// fakeSource returns canned candidates offset from the queried anchor,
// so every anchor gets results regardless of its coordinates.
type fakeSource struct {
	mu        sync.Mutex
	calls     int
	perAnchor []poi.Candidate
	err       error
}

func (f *fakeSource) SearchNearby(_ context.Context, lat, lon float64, _ int, categories []string) ([]poi.Candidate, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	requested := make(map[string]bool, len(categories))
	for _, c := range categories {
		requested[c] = true
	}
	var out []poi.Candidate
	for _, c := range f.perAnchor {
		if !requested[c.Category] {
			continue
		}
		c.Lat += lat
		c.Lon += lon
		out = append(out, c)
	}
	return out, nil
}

// nearbyCandidates places POIs within a few hundred meters of the anchor.
// Lat/Lon here are offsets applied by fakeSource.
func nearbyCandidates() []poi.Candidate {
	return []poi.Candidate{
		{ID: "osm_node_1", Name: "Wellcome", Address: "Queen's Road East, Wan Chai", Lat: 0.001, Lon: 0.001, Rating: 4.0, Category: "supermarket"},
		{ID: "osm_node_2", Name: "Mannings", Address: "Johnston Road, Wan Chai", Lat: 0.002, Lon: 0.001, Rating: 4.0, Category: "pharmacy"},
		{ID: "osm_node_3", Name: "Pacific Coffee", Address: "Hennessy Road, Wan Chai", Lat: 0.001, Lon: 0.002, Rating: 4.0, Category: "cafe"},
	}
}

type fakeGeocoder struct {
	result poi.GeocodeResult
	err    error
	mu     sync.Mutex
	calls  int
}

func (f *fakeGeocoder) Geocode(context.Context, string) (poi.GeocodeResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return poi.GeocodeResult{}, f.err
	}
	return f.result, nil
}

func taskByID(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
