// Package poi provides HTTP-backed implementations of the lookup
// interfaces in core/poi, querying the OpenStreetMap Overpass and
// Nominatim services.
package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	corepoi "github.com/relokit/settler/core/poi"
	"github.com/relokit/settler/infra/logger"
)

const (
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"
	userAgent          = "settler/1.0"

	// Overpass asks clients to space out requests.
	overpassSpacing = 500 * time.Millisecond
)

// tagFilters maps the planner's category vocabulary to OpenStreetMap tags.
var tagFilters = map[string]string{
	"supermarket":       `["shop"="supermarket"]`,
	"convenience_store": `["shop"="convenience"]`,
	"pharmacy":          `["amenity"="pharmacy"]`,
	"restaurant":        `["amenity"="restaurant"]`,
	"cafe":              `["amenity"="cafe"]`,
	"bakery":            `["shop"="bakery"]`,
	"gym":               `["leisure"="fitness_centre"]`,
	"clinic":            `["amenity"="clinic"]`,
	"bank":              `["amenity"="bank"]`,
	"atm":               `["amenity"="atm"]`,
	"mall":              `["shop"="mall"]`,
	"market":            `["amenity"="marketplace"]`,
}

// defaultRating is assigned to every candidate; Overpass carries no
// rating data.
const defaultRating = 4.0

// OverpassSource implements poi.Source against the Overpass API.
type OverpassSource struct {
	baseURL string
	client  *http.Client
	limit   int
	log     logger.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// OverpassOption customizes an OverpassSource.
type OverpassOption func(*OverpassSource)

// WithOverpassURL overrides the API endpoint.
func WithOverpassURL(u string) OverpassOption {
	return func(s *OverpassSource) { s.baseURL = u }
}

// WithOverpassClient overrides the HTTP client.
func WithOverpassClient(c *http.Client) OverpassOption {
	return func(s *OverpassSource) { s.client = c }
}

// WithOverpassLimit caps results per category query.
func WithOverpassLimit(n int) OverpassOption {
	return func(s *OverpassSource) { s.limit = n }
}

// NewOverpassSource creates a source against the public Overpass endpoint.
func NewOverpassSource(opts ...OverpassOption) *OverpassSource {
	s := &OverpassSource{
		baseURL: defaultOverpassURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limit:   10,
		log:     logger.New("overpass"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchNearby queries Overpass once per category and merges the results.
// Categories without a tag mapping are skipped; a failed category query is
// logged and skipped rather than failing the whole search.
func (s *OverpassSource) SearchNearby(ctx context.Context, lat, lon float64, radiusM int, categories []string) ([]corepoi.Candidate, error) {
	var all []corepoi.Candidate
	for _, cat := range categories {
		filter, ok := tagFilters[cat]
		if !ok {
			continue
		}
		if err := s.pace(ctx); err != nil {
			return all, err
		}
		found, err := s.query(ctx, lat, lon, radiusM, filter)
		if err != nil {
			s.log.Errorf("overpass query for %s: %v", cat, err)
			continue
		}
		for i := range found {
			found[i].Category = cat
		}
		all = append(all, found...)
	}
	return all, nil
}

// pace enforces the inter-request spacing.
func (s *OverpassSource) pace(ctx context.Context) error {
	s.mu.Lock()
	wait := overpassSpacing - time.Since(s.lastCall)
	if wait < 0 {
		wait = 0
	}
	s.lastCall = time.Now().Add(wait)
	s.mu.Unlock()
	if wait == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

func (s *OverpassSource) query(ctx context.Context, lat, lon float64, radiusM int, filter string) ([]corepoi.Candidate, error) {
	q := fmt.Sprintf(`[out:json][timeout:25];
(
  node%[1]s(around:%[2]d,%[3]f,%[4]f);
  way%[1]s(around:%[2]d,%[3]f,%[4]f);
);
out center %[5]d;`, filter, radiusM, lat, lon, s.limit)

	form := url.Values{"data": {q}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]corepoi.Candidate, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		if c, ok := el.candidate(); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// candidate converts the raw element, dropping entries without coordinates.
func (el overpassElement) candidate() (corepoi.Candidate, bool) {
	lat, lon := el.Lat, el.Lon
	if lat == 0 && lon == 0 {
		if el.Center == nil {
			return corepoi.Candidate{}, false
		}
		lat, lon = el.Center.Lat, el.Center.Lon
	}

	name := el.Tags["name"]
	if name == "" {
		name = el.Tags["name:en"]
	}
	if name == "" {
		name = el.Tags["brand"]
	}
	if name == "" {
		name = "Unnamed"
	}

	var parts []string
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:district"} {
		if v := el.Tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	address := name
	if len(parts) > 0 {
		address = strings.Join(parts, ", ")
	}

	return corepoi.Candidate{
		ID:      fmt.Sprintf("osm_%s_%d", el.Type, el.ID),
		Name:    name,
		Address: address,
		Lat:     lat,
		Lon:     lon,
		Rating:  defaultRating,
	}, true
}
