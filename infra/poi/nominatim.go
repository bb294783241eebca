package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	corepoi "github.com/relokit/settler/core/poi"
	"github.com/relokit/settler/infra/logger"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

	// Nominatim's usage policy allows at most one request per second.
	nominatimSpacing = time.Second
)

// NominatimGeocoder implements poi.Geocoder against the Nominatim API.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
	city    string
	log     logger.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// NominatimOption customizes a NominatimGeocoder.
type NominatimOption func(*NominatimGeocoder)

// WithNominatimURL overrides the API endpoint.
func WithNominatimURL(u string) NominatimOption {
	return func(g *NominatimGeocoder) { g.baseURL = u }
}

// WithNominatimClient overrides the HTTP client.
func WithNominatimClient(c *http.Client) NominatimOption {
	return func(g *NominatimGeocoder) { g.client = c }
}

// WithCity sets the city appended to every query to bias results.
func WithCity(city string) NominatimOption {
	return func(g *NominatimGeocoder) { g.city = city }
}

// NewNominatimGeocoder creates a geocoder against the public Nominatim endpoint.
func NewNominatimGeocoder(opts ...NominatimOption) *NominatimGeocoder {
	g := &NominatimGeocoder{
		baseURL: defaultNominatimURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		city:    "Hong Kong",
		log:     logger.New("nominatim"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode resolves a free-text address. A query that returns no results
// yields a poi.NotFound error.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (corepoi.GeocodeResult, error) {
	if err := g.pace(ctx); err != nil {
		return corepoi.GeocodeResult{}, err
	}

	q := address
	if g.city != "" {
		q = address + ", " + g.city
	}
	params := url.Values{
		"q":      {q},
		"format": {"json"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return corepoi.GeocodeResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return corepoi.GeocodeResult{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return corepoi.GeocodeResult{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return corepoi.GeocodeResult{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return corepoi.GeocodeResult{}, corepoi.NotFound(address)
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return corepoi.GeocodeResult{}, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return corepoi.GeocodeResult{}, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
	}
	g.log.Debugw("geocoded address", map[string]any{"address": address, "lat": lat, "lon": lon})
	return corepoi.GeocodeResult{DisplayName: r.DisplayName, Lat: lat, Lon: lon}, nil
}

func (g *NominatimGeocoder) pace(ctx context.Context) error {
	g.mu.Lock()
	wait := nominatimSpacing - time.Since(g.lastCall)
	if wait < 0 {
		wait = 0
	}
	g.lastCall = time.Now().Add(wait)
	g.mu.Unlock()
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

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
