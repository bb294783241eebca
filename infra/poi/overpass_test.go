package poi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverpassSource_SearchNearby(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		queries = append(queries, r.Form.Get("data"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements":[
			{"type":"node","id":42,"lat":22.28,"lon":114.17,"tags":{"name":"Wellcome","addr:street":"Queen's Road East","addr:district":"Wan Chai"}},
			{"type":"way","id":7,"center":{"lat":22.279,"lon":114.171},"tags":{"name:en":"City Super"}},
			{"type":"node","id":9,"tags":{"name":"No Coordinates"}}
		]}`))
	}))
	defer srv.Close()

	src := NewOverpassSource(WithOverpassURL(srv.URL), WithOverpassClient(srv.Client()))
	got, err := src.SearchNearby(context.Background(), 22.2770, 114.1720, 1000, []string{"supermarket"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "osm_node_42", got[0].ID)
	assert.Equal(t, "Wellcome", got[0].Name)
	assert.Equal(t, "Queen's Road East, Wan Chai", got[0].Address)
	assert.Equal(t, "supermarket", got[0].Category)
	assert.Equal(t, 22.28, got[0].Lat)

	assert.Equal(t, "City Super", got[1].Name)
	assert.Equal(t, 22.279, got[1].Lat)

	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], `["shop"="supermarket"]`)
	assert.Contains(t, queries[0], "around:1000")
}

func TestOverpassSource_SkipsUnknownCategories(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	src := NewOverpassSource(WithOverpassURL(srv.URL), WithOverpassClient(srv.Client()))
	got, err := src.SearchNearby(context.Background(), 22.28, 114.17, 500, []string{"spaceport", "pharmacy"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, calls)
}

func TestOverpassSource_ContinuesAfterServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"elements":[{"type":"node","id":1,"lat":22.3,"lon":114.2,"tags":{"name":"Mannings"}}]}`))
	}))
	defer srv.Close()

	src := NewOverpassSource(WithOverpassURL(srv.URL), WithOverpassClient(srv.Client()))
	got, err := src.SearchNearby(context.Background(), 22.28, 114.17, 500, []string{"supermarket", "pharmacy"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mannings", got[0].Name)
	assert.Equal(t, "pharmacy", got[0].Category)
}

func TestOverpassSource_UnnamedFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[{"type":"node","id":5,"lat":22.3,"lon":114.2,"tags":{}}]}`))
	}))
	defer srv.Close()

	src := NewOverpassSource(WithOverpassURL(srv.URL), WithOverpassClient(srv.Client()))
	got, err := src.SearchNearby(context.Background(), 22.28, 114.17, 500, []string{"cafe"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Unnamed", got[0].Name)
	if !strings.HasPrefix(got[0].ID, "osm_node_") {
		t.Fatalf("unexpected id %q", got[0].ID)
	}
}
