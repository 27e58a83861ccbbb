package geocode

import (
	"context"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/ports"
	"sync"
)

type MockPlace struct {
	Query    string
	Label    string
	Lon, Lat float64
}

// MockGeocoder answers from a fixed table keyed by CacheKey(query).
type MockGeocoder struct {
	m     map[string]ports.GeocodeResult
	mu    sync.Mutex
	calls int
}

func NewMockGeocoder(places []MockPlace) *MockGeocoder {
	m := make(map[string]ports.GeocodeResult, len(places))
	for _, p := range places {
		label := p.Label
		if label == "" {
			label = p.Query
		}
		m[CacheKey(p.Query)] = ports.GeocodeResult{
			Query:       Normalize(p.Query),
			Label:       label,
			Coordinates: domain.Coordinates{Lon: p.Lon, Lat: p.Lat},
		}
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, query string) (ports.GeocodeResult, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.GeocodeResult{}, err
	}

	r, ok := g.m[CacheKey(query)]
	if !ok {
		return ports.GeocodeResult{}, ports.ErrNotFound
	}
	return r, nil
}

// Calls reports how many lookups were made.
func (g *MockGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// DefaultPlaces seeds GEOCODER=mock local runs around the default map center.
var DefaultPlaces = []MockPlace{
	{Query: "Gdansk", Label: "Gdańsk, Poland", Lon: 18.6466, Lat: 54.3520},
	{Query: "Sopot", Label: "Sopot, Poland", Lon: 18.5601, Lat: 54.4416},
	{Query: "Gdynia", Label: "Gdynia, Poland", Lon: 18.5305, Lat: 54.5189},
	{Query: "London", Label: "London, United Kingdom", Lon: -0.1278, Lat: 51.5074},
	{Query: "Paris", Label: "Paris, France", Lon: 2.3522, Lat: 48.8566},
}
