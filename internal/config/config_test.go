package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "GEOCODER", "ORS_API_KEY",
	"ORS_BASE_URL", "GEOCODE_COUNTRY", "GEOCODE_CACHE", "GEOCODE_CACHE_TTL",
	"REDIS_ADDR", "DATABASE_URL", "MAX_PATH_POINTS", "MAP_STYLE", "MAP_CENTER_LON",
	"MAP_CENTER_LAT", "MAP_ZOOM", "MAP_ACCESS_TOKEN",
}

// clearEnv blanks every key Load reads; Get treats blank values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEOCODER", "mock")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, CacheNone, cfg.GeocodeCache)
	assert.Equal(t, 500, cfg.MaxPathPoints)
	assert.Equal(t, 30*24*time.Hour, cfg.GeocodeCacheTTL)
	assert.Equal(t, 18.6843, cfg.Map.CenterLon)
	assert.Equal(t, 54.3451, cfg.Map.CenterLat)
	assert.Equal(t, 11.0, cfg.Map.Zoom)
	assert.Equal(t, "mapbox://styles/mapbox/streets-v12", cfg.Map.Style)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEOCODER", "ORS")
	t.Setenv("ORS_API_KEY", "key")
	t.Setenv("GEOCODE_CACHE", "redis")
	t.Setenv("GEOCODE_CACHE_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://maps.example.com ,")
	t.Setenv("MAP_ZOOM", "4.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, GeocoderORS, cfg.Geocoder)
	assert.Equal(t, CacheRedis, cfg.GeocodeCache)
	assert.Equal(t, time.Hour, cfg.GeocodeCacheTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://maps.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 4.5, cfg.Map.Zoom)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "ors without key", env: map[string]string{"GEOCODER": "ors", "ORS_API_KEY": ""}},
		{name: "unknown geocoder", env: map[string]string{"GEOCODER": "google"}},
		{name: "postgres without url", env: map[string]string{"GEOCODER": "mock", "GEOCODE_CACHE": "postgres", "DATABASE_URL": ""}},
		{name: "unknown cache", env: map[string]string{"GEOCODER": "mock", "GEOCODE_CACHE": "memcached"}},
		{name: "bad int", env: map[string]string{"GEOCODER": "mock", "MAX_PATH_POINTS": "many"}},
		{name: "too few points", env: map[string]string{"GEOCODER": "mock", "MAX_PATH_POINTS": "1"}},
		{name: "bad duration", env: map[string]string{"GEOCODER": "mock", "GEOCODE_CACHE_TTL": "forever"}},
		{name: "bad zoom", env: map[string]string{"GEOCODER": "mock", "MAP_ZOOM": "30"}},
		{name: "bad center", env: map[string]string{"GEOCODER": "mock", "MAP_CENTER_LAT": "91"}},
		{name: "nan center", env: map[string]string{"GEOCODER": "mock", "MAP_CENTER_LON": "NaN"}},
		{name: "inf center", env: map[string]string{"GEOCODER": "mock", "MAP_CENTER_LAT": "-Inf"}},
		{name: "nan zoom", env: map[string]string{"GEOCODER": "mock", "MAP_ZOOM": "nan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("PMS_TEST_KEY", "  ")
	assert.Equal(t, "fallback", Get("PMS_TEST_KEY", "fallback"))

	t.Setenv("PMS_TEST_KEY", "value")
	assert.Equal(t, "value", Get("PMS_TEST_KEY", "fallback"))
}

func TestValidateRejectsNaNMap(t *testing.T) {
	cfg := &Config{
		Geocoder:      GeocoderMock,
		GeocodeCache:  CacheNone,
		MaxPathPoints: 10,
		Map:           MapConfig{CenterLon: math.NaN(), CenterLat: 54.3451, Zoom: 11},
	}
	assert.Error(t, cfg.Validate())

	cfg.Map.CenterLon = 18.6843
	require.NoError(t, cfg.Validate())

	cfg.Map.Zoom = math.NaN()
	assert.Error(t, cfg.Validate())
}
