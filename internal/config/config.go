package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path-measure-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	GeocoderORS  = "ors"
	GeocoderMock = "mock"

	CacheNone     = "none"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

// Map view defaults shared by every client.
type MapConfig struct {
	Style       string
	CenterLon   float64
	CenterLat   float64
	Zoom        float64
	AccessToken string
}

type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	Geocoder       string
	ORSAPIKey      string
	ORSBaseURL     string
	GeocodeCountry string

	GeocodeCache    string
	GeocodeCacheTTL time.Duration
	RedisAddr       string
	DatabaseURL     string

	MaxPathPoints int
	Map           MapConfig
}

// Get returns the environment value for key or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("config: %s: %q is not a finite number", key, v)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

// LoadDotEnv loads a .env file if present. It reports whether one was found.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the service configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           Get("PORT", "8080"),
		LogLevel:       Get("LOG_LEVEL", "info"),
		LogFormat:      Get("LOG_FORMAT", "json"),
		CORSOrigins:    splitList(Get("CORS_ORIGINS", "*")),
		Geocoder:       strings.ToLower(Get("GEOCODER", GeocoderORS)),
		ORSAPIKey:      os.Getenv("ORS_API_KEY"),
		ORSBaseURL:     Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		GeocodeCountry: Get("GEOCODE_COUNTRY", ""),
		GeocodeCache:   strings.ToLower(Get("GEOCODE_CACHE", CacheNone)),
		RedisAddr:      Get("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Map: MapConfig{
			Style:       Get("MAP_STYLE", "mapbox://styles/mapbox/streets-v12"),
			AccessToken: os.Getenv("MAP_ACCESS_TOKEN"),
		},
	}

	var errs []error
	var err error

	if cfg.GeocodeCacheTTL, err = GetDuration("GEOCODE_CACHE_TTL", 30*24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxPathPoints, err = GetInt("MAX_PATH_POINTS", 500); err != nil {
		errs = append(errs, err)
	}
	if cfg.Map.CenterLon, err = GetFloat("MAP_CENTER_LON", 18.6843); err != nil {
		errs = append(errs, err)
	}
	if cfg.Map.CenterLat, err = GetFloat("MAP_CENTER_LAT", 54.3451); err != nil {
		errs = append(errs, err)
	}
	if cfg.Map.Zoom, err = GetFloat("MAP_ZOOM", 11); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Geocoder {
	case GeocoderORS:
		if strings.TrimSpace(c.ORSAPIKey) == "" {
			return errors.New("config: ORS_API_KEY is required when GEOCODER=ors")
		}
	case GeocoderMock:
	default:
		return fmt.Errorf("config: unknown GEOCODER %q", c.Geocoder)
	}

	switch c.GeocodeCache {
	case CacheNone, CacheRedis:
	case CachePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL is required when GEOCODE_CACHE=postgres")
		}
	default:
		return fmt.Errorf("config: unknown GEOCODE_CACHE %q", c.GeocodeCache)
	}

	if c.MaxPathPoints < 2 {
		return fmt.Errorf("config: MAX_PATH_POINTS must be at least 2, got %d", c.MaxPathPoints)
	}
	if c.GeocodeCacheTTL < 0 {
		return fmt.Errorf("config: GEOCODE_CACHE_TTL must not be negative, got %s", c.GeocodeCacheTTL)
	}
	if !(c.Map.Zoom >= 0 && c.Map.Zoom <= 22) {
		return fmt.Errorf("config: MAP_ZOOM must be between 0 and 22, got %v", c.Map.Zoom)
	}
	center := domain.Coordinates{Lon: c.Map.CenterLon, Lat: c.Map.CenterLat}
	if err := center.Validate(); err != nil {
		return fmt.Errorf("config: map center: %w", err)
	}

	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
