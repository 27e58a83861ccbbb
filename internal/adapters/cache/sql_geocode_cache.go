package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/ports"
	"strings"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized queries to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached result for one query key.
func (s *SQLGeocodeCache) Get(ctx context.Context, key string) (_ ports.GeocodeResult, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.Get")(&err)

	if s.DB == nil {
		return ports.GeocodeResult{}, false, errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ports.GeocodeResult{}, false, errors.New("get geocode cache: key must not be empty")
	}

	q := `
	SELECT query, label, lon, lat
    FROM geocode_cache
    WHERE cache_key = $1;
	`

	var res ports.GeocodeResult
	var lon, lat float64
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&res.Query, &res.Label, &lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.GeocodeResult{}, false, nil
	}
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	res.Coordinates = domain.Coordinates{Lon: lon, Lat: lat}
	return res, true, nil
}

// Store a query -> coordinate mapping, replacing any previous entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, key string, r ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (cache_key, query, label, lon, lat)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (cache_key) DO UPDATE
	SET query = EXCLUDED.query,
		label = EXCLUDED.label,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		updated_at = now();
	`, key, r.Query, r.Label, r.Coordinates.Lon, r.Coordinates.Lat)
	if err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
