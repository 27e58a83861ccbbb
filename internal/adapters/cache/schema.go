package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Initialize the Postgres schema backing SQLGeocodeCache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        cache_key TEXT PRIMARY KEY,
        query TEXT NOT NULL,
        label TEXT NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_geocode_cache_updated_at
    ON geocode_cache(updated_at);
	`

	statements := []string{
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Prune removes cache entries not refreshed within maxAge and reports how many were deleted.
func Prune(ctx context.Context, db *sql.DB, maxAge time.Duration) (int64, error) {
	if db == nil {
		return 0, errors.New("prune geocode cache: DB is nil")
	}
	if maxAge <= 0 {
		return 0, fmt.Errorf("prune geocode cache: max age must be positive, got %s", maxAge)
	}

	res, err := db.ExecContext(ctx, `
	DELETE FROM geocode_cache
    WHERE updated_at < now() - make_interval(secs => $1::double precision);
	`, maxAge.Seconds())
	if err != nil {
		return 0, fmt.Errorf("prune geocode cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune geocode cache: rows affected: %w", err)
	}
	return n, nil
}
