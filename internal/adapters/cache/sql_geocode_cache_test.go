package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/db"
	"path-measure-service/internal/ports"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectGeocodeSQL = regexp.QuoteMeta(`SELECT query, label, lon, lat FROM geocode_cache WHERE cache_key = $1`)
	upsertGeocodeSQL = regexp.QuoteMeta(`INSERT INTO geocode_cache (cache_key, query, label, lon, lat) VALUES ($1, $2, $3, $4, $5)`) +
		`\s+` + regexp.QuoteMeta(`ON CONFLICT (cache_key) DO UPDATE`) +
		`.*` + regexp.QuoteMeta(`updated_at = now()`)
	pruneGeocodeSQL = regexp.QuoteMeta(`DELETE FROM geocode_cache WHERE updated_at < now() - make_interval(secs => $1::double precision)`)
)

var sopot = ports.GeocodeResult{
	Query:       "Sopot",
	Label:       "Sopot, Poland",
	Coordinates: domain.Coordinates{Lon: 18.5601, Lat: 54.4416},
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = conn.Close()
	})
	return conn, mock
}

func TestSQLGeocodeCacheGetMiss(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectQuery(selectGeocodeSQL).
		WithArgs("atlantis").
		WillReturnRows(sqlmock.NewRows([]string{"query", "label", "lon", "lat"}))

	res, ok, err := NewSQLGeocodeCache(conn).Get(context.Background(), " atlantis ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, ports.GeocodeResult{}, res)
}

func TestSQLGeocodeCacheGetHit(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectQuery(selectGeocodeSQL).
		WithArgs("sopot").
		WillReturnRows(sqlmock.NewRows([]string{"query", "label", "lon", "lat"}).
			AddRow(sopot.Query, sopot.Label, sopot.Coordinates.Lon, sopot.Coordinates.Lat))

	res, ok, err := NewSQLGeocodeCache(conn).Get(context.Background(), "sopot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sopot, res)
}

func TestSQLGeocodeCacheGetQueryError(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectQuery(selectGeocodeSQL).WithArgs("sopot").WillReturnError(errors.New("connection reset"))

	_, ok, err := NewSQLGeocodeCache(conn).Get(context.Background(), "sopot")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSQLGeocodeCachePutUpserts(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectExec(upsertGeocodeSQL).
		WithArgs("sopot", sopot.Query, sopot.Label, sopot.Coordinates.Lon, sopot.Coordinates.Lat).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewSQLGeocodeCache(conn).Put(context.Background(), "sopot", sopot))
}

func TestSQLGeocodeCachePutError(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectExec(upsertGeocodeSQL).WillReturnError(errors.New("disk full"))

	err := NewSQLGeocodeCache(conn).Put(context.Background(), "sopot", sopot)
	assert.ErrorContains(t, err, "disk full")
}

func TestInitSchema(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS geocode_cache`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS idx_geocode_cache_updated_at`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, InitSchema(context.Background(), conn))
}

func TestInitSchemaRollsBackOnError(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS geocode_cache`)).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err := InitSchema(context.Background(), conn)
	assert.ErrorContains(t, err, "statement #1")
}

func TestPrune(t *testing.T) {
	conn, mock := newMockDB(t)
	mock.ExpectExec(pruneGeocodeSQL).
		WithArgs(float64(2 * 60 * 60)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := Prune(context.Background(), conn, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPruneRejectsNonPositiveAge(t *testing.T) {
	conn, _ := newMockDB(t)

	for _, age := range []time.Duration{0, -time.Minute} {
		_, err := Prune(context.Background(), conn, age)
		assert.Error(t, err, "age %s", age)
	}
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)
	ctx := context.Background()

	_, _, err := c.Get(ctx, "x")
	assert.Error(t, err)
	assert.Error(t, c.Put(ctx, "x", ports.GeocodeResult{}))
	assert.Error(t, InitSchema(ctx, nil))
	_, err = Prune(ctx, nil, time.Hour)
	assert.Error(t, err)
}

// The tests below run against a real Postgres when DATABASE_URL is set.

func openPostgres(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(ctx, conn))
	return conn
}

func TestSQLGeocodeCachePostgres(t *testing.T) {
	conn := openPostgres(t)
	ctx := context.Background()
	c := NewSQLGeocodeCache(conn)

	key := "test:" + t.Name()
	t.Cleanup(func() { _, _ = conn.Exec(`DELETE FROM geocode_cache WHERE cache_key = $1`, key) })

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, key, sopot))

	gdynia := ports.GeocodeResult{
		Query:       "Gdynia",
		Label:       "Gdynia, Poland",
		Coordinates: domain.Coordinates{Lon: 18.5305, Lat: 54.5189},
	}
	require.NoError(t, c.Put(ctx, key, gdynia))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, gdynia, got)
}

func TestPrunePostgres(t *testing.T) {
	conn := openPostgres(t)
	ctx := context.Background()
	c := NewSQLGeocodeCache(conn)

	stale, fresh := "test:"+t.Name()+":stale", "test:"+t.Name()+":fresh"
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM geocode_cache WHERE cache_key IN ($1, $2)`, stale, fresh)
	})

	require.NoError(t, c.Put(ctx, stale, sopot))
	require.NoError(t, c.Put(ctx, fresh, sopot))
	_, err := conn.ExecContext(ctx,
		`UPDATE geocode_cache SET updated_at = now() - interval '2 hours' WHERE cache_key = $1`, stale)
	require.NoError(t, err)

	n, err := Prune(ctx, conn, time.Hour)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, ok, err := c.Get(ctx, stale)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, ok)
}
