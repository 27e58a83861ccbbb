package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path-measure-service/internal/adapters/cache"
	"path-measure-service/internal/adapters/geocode"
	"path-measure-service/internal/api"
	"path-measure-service/internal/config"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/db"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/ports"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (ORS, Redis, Postgres) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if !foundEnv {
		log.Info("No .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, cfg); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, log *zap.Logger, cfg *config.Config) error {
	geocodeCache, closeCache, err := openGeocodeCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	geocoder, err := newGeocoder(cfg, geocodeCache)
	if err != nil {
		return err
	}

	router := api.NewRouter(log, geocoder, api.RouterConfig{
		CORSOrigins:   cfg.CORSOrigins,
		MaxPathPoints: cfg.MaxPathPoints,
		Map:           cfg.Map,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			zap.String("addr", srv.Addr),
			zap.String("geocoder", cfg.Geocoder),
			zap.String("geocode_cache", cfg.GeocodeCache),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newGeocoder(cfg *config.Config, c ports.GeocodeCache) (ports.Geocoder, error) {
	if cfg.Geocoder == config.GeocoderMock {
		return geocode.NewMockGeocoder(geocode.DefaultPlaces), nil
	}

	opts := []geocode.Option{
		geocode.WithBaseURL(cfg.ORSBaseURL),
		geocode.WithCountry(cfg.GeocodeCountry),
		// Bias results toward the initial map view.
		geocode.WithFocus(domain.Coordinates{Lon: cfg.Map.CenterLon, Lat: cfg.Map.CenterLat}),
	}
	if c != nil {
		opts = append(opts, geocode.WithCache(c))
	}

	g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("new geocoder: %w", err)
	}
	return g, nil
}

// openGeocodeCache returns the configured cache (nil for none) and a closer.
func openGeocodeCache(ctx context.Context, cfg *config.Config) (ports.GeocodeCache, func(), error) {
	switch cfg.GeocodeCache {
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open geocode cache: redis ping %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), func() { _ = client.Close() }, nil

	case config.CachePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open geocode cache: %w", err)
		}
		if err := cache.InitSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open geocode cache: %w", err)
		}
		return cache.NewSQLGeocodeCache(conn), closeDB(conn), nil

	default:
		return nil, func() {}, nil
	}
}

func closeDB(conn *sql.DB) func() {
	return func() { _ = conn.Close() }
}
