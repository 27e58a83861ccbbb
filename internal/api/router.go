package api

import (
	"net/http"
	"path-measure-service/internal/api/handlers"
	"path-measure-service/internal/config"
	"path-measure-service/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Upper bound on place names in one batch geocode request.
const maxBatchQueries = 25

type RouterConfig struct {
	CORSOrigins   []string
	MaxPathPoints int
	Map           config.MapConfig
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(log *zap.Logger, geocoder ports.Geocoder, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	pathHandler := &handlers.PathHandler{
		Geocoder:  geocoder,
		MaxPoints: cfg.MaxPathPoints,
	}
	geocodeHandler := &handlers.GeocodeHandler{
		Geocoder:   geocoder,
		MaxQueries: maxBatchQueries,
	}
	mapHandler := &handlers.MapHandler{
		Map:           cfg.Map,
		MaxPathPoints: cfg.MaxPathPoints,
	}

	r.Get("/health", handlers.Health)
	r.Get("/map/config", mapHandler.Config)
	r.Post("/distance", handlers.Distance)

	r.Route("/paths", func(r chi.Router) {
		r.Post("/measure", pathHandler.Measure)
		r.Post("/click", pathHandler.Click)
		r.Post("/place", pathHandler.Place)
	})

	r.Get("/geocode", geocodeHandler.Lookup)
	r.Post("/geocode/batch", geocodeHandler.Batch)

	return r
}
