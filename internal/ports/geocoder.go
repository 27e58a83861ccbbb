package ports

import (
	"context"
	"errors"
	"path-measure-service/internal/domain"
)

// ErrNotFound is returned when a geocoder has no match for a query.
var ErrNotFound = errors.New("no geocode results")

// A place name resolved to coordinates.
type GeocodeResult struct {
	Query       string
	Label       string
	Coordinates domain.Coordinates
}

// Contract for resolving place names to coordinates.
type Geocoder interface {
	// Return the best match for a free-text place query.
	Geocode(ctx context.Context, query string) (GeocodeResult, error)
}
