package services

import (
	"context"
	"errors"
	"fmt"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Upper bound on concurrent geocoder calls for one request.
const maxConcurrentLookups = 5

// ResolvePlaces geocodes every query and returns a path in input order.
// The first failure cancels the outstanding lookups.
func ResolvePlaces(
	ctx context.Context,
	queries []string,
	geocoder ports.Geocoder,
) (_ domain.Path, err error) {
	defer obs.Time(ctx, "services.ResolvePlaces")(&err)

	if geocoder == nil {
		return domain.Path{}, errors.New("resolve places: geocoder is nil")
	}

	for i, q := range queries {
		if strings.TrimSpace(q) == "" {
			return domain.Path{}, fmt.Errorf("resolve places: query #%d is empty", i+1)
		}
	}

	results := make([]ports.GeocodeResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			r, err := geocoder.Geocode(gctx, q)
			if err != nil {
				return fmt.Errorf("resolve places: %q: %w", q, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Path{}, err
	}

	path := domain.NewPath()
	for _, r := range results {
		path.Add(r.Coordinates, r.Label)
	}
	return path, nil
}
