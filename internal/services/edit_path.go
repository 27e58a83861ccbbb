package services

import (
	"context"
	"errors"
	"fmt"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/ports"
	"strings"
)

// Change describes what a toggle did to the path.
type Change struct {
	Added bool
	Point domain.Point
}

// ClickRequest is a map click. HitID is the id of the rendered point under
// the cursor, if any.
type ClickRequest struct {
	HitID       string
	Coordinates domain.Coordinates
}

// ApplyClick funnels a map click into Path.Toggle and returns the new path.
// The input path is not modified.
func ApplyClick(path domain.Path, click ClickRequest) (domain.Path, Change) {
	next := domain.NewPath(path.Points...)
	pt, added := next.Toggle(strings.TrimSpace(click.HitID), click.Coordinates, "")
	return next, Change{Added: added, Point: pt}
}

// AddPlace resolves query through the geocoder and appends the result to the path.
func AddPlace(
	ctx context.Context,
	path domain.Path,
	query string,
	geocoder ports.Geocoder,
) (domain.Path, Change, error) {
	if geocoder == nil {
		return path, Change{}, errors.New("add place: geocoder is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return path, Change{}, errors.New("add place: query must be non-empty")
	}

	res, err := geocoder.Geocode(ctx, query)
	if err != nil {
		return path, Change{}, fmt.Errorf("add place %q: %w", query, err)
	}

	next := domain.NewPath(path.Points...)
	pt, added := next.Toggle("", res.Coordinates, res.Label)
	return next, Change{Added: added, Point: pt}, nil
}
