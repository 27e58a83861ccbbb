package services

import (
	"fmt"
	"path-measure-service/internal/domain"
)

// Measurement is the distance readout for a path.
//
// TotalKm is nil while the path has fewer than two points, in which case
// there is nothing to display.
type Measurement struct {
	Points       int
	LegsKm       []float64
	TotalKm      *float64
	TotalDisplay string
}

// MeasurePath computes per-leg and total distances with domain.DistanceKm.
func MeasurePath(path domain.Path) Measurement {
	coords := path.Coordinates()
	legs := domain.LegDistancesKm(coords)

	m := Measurement{
		Points: len(coords),
		LegsKm: legs,
	}
	if len(coords) < 2 {
		return m
	}

	total := 0.0
	for _, l := range legs {
		total += l
	}
	m.TotalKm = &total
	m.TotalDisplay = FormatKm(total)
	return m
}

// FormatKm renders kilometers with three decimals.
func FormatKm(km float64) string {
	return fmt.Sprintf("%.3f", km)
}
