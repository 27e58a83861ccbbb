package domain

import "math"

// Mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceKm returns the great-circle distance between a and b in kilometers
// using the Haversine formula on a sphere of radius EarthRadiusKm.
//
// atan2 keeps the result stable for near-antipodal points where h ≈ 1.
// Inputs are not validated: NaN and ±Inf propagate to the result.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := lat2 - lat1
	dLon := degToRad(b.Lon) - degToRad(a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// LegDistancesKm returns the distance of each consecutive pair in path order.
// Paths with fewer than two points have no legs.
func LegDistancesKm(path []Coordinates) []float64 {
	if len(path) < 2 {
		return []float64{}
	}

	legs := make([]float64, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		legs = append(legs, DistanceKm(path[i], path[i+1]))
	}
	return legs
}

// PathDistanceKm sums consecutive-pair distances in path order.
func PathDistanceKm(path []Coordinates) float64 {
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		total += DistanceKm(path[i], path[i+1])
	}
	return total
}
