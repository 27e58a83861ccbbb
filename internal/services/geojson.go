package services

import (
	"path-measure-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	KindPoint = "point"
	KindLine  = "line"
)

func toOrbPoint(c domain.Coordinates) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// RenderGeoJSON builds the feature collection the map draws: one Point
// feature per path point, followed by a single LineString through all of
// them once there are at least two.
func RenderGeoJSON(path domain.Path) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, path.Len())
	for _, pt := range path.Points {
		f := geojson.NewFeature(toOrbPoint(pt.Coordinates))
		f.Properties["id"] = pt.ID
		f.Properties["kind"] = KindPoint
		if pt.Label != "" {
			f.Properties["label"] = pt.Label
		}
		fc.Append(f)

		line = append(line, toOrbPoint(pt.Coordinates))
	}

	// The line is always last so clients can pop and redraw it.
	if len(line) > 1 {
		f := geojson.NewFeature(line)
		f.Properties["kind"] = KindLine
		f.Properties["distance_km"] = path.TotalKm()
		fc.Append(f)
	}

	return fc
}
