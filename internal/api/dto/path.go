package dto

import "github.com/paulmach/orb/geojson"

type PointRequest struct {
	ID    string  `json:"id"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Label string  `json:"label,omitempty"`
}

type PointResponse struct {
	ID    string  `json:"id"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Label string  `json:"label,omitempty"`
}

type MeasureRequest struct {
	Points []PointRequest `json:"points"`
}

// ClickRequest carries the current path and a map click. A click on an
// existing point sets HitID; a click on empty map sets Lon/Lat.
type ClickRequest struct {
	Points []PointRequest `json:"points"`
	HitID  string         `json:"hit_id"`
	Lon    *float64       `json:"lon"`
	Lat    *float64       `json:"lat"`
}

type PlaceRequest struct {
	Points []PointRequest `json:"points"`
	Query  string         `json:"query"`
}

type ChangeResponse struct {
	Action string        `json:"action"`
	Point  PointResponse `json:"point"`
}

type PathResponse struct {
	Points       []PointResponse            `json:"points"`
	LegsKm       []float64                  `json:"legs_km"`
	TotalKm      *float64                   `json:"total_km"`
	TotalDisplay string                     `json:"total_display,omitempty"`
	Change       *ChangeResponse            `json:"change,omitempty"`
	GeoJSON      *geojson.FeatureCollection `json:"geojson"`
}
