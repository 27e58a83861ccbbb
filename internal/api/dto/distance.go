package dto

type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type DistanceRequest struct {
	A Coordinates `json:"a"`
	B Coordinates `json:"b"`
}

type DistanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
	Display    string  `json:"display"`
}
