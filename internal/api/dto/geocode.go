package dto

type GeocodeResponse struct {
	Query string  `json:"query"`
	Label string  `json:"label"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

type BatchGeocodeRequest struct {
	Queries []string `json:"queries"`
}
