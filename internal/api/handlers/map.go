package handlers

import (
	"net/http"
	"path-measure-service/internal/api/dto"
	"path-measure-service/internal/config"
)

// MapHandler serves the view settings every client renders with.
type MapHandler struct {
	Map           config.MapConfig
	MaxPathPoints int
}

func (h *MapHandler) Config(w http.ResponseWriter, r *http.Request) {
	res := dto.MapConfigResponse{
		Style:       h.Map.Style,
		Center:      dto.Coordinates{Lon: h.Map.CenterLon, Lat: h.Map.CenterLat},
		Zoom:        h.Map.Zoom,
		AccessToken: h.Map.AccessToken,
		Controls: dto.MapControls{
			Navigation: true,
			Fullscreen: true,
			Geolocate: dto.GeolocateControl{
				Enabled:            true,
				EnableHighAccuracy: true,
				TrackUserLocation:  true,
			},
			Geocoder: true,
		},
		Layers: dto.MapLayers{
			Points: dto.PointLayer{Radius: 5, Color: "#000"},
			Lines:  dto.LineLayer{Width: 2.5, Color: "#000", Cap: "round", Join: "round"},
		},
		MaxPathPoints: h.MaxPathPoints,
	}

	writeJSON(w, r, http.StatusOK, res)
}
