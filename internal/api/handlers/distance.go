package handlers

import (
	"net/http"
	"path-measure-service/internal/api/dto"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/services"
)

// Distance returns the great-circle distance between two coordinates.
func Distance(w http.ResponseWriter, r *http.Request) {
	var req dto.DistanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a := domain.Coordinates{Lon: req.A.Lon, Lat: req.A.Lat}
	b := domain.Coordinates{Lon: req.B.Lon, Lat: req.B.Lat}
	for _, c := range []domain.Coordinates{a, b} {
		if err := c.Validate(); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	km := domain.DistanceKm(a, b)
	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		DistanceKm: km,
		Display:    services.FormatKm(km),
	})
}
