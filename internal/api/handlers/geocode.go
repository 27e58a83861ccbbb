package handlers

import (
	"fmt"
	"net/http"
	"path-measure-service/internal/api/dto"
	"path-measure-service/internal/ports"
	"path-measure-service/internal/services"
	"strings"
)

// GeocodeHandler exposes the geocoder to the search control.
type GeocodeHandler struct {
	Geocoder   ports.Geocoder
	MaxQueries int
}

func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}

	res, err := h.Geocoder.Geocode(r.Context(), q)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Query: res.Query,
		Label: res.Label,
		Lon:   res.Coordinates.Lon,
		Lat:   res.Coordinates.Lat,
	})
}

// Batch resolves several place names into a path, in request order.
func (h *GeocodeHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchGeocodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Queries) == 0 {
		writeError(w, r, http.StatusBadRequest, "queries must not be empty")
		return
	}
	if h.MaxQueries > 0 && len(req.Queries) > h.MaxQueries {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d queries per request", h.MaxQueries))
		return
	}
	for _, q := range req.Queries {
		if strings.TrimSpace(q) == "" {
			writeError(w, r, http.StatusBadRequest, "queries must not contain empty entries")
			return
		}
	}

	path, err := services.ResolvePlaces(r.Context(), req.Queries, h.Geocoder)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPathResponse(path, nil))
}
