package handlers

import (
	"errors"
	"net/http"
	"path-measure-service/internal/api/dto"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/ports"
	"path-measure-service/internal/services"
	"strings"

	"go.uber.org/zap"
)

// PathHandler serves path measurement and editing. The path travels in the
// request and the response; nothing is stored server side.
type PathHandler struct {
	Geocoder  ports.Geocoder
	MaxPoints int
}

func (h *PathHandler) Measure(w http.ResponseWriter, r *http.Request) {
	var req dto.MeasureRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	path, err := toPath(req.Points, h.MaxPoints)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toPathResponse(path, nil))
}

// Click applies a map click: remove the point under the cursor, or add one.
func (h *PathHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req dto.ClickRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	path, err := toPath(req.Points, h.MaxPoints)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	click := services.ClickRequest{HitID: strings.TrimSpace(req.HitID)}
	hit := false
	for _, p := range path.Points {
		if click.HitID != "" && p.ID == click.HitID {
			hit = true
			break
		}
	}

	if !hit {
		if req.Lon == nil || req.Lat == nil {
			writeError(w, r, http.StatusBadRequest, "lon and lat are required unless hit_id names an existing point")
			return
		}
		click.HitID = ""
		click.Coordinates = domain.Coordinates{Lon: *req.Lon, Lat: *req.Lat}
		if err := click.Coordinates.Validate(); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if h.MaxPoints > 0 && path.Len() >= h.MaxPoints {
			writeError(w, r, http.StatusUnprocessableEntity, "path point limit reached")
			return
		}
	}

	next, change := services.ApplyClick(path, click)
	writeJSON(w, r, http.StatusOK, toPathResponse(next, &change))
}

// Place appends the geocoder's best match for a place name.
func (h *PathHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, r, http.StatusBadRequest, "query is required")
		return
	}

	path, err := toPath(req.Points, h.MaxPoints)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if h.MaxPoints > 0 && path.Len() >= h.MaxPoints {
		writeError(w, r, http.StatusUnprocessableEntity, "path point limit reached")
		return
	}

	next, change, err := services.AddPlace(r.Context(), path, req.Query, h.Geocoder)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPathResponse(next, &change))
}

func writeGeocodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "no results for query")
		return
	}

	obs.Logger(r.Context()).Error("geocode failed",
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Error(err),
	)
	writeError(w, r, http.StatusBadGateway, "geocoder unavailable")
}
