package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path-measure-service/internal/api/dto"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/services"
	"strings"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).Error("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON strictly decodes exactly one JSON object from the request body.
// On failure it writes a 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// toPath converts request points into a validated path. Ids are trimmed and
// points without one are assigned a fresh id.
func toPath(points []dto.PointRequest, maxPoints int) (domain.Path, error) {
	if maxPoints > 0 && len(points) > maxPoints {
		return domain.Path{}, fmt.Errorf("path has %d points, limit is %d", len(points), maxPoints)
	}

	path := domain.NewPath()
	for _, p := range points {
		c := domain.Coordinates{Lon: p.Lon, Lat: p.Lat}
		id := strings.TrimSpace(p.ID)
		if id == "" {
			path.Add(c, p.Label)
			continue
		}
		path.Points = append(path.Points, domain.Point{ID: id, Coordinates: c, Label: p.Label})
	}

	if err := path.Validate(); err != nil {
		return domain.Path{}, err
	}
	return path, nil
}

func toPointResponse(p domain.Point) dto.PointResponse {
	return dto.PointResponse{
		ID:    p.ID,
		Lon:   p.Coordinates.Lon,
		Lat:   p.Coordinates.Lat,
		Label: p.Label,
	}
}

func toPathResponse(path domain.Path, change *services.Change) dto.PathResponse {
	m := services.MeasurePath(path)

	res := dto.PathResponse{
		Points:       make([]dto.PointResponse, 0, path.Len()),
		LegsKm:       m.LegsKm,
		TotalKm:      m.TotalKm,
		TotalDisplay: m.TotalDisplay,
		GeoJSON:      services.RenderGeoJSON(path),
	}
	for _, p := range path.Points {
		res.Points = append(res.Points, toPointResponse(p))
	}

	if change != nil {
		action := "removed"
		if change.Added {
			action = "added"
		}
		res.Change = &dto.ChangeResponse{Action: action, Point: toPointResponse(change.Point)}
	}
	return res
}
