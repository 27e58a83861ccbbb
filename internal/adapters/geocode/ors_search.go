package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/ports"
)

type searchResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// search resolves one normalized query, retrying transient failures via doWithRetry.
func (o *ORSGeocoder) search(ctx context.Context, text string) (ports.GeocodeResult, error) {
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.searchRequest(ctx, text)
	})
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.GeocodeResult{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.GeocodeResult{}, ports.ErrNotFound
	}

	f := decoded.Features[0]
	coords := f.Geometry.Coordinates
	if len(coords) != 2 {
		return ports.GeocodeResult{}, fmt.Errorf("invalid coordinate format for %q", text)
	}

	label := f.Properties.Label
	if label == "" {
		label = text
	}

	return ports.GeocodeResult{
		Query: text,
		Label: label,
		Coordinates: domain.Coordinates{
			Lon: coords[0],
			Lat: coords[1],
		},
	}, nil
}
