package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/ports"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openrouteservice.org"

// ORSGeocoder implements ports.Geocoder using the OpenRouteService
// /geocode/search endpoint.
//
// It coordinates:
//   - Query normalization
//   - Read-through caching (optional)
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	focus   *domain.Coordinates
	cache   ports.GeocodeCache
}

type Option func(*ORSGeocoder)

// WithBaseURL overrides the OpenRouteService endpoint (tests, self-hosted instances).
func WithBaseURL(u string) Option {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithCountry restricts results to an ISO 3166-1 country code.
func WithCountry(code string) Option {
	return func(o *ORSGeocoder) { o.country = strings.TrimSpace(code) }
}

// WithFocus biases results toward a point, usually the map center.
func WithFocus(c domain.Coordinates) Option {
	return func(o *ORSGeocoder) { o.focus = &c }
}

func WithCache(c ports.GeocodeCache) Option {
	return func(o *ORSGeocoder) { o.cache = c }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *ORSGeocoder) { o.session = c }
}

func NewORSGeocoder(apiKey string, opts ...Option) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Normalize collapses whitespace so equivalent queries share a request.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CacheKey is the case-insensitive key a normalized query is cached under.
func CacheKey(s string) string {
	return strings.ToLower(Normalize(s))
}

func (o *ORSGeocoder) Geocode(ctx context.Context, query string) (_ ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := Normalize(query)
	if norm == "" {
		return ports.GeocodeResult{}, errors.New("geocode: query must be non-empty")
	}
	key := CacheKey(norm)

	// Check the cache before issuing an external API call.
	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			obs.Logger(ctx).Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	res, err := o.search(ctx, norm)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, res); err != nil {
			obs.Logger(ctx).Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return res, nil
}

func (o *ORSGeocoder) searchRequest(ctx context.Context, text string) (*http.Request, error) {
	req, err := o.newRequest(ctx, http.MethodGet, o.baseURL+"/geocode/search", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("text", text)
	q.Set("size", "1")
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}
	if o.focus != nil {
		q.Set("focus.point.lon", strconv.FormatFloat(o.focus.Lon, 'f', -1, 64))
		q.Set("focus.point.lat", strconv.FormatFloat(o.focus.Lat, 'f', -1, 64))
	}
	req.URL.RawQuery = q.Encode()
	return req, nil
}
