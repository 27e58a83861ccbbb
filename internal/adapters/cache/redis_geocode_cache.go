package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path-measure-service/internal/domain"
	"path-measure-service/internal/platform/obs"
	"path-measure-service/internal/ports"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

type redisEntry struct {
	Query string  `json:"query"`
	Label string  `json:"label"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

// RedisGeocodeCache stores geocoder results as JSON strings with an expiry.
// A zero TTL keeps entries until evicted.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (c *RedisGeocodeCache) Get(ctx context.Context, key string) (_ ports.GeocodeResult, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Get")(&err)

	if c.Client == nil {
		return ports.GeocodeResult{}, false, errors.New("geocode cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ports.GeocodeResult{}, false, errors.New("get geocode cache: key must not be empty")
	}

	raw, err := c.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.GeocodeResult{}, false, nil
	}
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("get geocode cache: decode %q: %w", key, err)
	}

	return ports.GeocodeResult{
		Query:       e.Query,
		Label:       e.Label,
		Coordinates: domain.Coordinates{Lon: e.Lon, Lat: e.Lat},
	}, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, key string, r ports.GeocodeResult) error {
	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty key")
	}

	raw, err := json.Marshal(redisEntry{
		Query: r.Query,
		Label: r.Label,
		Lon:   r.Coordinates.Lon,
		Lat:   r.Coordinates.Lat,
	})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode %q: %w", key, err)
	}

	if err := c.Client.Set(ctx, redisKeyPrefix+key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: redis set %q: %w", key, err)
	}
	return nil
}
