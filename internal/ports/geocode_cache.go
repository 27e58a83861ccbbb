package ports

import "context"

// Port: a read-through cache for geocoder results keyed by normalized query.
type GeocodeCache interface {
	// Return the cached result and whether it was present.
	Get(ctx context.Context, key string) (GeocodeResult, bool, error)
	// Store a result under key.
	Put(ctx context.Context, key string, result GeocodeResult) error
}
