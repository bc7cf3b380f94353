package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// CachedAs reads key through cache as a T, loading and storing it on a miss.
// Redis hands back decoded JSON rather than T, so anything that is not already
// a T is re-marshalled into one.
func CachedAs[T any](cache CacheInterface, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var zero T

	val, err := cache.GetOrSet(key, ttl, func() (any, error) { return load() })
	if err != nil {
		return zero, err
	}

	if typed, ok := val.(T); ok {
		return typed, nil
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return zero, fmt.Errorf("cache %s: %w", key, err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("cache %s: %w", key, err)
	}
	return out, nil
}
