// Package kv is the session key-value store behind the cart. The cart is an
// opaque per-session blob, so the only contract the rest of the code needs is
// get/set/delete on string keys.
package kv

import (
	"context"
	"time"
)

// Store abstracts the session store. Get returns ("", nil) for a missing key;
// callers decide whether absence matters.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
