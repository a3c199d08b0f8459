// Package kv defines the minimal expiring key-value contract the price
// store depends on, together with a Redis-backed implementation and an
// in-memory one for tests.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that a key is absent or its entry has expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is the shared expiring key-value protocol. A ttl of zero or less
// means the entry does not expire.
//
//go:generate mockgen -package=kv -destination=mock_store.go -source=kv.go Store
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}
