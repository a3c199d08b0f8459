// Package localcache memoizes price-store reads per provider identity for
// a short window, so request-path bursts do not hit the shared store on
// every read.
package localcache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 5 * time.Second

// Source is the price store contract the cache fronts.
type Source interface {
	Get(ctx context.Context, identity string) (int64, error)
}

type entry struct {
	value      int64
	err        error // non-nil when the memoized value is a degraded zero
	capturedAt time.Time
}

// Cache is a single-process memo keyed by provider identity. A failed
// store lookup is memoized as zero for the TTL window, so an outage
// produces zero-priced reads instead of a failing call per request.
type Cache struct {
	source Source
	ttl    time.Duration
	clock  clockwork.Clock
	log    zerolog.Logger

	sf singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
}

func New(source Source, ttl time.Duration, clock clockwork.Clock, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		source:  source,
		ttl:     ttl,
		clock:   clock,
		log:     log.With().Str("component", "localcache").Logger(),
		entries: make(map[string]entry),
	}
}

// Price returns the memoized price for identity, refreshing from the store
// when the entry is missing or older than the TTL. It always returns an
// integer; zero means no trustworthy price.
func (c *Cache) Price(ctx context.Context, identity string) int64 {
	v, _ := c.Lookup(ctx, identity)
	return v
}

// Lookup is Price with the underlying store error kept visible, so callers
// can tell a real zero from a degraded one. The error, like the value, is
// memoized for the TTL window.
func (c *Cache) Lookup(ctx context.Context, identity string) (int64, error) {
	c.mu.RLock()
	e, ok := c.entries[identity]
	c.mu.RUnlock()
	if ok && c.clock.Now().Sub(e.capturedAt) < c.ttl {
		return e.value, e.err
	}

	v, err, _ := c.sf.Do(identity, func() (any, error) {
		price, err := c.source.Get(ctx, identity)
		if err != nil {
			price = 0
			c.log.Warn().Str("provider", identity).Err(err).Msg("price lookup degraded to zero")
		}
		c.mu.Lock()
		c.entries[identity] = entry{value: price, err: err, capturedAt: c.clock.Now()}
		c.mu.Unlock()
		return price, err
	})
	return v.(int64), err
}
