// Package store persists the latest fetched gold price per provider in a
// shared expiring key-value store and validates its freshness on read.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"goldprice/internal/kv"
)

// Read failures. Every one of them means "no trustworthy price right now";
// callers on the request path are expected to degrade to zero.
var (
	ErrMissingTimestamp = errors.New("price timestamp not found")
	ErrInvalidTimestamp = errors.New("price timestamp is not an integer")
	ErrStaleData        = errors.New("price data is outdated")
	ErrMissingPrice     = errors.New("price not found")
)

const (
	DefaultMaxAge   = 30 * time.Minute
	DefaultEntryTTL = 30 * time.Minute
)

// Config holds the two freshness knobs. They default to the same value but
// are applied independently: EntryTTL caps how long the backing store keeps
// an entry at all, MaxAge is evaluated against the recorded acquisition
// time on every read.
type Config struct {
	MaxAge   time.Duration
	EntryTTL time.Duration
}

// PriceStore reads and writes one (price, acquired-at) record per provider
// identity. Writes are whole-record overwrites; concurrent writers race
// benignly with last-write-wins.
type PriceStore struct {
	kv       kv.Store
	maxAge   time.Duration
	entryTTL time.Duration
	clock    clockwork.Clock
	log      zerolog.Logger
}

func New(store kv.Store, cfg Config, clock clockwork.Clock, log zerolog.Logger) *PriceStore {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = DefaultEntryTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PriceStore{
		kv:       store,
		maxAge:   cfg.MaxAge,
		entryTTL: cfg.EntryTTL,
		clock:    clock,
		log:      log.With().Str("component", "pricestore").Logger(),
	}
}

func priceKey(identity string) string     { return identity + "-price" }
func timestampKey(identity string) string { return identity + "-price-timestamp" }

// Save validates and writes a record for identity. Validation failures
// reject the write before the store is touched, so the prior record stays
// intact. acquiredAt is milliseconds since epoch.
func (s *PriceStore) Save(ctx context.Context, identity string, price, acquiredAt int64) error {
	if identity == "" {
		return fmt.Errorf("save: empty provider identity")
	}
	if price <= 0 {
		return fmt.Errorf("save %s: invalid price %d", identity, price)
	}
	if acquiredAt <= 0 {
		return fmt.Errorf("save %s: invalid timestamp %d", identity, acquiredAt)
	}

	if err := s.kv.Set(ctx, priceKey(identity), strconv.FormatInt(price, 10), s.entryTTL); err != nil {
		return fmt.Errorf("save %s price: %w", identity, err)
	}
	if err := s.kv.Set(ctx, timestampKey(identity), strconv.FormatInt(acquiredAt, 10), s.entryTTL); err != nil {
		return fmt.Errorf("save %s timestamp: %w", identity, err)
	}
	s.log.Info().Str("provider", identity).Int64("price", price).Int64("acquired_at", acquiredAt).Msg("price saved")
	return nil
}

// Get returns the stored price for identity after checking that its
// acquisition timestamp exists, parses, and is within the staleness
// window. Staleness is judged at read time: a record can go stale with no
// intervening write.
func (s *PriceStore) Get(ctx context.Context, identity string) (int64, error) {
	price, _, err := s.Record(ctx, identity)
	return price, err
}

// Record is Get plus the acquisition timestamp, for callers that report on
// record age.
func (s *PriceStore) Record(ctx context.Context, identity string) (price, acquiredAt int64, err error) {
	tsRaw, err := s.kv.Get(ctx, timestampKey(identity))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return 0, 0, fmt.Errorf("%w: provider %s", ErrMissingTimestamp, identity)
		}
		return 0, 0, fmt.Errorf("get %s timestamp: %w", identity, err)
	}
	acquiredAt, perr := strconv.ParseInt(tsRaw, 10, 64)
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: provider %s: %q", ErrInvalidTimestamp, identity, tsRaw)
	}

	age := s.clock.Now().UnixMilli() - acquiredAt
	if age > s.maxAge.Milliseconds() {
		return 0, 0, fmt.Errorf("%w: provider %s: age %dms exceeds %dms", ErrStaleData, identity, age, s.maxAge.Milliseconds())
	}

	// The two keys expire independently; the price half can be gone while
	// the timestamp is still fresh.
	priceRaw, err := s.kv.Get(ctx, priceKey(identity))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return 0, 0, fmt.Errorf("%w: provider %s", ErrMissingPrice, identity)
		}
		return 0, 0, fmt.Errorf("get %s price: %w", identity, err)
	}
	price, perr = strconv.ParseInt(priceRaw, 10, 64)
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: provider %s: unparseable value %q", ErrMissingPrice, identity, priceRaw)
	}
	return price, acquiredAt, nil
}
