// Package refresh runs the periodic fetch-and-store cycle that keeps the
// price store populated, independent of any read request.
package refresh

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"goldprice/internal/config"
	"goldprice/internal/httpx"
	"goldprice/internal/provider/registry"
)

const (
	DefaultInterval = 180 * time.Second
	DefaultTimeout  = 10 * time.Second
)

// Saver is the price store's write surface.
type Saver interface {
	Save(ctx context.Context, identity string, price, acquiredAt int64) error
}

// Refresher fetches the current price from a provider and saves it. It is
// built to run unattended: a failed cycle is logged and swallowed so the
// next scheduled cycle still happens.
type Refresher struct {
	store    Saver
	cfg      config.Config
	client   *httpx.Client
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

func New(store Saver, cfg config.Config, hc *httpx.Client, log zerolog.Logger) *Refresher {
	interval := time.Duration(cfg.Gold.RefreshIntervalSec) * time.Second
	if interval <= 0 {
		interval = DefaultInterval
	}
	timeout := time.Duration(cfg.Gold.FetchTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Refresher{
		store:    store,
		cfg:      cfg,
		client:   hc,
		interval: interval,
		timeout:  timeout,
		log:      log.With().Str("component", "refresh").Logger(),
	}
}

// RunOnce performs a single resolve-fetch-save cycle for identity and
// reports whether it succeeded. Nothing propagates: errors and panics
// alike are logged and turned into false, and a failed cycle leaves the
// previously stored record untouched.
func (r *Refresher) RunOnce(ctx context.Context, identity string) (ok bool) {
	cycle := uuid.NewString()
	log := r.log.With().Str("provider", identity).Str("cycle", cycle).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Any("panic", rec).Msg("refresh cycle panicked")
			ok = false
		}
	}()

	p, err := registry.New(identity, r.cfg, r.client)
	if err != nil {
		log.Error().Err(err).Msg("provider resolution failed")
		return false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	q, err := p.Fetch(fetchCtx)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		return false
	}

	if err := r.store.Save(ctx, identity, q.Price, q.AcquiredAt); err != nil {
		log.Error().Err(err).Int64("price", q.Price).Msg("save failed")
		return false
	}
	log.Info().Int64("price", q.Price).Int64("acquired_at", q.AcquiredAt).Msg("price refreshed")
	return true
}

// Run refreshes identity immediately and then on a fixed period until ctx
// is canceled. Cycles overlap-tolerantly overwrite each other; the last
// write observed wins.
func (r *Refresher) Run(ctx context.Context, identity string) {
	r.log.Info().Str("provider", identity).Dur("interval", r.interval).Msg("refresh loop started")
	r.RunOnce(ctx, identity)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Str("provider", identity).Msg("refresh loop stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx, identity)
		}
	}
}
