package pricing

import (
	"context"

	"github.com/rs/zerolog"
)

// PriceReader is the local cache's read surface.
type PriceReader interface {
	Price(ctx context.Context, identity string) int64
}

// Quoter is the outermost read boundary: it always returns an integer and
// never lets a failure out. A zero means "price unavailable", not an offer.
type Quoter struct {
	cache PriceReader
	log   zerolog.Logger
}

func NewQuoter(cache PriceReader, log zerolog.Logger) *Quoter {
	return &Quoter{cache: cache, log: log.With().Str("component", "quoter").Logger()}
}

// GoldPrice returns the current gold price for identity, or zero when it
// is unavailable for any reason, including anything unclassified.
func (q *Quoter) GoldPrice(ctx context.Context, identity string) (price int64) {
	defer func() {
		if rec := recover(); rec != nil {
			q.log.Error().Str("provider", identity).Str("op", "gold_price").Any("panic", rec).Msg("price read panicked")
			price = 0
		}
	}()
	return q.cache.Price(ctx, identity)
}

// ItemPrice computes the final sale price of one item against the current
// gold price. Degraded gold data yields zero by construction.
func (q *Quoter) ItemPrice(ctx context.Context, identity string, item Item) int64 {
	return FinalPrice(q.GoldPrice(ctx, identity), item.Weight, item.LaborWagePercent, item.DiscountPercent)
}
