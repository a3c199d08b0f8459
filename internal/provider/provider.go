package provider

import (
	"context"
	"fmt"
)

// Quote is a single fetched gold price. Price is in the smallest currency
// unit; AcquiredAt is milliseconds since epoch, stamped at fetch time.
type Quote struct {
	Price      int64 `json:"price"`
	AcquiredAt int64 `json:"acquired_at"`
}

// Provider fetches the current gold price from one external market source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (Quote, error)
}

// FetchError wraps any failure to reach or read an external source:
// transport errors, non-success statuses, missing price data, parse
// failures, and timeouts alike.
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Provider, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Fetchf builds a FetchError from a format string.
func Fetchf(name, format string, args ...any) error {
	return &FetchError{Provider: name, Err: fmt.Errorf(format, args...)}
}
