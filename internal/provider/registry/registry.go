// Package registry resolves a configured provider identity to a concrete
// provider implementation.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"goldprice/internal/config"
	"goldprice/internal/httpx"
	"goldprice/internal/provider"
	"goldprice/internal/provider/goldapi"
	"goldprice/internal/provider/tgju"
)

// ErrUnknownProvider reports a provider identity with no registered
// constructor. This is a configuration error; callers should fail fast.
var ErrUnknownProvider = errors.New("unknown provider")

type builder func(cfg config.Config, hc *httpx.Client) provider.Provider

var builders = map[string]builder{
	tgju.Identity: func(cfg config.Config, hc *httpx.Client) provider.Provider {
		return tgju.New(tgju.Config{URL: cfg.TGJU.URL}, hc)
	},
	goldapi.Identity: func(cfg config.Config, hc *httpx.Client) provider.Provider {
		return goldapi.New(goldapi.Config{
			Endpoint:  cfg.GoldAPI.Endpoint,
			APIKey:    cfg.GoldAPI.APIKey,
			UnitScale: cfg.GoldAPI.UnitScale,
		}, hc)
	},
}

// New returns the provider registered under identity.
func New(identity string, cfg config.Config, hc *httpx.Client) (provider.Provider, error) {
	b, ok := builders[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, identity, strings.Join(Identities(), ", "))
	}
	return b(cfg, hc), nil
}

// Identities lists the registered provider identities, sorted.
func Identities() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
