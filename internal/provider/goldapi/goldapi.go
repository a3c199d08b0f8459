// Package goldapi fetches the per-gram 18k gold price from a goldapi.io
// style JSON endpoint.
package goldapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"goldprice/internal/httpx"
	"goldprice/internal/provider"
)

const Identity = "goldapi"

type Config struct {
	Endpoint string
	APIKey   string
	// UnitScale converts the quoted per-gram price into the smallest
	// currency unit. Defaults to 1.
	UnitScale int64
}

type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://www.goldapi.io/api/XAU/IRR"
	}
	if cfg.UnitScale <= 0 {
		cfg.UnitScale = 1
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return Identity }

type apiResponse struct {
	PriceGram18K json.Number `json:"price_gram_18k"`
	Error        string      `json:"error"`
}

func (p *Provider) Fetch(ctx context.Context) (provider.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Endpoint, nil)
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("x-access-token", p.cfg.APIKey)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "GET %s: %w", p.cfg.Endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return provider.Quote{}, provider.Fetchf(Identity, "GET %s -> %d: %s", p.cfg.Endpoint, resp.StatusCode, string(b))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var api apiResponse
	if err := dec.Decode(&api); err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "decode: %w", err)
	}
	if strings.TrimSpace(api.Error) != "" {
		return provider.Quote{}, provider.Fetchf(Identity, "provider error: %s", api.Error)
	}
	if api.PriceGram18K.String() == "" {
		return provider.Quote{}, provider.Fetchf(Identity, "price_gram_18k field is absent or empty")
	}

	gram, err := decimal.NewFromString(api.PriceGram18K.String())
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "parse price %q: %w", api.PriceGram18K.String(), err)
	}
	price := gram.Mul(decimal.NewFromInt(p.cfg.UnitScale)).IntPart()
	if price <= 0 {
		return provider.Quote{}, provider.Fetchf(Identity, "non-positive price %s", gram)
	}

	return provider.Quote{Price: price, AcquiredAt: time.Now().UnixMilli()}, nil
}
