// Package tgju scrapes the 18-karat gram gold price from tgju.org.
package tgju

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"goldprice/internal/httpx"
	"goldprice/internal/provider"
)

const Identity = "tgju"

// The page quotes rials; stored prices are tomans.
const rialsPerToman = 10

const priceSelector = `[data-col="info.last_trade.PDrCotVal"]`

// The site serves a different page to non-browser agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	URL string
}

type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.URL == "" {
		cfg.URL = "https://www.tgju.org/profile/geram18"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return Identity }

func (p *Provider) Fetch(ctx context.Context) (provider.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "GET %s: %w", p.cfg.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Quote{}, provider.Fetchf(Identity, "GET %s -> %d", p.cfg.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "parse page: %w", err)
	}
	sel := doc.Find(priceSelector).First()
	if sel.Length() == 0 {
		return provider.Quote{}, provider.Fetchf(Identity, "price element not found")
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return provider.Quote{}, provider.Fetchf(Identity, "price text is empty")
	}

	raw, err := strconv.ParseInt(strings.ReplaceAll(text, ",", ""), 10, 64)
	if err != nil {
		return provider.Quote{}, provider.Fetchf(Identity, "parse price %q: %w", text, err)
	}

	return provider.Quote{
		Price:      raw / rialsPerToman,
		AcquiredAt: time.Now().UnixMilli(),
	}, nil
}
