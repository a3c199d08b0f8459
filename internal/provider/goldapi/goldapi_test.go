package goldapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goldprice/internal/httpx"
	"goldprice/internal/provider"
)

func newProvider(t *testing.T, cfg Config, handler http.HandlerFunc) *Provider {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg.Endpoint = ts.URL
	return New(cfg, httpx.New(5*time.Second))
}

func TestFetch_ParsesAndScalesPrice(t *testing.T) {
	p := newProvider(t, Config{APIKey: "secret", UnitScale: 10}, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("x-access-token"))
		fmt.Fprint(w, `{"metal":"XAU","currency":"IRR","price_gram_18k":600000.4}`)
	})

	q, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(6_000_004), q.Price)
	require.Positive(t, q.AcquiredAt)
}

func TestFetch_UpstreamError(t *testing.T) {
	p := newProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"invalid token"}`)
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, Identity, fe.Provider)
}

func TestFetch_ErrorField(t *testing.T) {
	p := newProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"quota exceeded"}`)
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetch_MissingPriceField(t *testing.T) {
	p := newProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metal":"XAU"}`)
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetch_InvalidJSON(t *testing.T) {
	p := newProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>rate limited</html>`)
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetch_NonPositivePrice(t *testing.T) {
	p := newProvider(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"price_gram_18k":0}`)
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}
