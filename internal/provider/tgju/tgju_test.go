package tgju

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

func page(cell string) string {
	return fmt.Sprintf(`<html><body>
		<table><tr>
			<td data-col="info.last_trade.PDrCotVal">%s</td>
			<td data-col="info.last_trade.time">12:34:56</td>
		</tr></table>
	</body></html>`, cell)
}

func newProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(Config{URL: ts.URL}, httpx.New(5*time.Second))
}

func TestFetch_ParsesPrice(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// The site rejects non-browser agents; the provider must send one.
		require.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		fmt.Fprint(w, page("60,000,000"))
	})

	before := time.Now().UnixMilli()
	q, err := p.Fetch(context.Background())
	require.NoError(t, err)

	// Rials with thousands separators, divided by ten into tomans.
	require.Equal(t, int64(6_000_000), q.Price)
	require.GreaterOrEqual(t, q.AcquiredAt, before)
	require.LessOrEqual(t, q.AcquiredAt, time.Now().UnixMilli())
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, Identity, fe.Provider)
}

func TestFetch_PriceElementMissing(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>maintenance</p></body></html>")
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetch_PriceTextEmpty(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page("  "))
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetch_PriceNotNumeric(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page("n/a"))
	})

	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}

func TestFetch_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	p := New(Config{URL: url}, httpx.New(time.Second))
	_, err := p.Fetch(context.Background())
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
}
