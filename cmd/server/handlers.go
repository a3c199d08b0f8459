package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"goldprice/internal/pricing"
	"goldprice/internal/store"
)

const maxQuoteItems = 1000

type api struct {
	quoter          *pricing.Quoter
	store           *store.PriceStore
	defaultProvider string
	now             func() time.Time
	log             zerolog.Logger
}

func (a *api) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.handleHealthz)
	r.Get("/api/v1/gold-price", a.handleGoldPrice)
	r.Post("/api/v1/quotes", a.handleQuotes)
	r.Get("/api/v1/gold-price/status", a.handleStatus)
	return r
}

func (a *api) provider(r *http.Request) string {
	if p := r.URL.Query().Get("provider"); p != "" {
		return p
	}
	return a.defaultProvider
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type goldPriceResponse struct {
	Provider string `json:"provider"`
	Price    int64  `json:"price"`
}

// handleGoldPrice is the catalog layer's read contract: always 200, always
// an integer, zero when no trustworthy price exists.
func (a *api) handleGoldPrice(w http.ResponseWriter, r *http.Request) {
	identity := a.provider(r)
	writeJSON(w, http.StatusOK, goldPriceResponse{
		Provider: identity,
		Price:    a.quoter.GoldPrice(r.Context(), identity),
	})
}

type quotesRequest struct {
	Provider string         `json:"provider"`
	Items    []pricing.Item `json:"items"`
}

type quotesResponse struct {
	Provider  string  `json:"provider"`
	GoldPrice int64   `json:"gold_price"`
	Prices    []int64 `json:"prices"`
}

func (a *api) handleQuotes(w http.ResponseWriter, r *http.Request) {
	var req quotesRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "items cannot be empty", http.StatusBadRequest)
		return
	}
	if len(req.Items) > maxQuoteItems {
		http.Error(w, "too many items (max 1000)", http.StatusBadRequest)
		return
	}

	identity := req.Provider
	if identity == "" {
		identity = a.defaultProvider
	}

	gold := a.quoter.GoldPrice(r.Context(), identity)
	prices := make([]int64, len(req.Items))
	for i, item := range req.Items {
		prices[i] = pricing.FinalPrice(gold, item.Weight, item.LaborWagePercent, item.DiscountPercent)
	}
	writeJSON(w, http.StatusOK, quotesResponse{Provider: identity, GoldPrice: gold, Prices: prices})
}

type statusResponse struct {
	Provider   string `json:"provider"`
	OK         bool   `json:"ok"`
	Price      int64  `json:"price,omitempty"`
	AcquiredAt int64  `json:"acquired_at,omitempty"`
	AgeMS      int64  `json:"age_ms,omitempty"`
	Error      string `json:"error,omitempty"`
}

// handleStatus exposes the raw store verdict for operators. Unlike the
// read API, the failure kind is visible here.
func (a *api) handleStatus(w http.ResponseWriter, r *http.Request) {
	identity := a.provider(r)
	price, acquiredAt, err := a.store.Record(r.Context(), identity)
	if err != nil {
		writeJSON(w, http.StatusOK, statusResponse{Provider: identity, OK: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Provider:   identity,
		OK:         true,
		Price:      price,
		AcquiredAt: acquiredAt,
		AgeMS:      a.now().UnixMilli() - acquiredAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
