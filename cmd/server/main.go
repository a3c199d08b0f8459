package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"goldprice/internal/config"
	"goldprice/internal/httpx"
	"goldprice/internal/kv"
	"goldprice/internal/localcache"
	"goldprice/internal/pricing"
	"goldprice/internal/refresh"
	"goldprice/internal/store"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	clock := clockwork.NewRealClock()

	priceStore := store.New(kv.NewRedis(rdb), store.Config{
		MaxAge:   time.Duration(cfg.Gold.MaxAgeMS) * time.Millisecond,
		EntryTTL: time.Duration(cfg.Gold.StoreTTLSec) * time.Second,
	}, clock, log)

	cache := localcache.New(
		priceStore,
		time.Duration(cfg.Gold.LocalTTLSec*float64(time.Second)),
		clock,
		log,
	)

	a := &api{
		quoter:          pricing.NewQuoter(cache, log),
		store:           priceStore,
		defaultProvider: cfg.Gold.Provider,
		now:             clock.Now,
		log:             log,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Server.Port).Str("provider", cfg.Gold.Provider).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	if cfg.Gold.RefreshEnabled {
		httpClient := httpx.New(time.Duration(cfg.Gold.FetchTimeoutSec) * time.Second)
		refresher := refresh.New(priceStore, cfg, httpClient, log)
		g.Go(func() error {
			refresher.Run(gctx, cfg.Gold.Provider)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
