package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"goldprice/internal/config"
	"goldprice/internal/httpx"
	"goldprice/internal/kv"
	"goldprice/internal/refresh"
	"goldprice/internal/store"
)

func main() {
	var configPath string
	var identity string
	var once bool
	var intervalSec int

	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.StringVar(&identity, "provider", "", "provider identity (defaults to configured provider)")
	flag.BoolVar(&once, "once", false, "run a single refresh cycle and exit 0/1 on success/failure")
	flag.IntVar(&intervalSec, "interval", 0, "refresh interval seconds (overrides config)")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if identity == "" {
		identity = cfg.Gold.Provider
	}
	if intervalSec > 0 {
		cfg.Gold.RefreshIntervalSec = intervalSec
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	priceStore := store.New(kv.NewRedis(rdb), store.Config{
		MaxAge:   time.Duration(cfg.Gold.MaxAgeMS) * time.Millisecond,
		EntryTTL: time.Duration(cfg.Gold.StoreTTLSec) * time.Second,
	}, clockwork.NewRealClock(), log)

	httpClient := httpx.New(time.Duration(cfg.Gold.FetchTimeoutSec) * time.Second)
	refresher := refresh.New(priceStore, cfg, httpClient, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if once {
		if !refresher.RunOnce(ctx, identity) {
			os.Exit(1)
		}
		return
	}
	refresher.Run(ctx, identity)
}
