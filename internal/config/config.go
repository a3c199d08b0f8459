package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type Gold struct {
	Provider           string  `json:"provider"`
	MaxAgeMS           int64   `json:"max_age_ms"`
	StoreTTLSec        int     `json:"store_ttl_sec"`
	LocalTTLSec        float64 `json:"local_ttl_sec"`
	RefreshEnabled     bool    `json:"refresh_enabled"`
	RefreshIntervalSec int     `json:"refresh_interval_sec"`
	FetchTimeoutSec    int     `json:"fetch_timeout_sec"`
}

type TGJU struct {
	URL string `json:"url"`
}

type GoldAPI struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
	// UnitScale converts the upstream per-gram price into the smallest
	// currency unit (e.g. 100 for a price quoted in whole currency).
	UnitScale int64 `json:"unit_scale"`
}

type Config struct {
	Server  Server  `json:"server"`
	Redis   Redis   `json:"redis"`
	Gold    Gold    `json:"gold"`
	TGJU    TGJU    `json:"tgju"`
	GoldAPI GoldAPI `json:"goldapi"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10},
		Redis:  Redis{Addr: "localhost:6379"},
		Gold: Gold{
			Provider:           "tgju",
			MaxAgeMS:           30 * 60 * 1000,
			StoreTTLSec:        1800,
			LocalTTLSec:        5,
			RefreshEnabled:     true,
			RefreshIntervalSec: 180,
			FetchTimeoutSec:    10,
		},
		TGJU: TGJU{URL: "https://www.tgju.org/profile/geram18"},
		GoldAPI: GoldAPI{
			Endpoint:  "https://www.goldapi.io/api/XAU/IRR",
			UnitScale: 1,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Redis.DB = x
		}
	}
	if v := os.Getenv("GOLD_PROVIDER"); v != "" {
		cfg.Gold.Provider = v
	}
	if v := os.Getenv("GOLD_MAX_AGE_MS"); v != "" {
		var x int64
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Gold.MaxAgeMS = x
		}
	}
	if v := os.Getenv("GOLD_STORE_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Gold.StoreTTLSec = x
		}
	}
	if v := os.Getenv("GOLD_LOCAL_TTL_SEC"); v != "" {
		var x float64
		fmt.Sscanf(v, "%g", &x)
		if x > 0 {
			cfg.Gold.LocalTTLSec = x
		}
	}
	if v := os.Getenv("GOLD_REFRESH_ENABLED"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.Gold.RefreshEnabled = true
		case "0", "false", "no", "n":
			cfg.Gold.RefreshEnabled = false
		}
	}
	if v := os.Getenv("GOLD_REFRESH_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Gold.RefreshIntervalSec = x
		}
	}
	if v := os.Getenv("GOLD_FETCH_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Gold.FetchTimeoutSec = x
		}
	}
	if v := os.Getenv("TGJU_URL"); v != "" {
		cfg.TGJU.URL = v
	}
	if v := os.Getenv("GOLDAPI_ENDPOINT"); v != "" {
		cfg.GoldAPI.Endpoint = v
	}
	if v := os.Getenv("GOLDAPI_API_KEY"); v != "" {
		cfg.GoldAPI.APIKey = v
	}
	if v := os.Getenv("GOLDAPI_UNIT_SCALE"); v != "" {
		var x int64
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.GoldAPI.UnitScale = x
		}
	}
}
