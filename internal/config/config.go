package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type APIConfig struct {
	Addr           string        `env:"STUDIO_API_ADDR"        envDefault:":8080"`
	Store          string        `env:"STUDIO_STORE"           envDefault:"file"`
	DataDir        string        `env:"STUDIO_DATA_DIR"        envDefault:"data"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	SQLitePath     string        `env:"STUDIO_SQLITE_PATH"     envDefault:"data/studio.db"`
	Slot           string        `env:"STUDIO_SLOT"            envDefault:"default"`
	NatsURL        string        `env:"STUDIO_NATS_URL"`
	NatsPrefix     string        `env:"STUDIO_NATS_PREFIX"     envDefault:"studio"`
	LogLevel       string        `env:"STUDIO_LOG_LEVEL"       envDefault:"info"`
	APIToken       string        `env:"STUDIO_API_TOKEN"`
	RequestTimeout time.Duration `env:"STUDIO_REQUEST_TIMEOUT" envDefault:"60s"`
}

type WorkerConfig struct {
	APIBaseURL       string        `env:"STUDIO_API_BASE_URL"    envDefault:"http://localhost:8080"`
	APIToken         string        `env:"STUDIO_API_TOKEN"`
	TickEvery        time.Duration `env:"STUDIO_TICK_EVERY"      envDefault:"2s"`
	MarketVolatility string
	Seed             int64         `env:"STUDIO_SEED"`
	RunOnce          bool          `env:"STUDIO_WORKER_RUN_ONCE"`
	LogLevel         string        `env:"STUDIO_LOG_LEVEL"       envDefault:"info"`
}

type CLIConfig struct {
	APIBaseURL string `env:"STUDIO_API_BASE_URL" envDefault:"http://localhost:8080"`
	APIToken   string `env:"STUDIO_API_TOKEN"`
	QueueDir   string `env:"STUDIO_QUEUE_DIR"`
}

func LoadAPIFromEnv() (APIConfig, error) {
	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Addr = normalizeAddr(port)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	return cfg, cfg.Validate()
}

func (c APIConfig) Validate() error {
	el := errors.NewErrorList()

	switch c.Store {
	case StoreFile:
		if c.DataDir == "" {
			el.Add(fmt.Errorf("STUDIO_DATA_DIR is required for the file store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			el.Add(fmt.Errorf("DATABASE_URL is required for the postgres store"))
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			el.Add(fmt.Errorf("STUDIO_SQLITE_PATH is required for the sqlite store"))
		}
	default:
		el.Add(fmt.Errorf("unknown STUDIO_STORE %q", c.Store))
	}
	if c.Slot == "" {
		el.Add(fmt.Errorf("STUDIO_SLOT must not be empty"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		el.Add(err)
	}
	if c.RequestTimeout <= 0 {
		el.Add(fmt.Errorf("STUDIO_REQUEST_TIMEOUT must be positive"))
	}

	return el.Err()
}

func LoadWorkerFromEnv() (WorkerConfig, error) {
	var cfg WorkerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.MarketVolatility = envVolatilityDefault()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func (c WorkerConfig) Validate() error {
	el := errors.NewErrorList()

	if c.APIBaseURL == "" {
		el.Add(fmt.Errorf("STUDIO_API_BASE_URL is required"))
	}
	if c.TickEvery <= 0 {
		el.Add(fmt.Errorf("STUDIO_TICK_EVERY must be positive"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		el.Add(err)
	}

	return el.Err()
}

func LoadCLIFromEnv() CLIConfig {
	var cfg CLIConfig
	_ = env.Parse(&cfg)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg
}

// ParseLevel maps a level name onto slog.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid STUDIO_LOG_LEVEL %q", s)
	}
	return lvl, nil
}

func normalizeAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func envVolatilityDefault() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("VOLATILITY")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(os.Getenv("STUDIO_MARKET_VOLATILITY")))
	}
	switch v {
	case "calm", "mor", "wild":
		return v
	default:
		return "mor"
	}
}
