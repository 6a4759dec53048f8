package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/lmittmann/tint"
)

// config holds environment-driven defaults. Flags override these.
type config struct {
	Languages     []string `env:"LINGOSNIP_LANGUAGES"      envSeparator:","`
	CatalogDir    string   `env:"LINGOSNIP_CATALOG_DIR"    envDefault:"./locales"`
	Marker        string   `env:"LINGOSNIP_MARKER"         envDefault:"lang"`
	CacheStrategy string   `env:"LINGOSNIP_CACHE_STRATEGY" envDefault:"memory"`
	CacheDir      string   `env:"LINGOSNIP_CACHE_DIR"      envDefault:".lingosnip-cache"`
	CacheTTL      int      `env:"LINGOSNIP_CACHE_TTL"      envDefault:"3600"`
	CacheMaxBytes int64    `env:"LINGOSNIP_CACHE_MAX_BYTES" envDefault:"52428800"`
	RedisURL      string   `env:"LINGOSNIP_REDIS_URL"`
	OpenAIAPIKey  string   `env:"OPENAI_API_KEY"`
	OpenAIModel   string   `env:"LINGOSNIP_OPENAI_MODEL"   envDefault:"gpt-4o-mini"`
	LogLevel      string   `env:"LINGOSNIP_LOG_LEVEL"      envDefault:"info"`
}

// loadConfig parses configuration from the environment.
func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger writing to w.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}
