package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string
	RunMigrations      bool

	// Observability
	LogFormat        string
	LogLevel         string
	OTLPEndpoint     string
	TraceSampleRatio float64

	// Price source
	PriceCacheTTL time.Duration

	// Catalog
	CatalogCacheTTL    time.Duration
	CatalogSearchLimit int
	PopularLimit       int

	// Shopping lists and optimization
	ListTTL               time.Duration
	SavingsThresholdMinor int64

	// Rate limiting on the optimization endpoints
	OptimizeRateWindow time.Duration
	OptimizeRateMax    int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                  valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:           k.String("DATABASE_URL"),
		RedisURL:              k.String("REDIS_URL"),
		CORSAllowedOrigins:    splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		RunMigrations:         parseBool(k.String("DB_MIGRATE")),
		LogFormat:             valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:              valueOrDefault(k.String("LOG_LEVEL"), "info"),
		OTLPEndpoint:          k.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TraceSampleRatio:      parseFloat(k.String("TRACE_SAMPLE_RATIO"), 1),
		PriceCacheTTL:         parseDuration(k.String("PRICE_CACHE_TTL"), "2m"),
		CatalogCacheTTL:       parseDuration(k.String("CATALOG_CACHE_TTL"), "10m"),
		CatalogSearchLimit:    parseInt(k.String("CATALOG_SEARCH_LIMIT"), 10),
		PopularLimit:          parseInt(k.String("CATALOG_POPULAR_LIMIT"), 8),
		ListTTL:               parseDuration(k.String("LIST_TTL"), "24h"),
		SavingsThresholdMinor: parseInt64(k.String("SAVINGS_THRESHOLD_MINOR"), 100),
		OptimizeRateWindow:    parseDuration(k.String("OPTIMIZE_RATE_WINDOW"), "1m"),
		OptimizeRateMax:       parseInt(k.String("OPTIMIZE_RATE_MAX"), 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return v
	}
	return fallback
}

func parseInt64(value string, fallback int64) int64 {
	if v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
		return v
	}
	return fallback
}

func parseFloat(value string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return v
	}
	return fallback
}
