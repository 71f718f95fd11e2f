// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the pricing service.
// Defaults target a local Spanner emulator.
type Config struct {
	SpannerDatabase string `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/dev-instance/databases/rental-pricing-db"`
	GRPCPort        string `envconfig:"GRPC_PORT" default:"9090"`
	HTTPPort        string `envconfig:"HTTP_PORT" default:"8080"`

	// RedisAddr enables the active price-list cache; empty disables it.
	RedisAddr         string        `envconfig:"REDIS_ADDR"`
	PriceListCacheTTL time.Duration `envconfig:"PRICE_LIST_CACHE_TTL" default:"5m"`

	// QuoteMaxRentalDays bounds the rental window a quote may span.
	QuoteMaxRentalDays int `envconfig:"QUOTE_MAX_RENTAL_DAYS" default:"366"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	HTTPRateLimitPerMinute int           `envconfig:"HTTP_RATE_LIMIT_PER_MINUTE" default:"600"`
	HTTPRequestTimeout     time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"15s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.SpannerDatabase == "" {
		return nil, fmt.Errorf("SPANNER_DATABASE must be provided")
	}
	if cfg.HTTPRateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("HTTP_RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.HTTPRateLimitPerMinute)
	}
	if cfg.QuoteMaxRentalDays <= 0 {
		return nil, fmt.Errorf("QUOTE_MAX_RENTAL_DAYS must be positive, got %d", cfg.QuoteMaxRentalDays)
	}
	return &cfg, nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c != nil && c.RedisAddr != ""
}
