package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/iconick/hiddengems/internal/tier"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Pool     PoolConfig
	Cache    CacheConfig
	Tiers    TierConfig
	Install  InstallConfig
	Logging  LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8080"`
}

// UpstreamConfig holds registry client configuration.
type UpstreamConfig struct {
	URL       string        `envconfig:"UPSTREAM_URL" default:"https://api.wordpress.org/plugins/info/1.2/"`
	Timeout   time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
	UserAgent string        `envconfig:"UPSTREAM_USER_AGENT" default:""`
	RateLimit float64       `envconfig:"UPSTREAM_RATE_LIMIT" default:"0"`
}

// PoolConfig holds bulk aggregation configuration.
type PoolConfig struct {
	Capacity    int `envconfig:"POOL_CAPACITY" default:"2000"`
	BulkPerPage int `envconfig:"POOL_BULK_PER_PAGE" default:"500"`
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"30m"`
	Size int           `envconfig:"CACHE_SIZE" default:"8"`
}

// TierConfig holds gem classification thresholds.
type TierConfig struct {
	SuperHiddenMaxInstalls int `envconfig:"TIER_SUPER_HIDDEN_MAX_INSTALLS" default:"1000"`
	SuperHiddenMinQuality  int `envconfig:"TIER_SUPER_HIDDEN_MIN_QUALITY" default:"60"`
	HiddenMaxInstalls      int `envconfig:"TIER_HIDDEN_MAX_INSTALLS" default:"50000"`
	HiddenMinQuality       int `envconfig:"TIER_HIDDEN_MIN_QUALITY" default:"40"`
	EmergingMaxInstalls    int `envconfig:"TIER_EMERGING_MAX_INSTALLS" default:"100000"`
	EmergingMinQuality     int `envconfig:"TIER_EMERGING_MIN_QUALITY" default:"20"`
}

// Thresholds converts the env-sourced values into classifier thresholds.
func (c TierConfig) Thresholds() tier.Thresholds {
	return tier.Thresholds{
		SuperHiddenMaxInstalls: c.SuperHiddenMaxInstalls,
		SuperHiddenMinScore:    c.SuperHiddenMinQuality,
		HiddenMaxInstalls:      c.HiddenMaxInstalls,
		HiddenMinScore:         c.HiddenMinQuality,
		EmergingMaxInstalls:    c.EmergingMaxInstalls,
		EmergingMinScore:       c.EmergingMinQuality,
	}
}

// InstallConfig holds install trigger configuration.
type InstallConfig struct {
	ActionURL string `envconfig:"INSTALL_ACTION_URL" default:"/update.php"`
	Secret    string `envconfig:"INSTALL_SECRET" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Upstream: UpstreamConfig{
			URL:     "https://api.wordpress.org/plugins/info/1.2/",
			Timeout: 5 * time.Second,
		},
		Pool: PoolConfig{
			Capacity:    2000,
			BulkPerPage: 500,
		},
		Cache: CacheConfig{
			TTL:  30 * time.Minute,
			Size: 8,
		},
		Tiers: TierConfig{
			SuperHiddenMaxInstalls: 1000,
			SuperHiddenMinQuality:  60,
			HiddenMaxInstalls:      50000,
			HiddenMinQuality:       40,
			EmergingMaxInstalls:    100000,
			EmergingMinQuality:     20,
		},
		Install: InstallConfig{
			ActionURL: "/update.php",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
