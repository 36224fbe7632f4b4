// Package config provides configuration for the reporting CLI: built-in
// production/staging defaults, an optional TOML override file, and token
// loading from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// TokenEnvVar is the environment variable holding the API token.
const TokenEnvVar = "IFRC_GO_TOKEN"

// Environment names one API deployment and its listing endpoints.
type Environment struct {
	Name          string `toml:"name"`
	LocalUnitsURL string `toml:"local_units_url"`
	CountryURL    string `toml:"country_url"`
}

// CacheConfig configures the optional Redis page cache.
type CacheConfig struct {
	// RedisAddr enables the cache when non-empty (e.g. "localhost:6379").
	RedisAddr string `toml:"redis_addr"`

	// TTLMinutes is the page cache TTL in minutes.
	TTLMinutes int `toml:"ttl_minutes"`
}

// Config is the full runtime configuration.
type Config struct {
	// Limit is the page size for paginated requests.
	Limit int `toml:"limit"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Environments are processed in order; later reports keep that order.
	Environments []Environment `toml:"environments"`

	Cache CacheConfig `toml:"cache"`
}

// Default returns the built-in configuration: production and staging
// deployments, 50 records per page, 60 second timeout, cache disabled.
func Default() Config {
	return Config{
		Limit:          50,
		TimeoutSeconds: 60,
		Environments: []Environment{
			{
				Name:          "production",
				LocalUnitsURL: "https://goadmin.ifrc.org/api/v2/local-units/",
				CountryURL:    "https://goadmin.ifrc.org/api/v2/country/",
			},
			{
				Name:          "staging",
				LocalUnitsURL: "https://goadmin-stage.ifrc.org/api/v2/local-units/",
				CountryURL:    "https://goadmin-stage.ifrc.org/api/v2/country/",
			},
		},
		Cache: CacheConfig{
			TTLMinutes: 15,
		},
	}
}

// Load reads a TOML config from the given path and merges it over the
// defaults. A missing file is not an error; an empty path skips the file
// entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}

	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	if file.Limit > 0 {
		cfg.Limit = file.Limit
	}
	if file.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = file.TimeoutSeconds
	}
	if len(file.Environments) > 0 {
		cfg.Environments = file.Environments
	}
	if file.Cache.RedisAddr != "" {
		cfg.Cache.RedisAddr = file.Cache.RedisAddr
	}
	if file.Cache.TTLMinutes > 0 {
		cfg.Cache.TTLMinutes = file.Cache.TTLMinutes
	}

	return cfg, nil
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the page cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// Token loads a .env file if present and returns the API token from the
// environment. An empty token is not an error; endpoints may allow anonymous
// reads and failures surface as skipped environments.
func Token() string {
	// Best effort, matching the optional .env convention.
	_ = godotenv.Load()
	return os.Getenv(TokenEnvVar)
}
