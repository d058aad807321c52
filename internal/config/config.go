// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Pricing PricingConfig `yaml:"pricing"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// CatalogConfig defines IGDB catalog provider settings. ClientID and
// ClientSecret are deliberately not validated at load time: the token
// provider reports missing credentials as a ConfigError on first use, so
// the process boots (and serves health endpoints) without them.
type CatalogConfig struct {
	ClientID     string          `yaml:"client_id"`
	ClientSecret string          `yaml:"client_secret"`
	TokenURL     string          `yaml:"token_url"`
	APIURL       string          `yaml:"api_url"`
	CallTimeout  time.Duration   `yaml:"call_timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines catalog API rate limiting settings.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// PricingConfig defines CheapShark pricing provider settings.
type PricingConfig struct {
	BaseURL     string        `yaml:"base_url"`
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// CacheConfig defines response cache maintenance settings.
type CacheConfig struct {
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, used when no
// config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyCatalogDefaults(&cfg.Catalog)
	applyPricingDefaults(&cfg.Pricing)
	applyCacheDefaults(&cfg.Cache)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.TokenURL == "" {
		c.TokenURL = "https://id.twitch.tv/oauth2/token"
	}
	if c.APIURL == "" {
		c.APIURL = "https://api.igdb.com/v4"
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = 10 * time.Second
	}
	if c.RateLimit.PerSecond == 0 {
		// IGDB allows 4 requests per second per client id.
		c.RateLimit.PerSecond = 4.0
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 8
	}
}

func applyPricingDefaults(p *PricingConfig) {
	if p.BaseURL == "" {
		p.BaseURL = "https://www.cheapshark.com/api/1.0"
	}
	if p.CallTimeout == 0 {
		p.CallTimeout = 10 * time.Second
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.CleanupInterval == 0 {
		c.CleanupInterval = 5 * time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 0 and 65535"))
	}
	if cfg.Catalog.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("catalog.rate_limit.per_second must not be negative"))
	}
	if cfg.Cache.CleanupInterval < time.Second {
		errs = append(errs, fmt.Errorf("cache.cleanup_interval must be at least 1s"))
	}

	return errors.Join(errs...)
}
