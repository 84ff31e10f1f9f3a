package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides.
// DIARYSTATS_SERVER__PORT=9090 overrides server.port.
const EnvPrefix = "DIARYSTATS_"

// Config is the top-level application config.
type Config struct {
	Source     SourceConfig     `koanf:"source"`
	Collection CollectionConfig `koanf:"collection"`
	Server     ServerConfig     `koanf:"server"`
	Cache      CacheConfig      `koanf:"cache"`
	Log        LogConfig        `koanf:"log"`
}

type SourceConfig struct {
	BaseURL        string      `koanf:"base_url"`
	UserAgent      string      `koanf:"user_agent"`
	RequestTimeout string      `koanf:"request_timeout"` // per page fetch
	CollectTimeout string      `koanf:"collect_timeout"` // whole diary walk, API only
	MaxBodySizeMB  int         `koanf:"max_body_size_mb"`
	MaxPages       int         `koanf:"max_pages"` // 0 = until the first empty page
	Retry          RetryConfig `koanf:"retry"`
}

type RetryConfig struct {
	MaxAttempts     int    `koanf:"max_attempts"` // 1 = no retry
	InitialInterval string `koanf:"initial_interval"`
	MaxInterval     string `koanf:"max_interval"`
}

type CollectionConfig struct {
	TargetYear int    `koanf:"target_year"`
	YearMatch  string `koanf:"year_match"` // substring | parsed
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

type CacheConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Capacity int    `koanf:"capacity"`
	TTL      string `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

// Durations resolved by Validate.
func (c SourceConfig) RequestTimeoutDuration() time.Duration { return mustDuration(c.RequestTimeout) }
func (c SourceConfig) CollectTimeoutDuration() time.Duration { return mustDuration(c.CollectTimeout) }
func (c RetryConfig) InitialIntervalDuration() time.Duration { return mustDuration(c.InitialInterval) }
func (c RetryConfig) MaxIntervalDuration() time.Duration     { return mustDuration(c.MaxInterval) }
func (c CacheConfig) TTLDuration() time.Duration             { return mustDuration(c.TTL) }

// MaxBodyBytes converts the configured page size cap to bytes.
func (c SourceConfig) MaxBodyBytes() int64 {
	return int64(c.MaxBodySizeMB) * 1024 * 1024
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid source.base_url %q (must be an absolute http(s) URL)", c.Source.BaseURL)
	}
	if err := positiveDuration("source.request_timeout", c.Source.RequestTimeout); err != nil {
		return err
	}
	if err := positiveDuration("source.collect_timeout", c.Source.CollectTimeout); err != nil {
		return err
	}
	if c.Source.MaxBodySizeMB <= 0 {
		return fmt.Errorf("source.max_body_size_mb must be > 0")
	}
	if c.Source.MaxPages < 0 {
		return fmt.Errorf("source.max_pages must be >= 0")
	}
	if c.Source.Retry.MaxAttempts < 1 {
		return fmt.Errorf("source.retry.max_attempts must be >= 1")
	}
	if err := positiveDuration("source.retry.initial_interval", c.Source.Retry.InitialInterval); err != nil {
		return err
	}
	if err := positiveDuration("source.retry.max_interval", c.Source.Retry.MaxInterval); err != nil {
		return err
	}

	if c.Collection.TargetYear < 1000 || c.Collection.TargetYear > 9999 {
		return fmt.Errorf("invalid collection.target_year %d (must have four digits)", c.Collection.TargetYear)
	}
	if c.Collection.YearMatch != "substring" && c.Collection.YearMatch != "parsed" {
		return fmt.Errorf("invalid collection.year_match %q (must be substring or parsed)", c.Collection.YearMatch)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if c.Cache.Enabled {
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("cache.capacity must be > 0")
		}
		if err := positiveDuration("cache.ttl", c.Cache.TTL); err != nil {
			return err
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}

	return nil
}

func positiveDuration(key, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be > 0", key)
	}
	return nil
}

// Load parses config from defaults, an optional file and the environment, then validates it.
// An empty configPath skips the file layer.
func Load(configPath string) (*Config, error) {
	return load(configPath, time.Now())
}

func load(configPath string, now time.Time) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"source.base_url":               "https://letterboxd.com",
		"source.user_agent":             "diarystats/1.0",
		"source.request_timeout":        "15s",
		"source.collect_timeout":        "2m",
		"source.max_body_size_mb":       5,
		"source.max_pages":              0,
		"source.retry.max_attempts":     1,
		"source.retry.initial_interval": "500ms",
		"source.retry.max_interval":     "5s",
		"collection.target_year":        now.Year(),
		"collection.year_match":         "substring",
		"server.port":                   8080,
		"server.host":                   "0.0.0.0",
		"server.mode":                   "release",
		"cache.enabled":                 true,
		"cache.capacity":                128,
		"cache.ttl":                     "10m",
		"log.level":                     "info",
		"log.format":                    "text",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
