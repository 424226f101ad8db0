package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Prayer   PrayerConfig   `yaml:"prayer"`
	Geocode  GeocodeConfig  `yaml:"geocode"`
	Mosque   MosqueConfig   `yaml:"mosque"`
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// PrayerConfig controls the prayer times domain.
type PrayerConfig struct {
	DefaultMethod string        `yaml:"defaultMethod"`
	CacheTTL      time.Duration `yaml:"cacheTtl"`
	PreferAladhan bool          `yaml:"preferAladhan"`
	AladhanBase   string        `yaml:"aladhanBaseUrl"`
}

// GeocodeConfig controls reverse geocoding of request coordinates.
type GeocodeConfig struct {
	Enabled       bool   `yaml:"enabled"`
	NominatimBase string `yaml:"nominatimBaseUrl"`
	UserAgent     string `yaml:"userAgent"`
}

// MosqueConfig bounds mosque directory queries.
type MosqueConfig struct {
	DefaultRadiusMeters int `yaml:"defaultRadiusMeters"`
	MaxRadiusMeters     int `yaml:"maxRadiusMeters"`
	DefaultLimit        int `yaml:"defaultLimit"`
	MaxLimit            int `yaml:"maxLimit"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the schedule cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("PRAYER_DEFAULT_METHOD"); v != "" {
		cfg.Prayer.DefaultMethod = v
	}
	if v := os.Getenv("PRAYER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Prayer.CacheTTL = parsed
		}
	}
	if v := os.Getenv("PRAYER_PREFER_ALADHAN"); v != "" {
		cfg.Prayer.PreferAladhan = isTruthy(v)
	}
	if v := os.Getenv("ALADHAN_API_BASE"); v != "" {
		cfg.Prayer.AladhanBase = v
	}
	if v := os.Getenv("GEOCODE_ENABLED"); v != "" {
		cfg.Geocode.Enabled = isTruthy(v)
	}
	if v := os.Getenv("NOMINATIM_API_BASE"); v != "" {
		cfg.Geocode.NominatimBase = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Valkey.Enabled = isTruthy(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Valkey.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 100,
				Burst:             20,
			},
		},
		Prayer: PrayerConfig{
			DefaultMethod: "Egyptian",
			CacheTTL:      time.Hour,
			PreferAladhan: false,
			AladhanBase:   "https://api.aladhan.com/v1",
		},
		Geocode: GeocodeConfig{
			Enabled:       true,
			NominatimBase: "https://nominatim.openstreetmap.org",
			UserAgent:     "IslamStation/1.0",
		},
		Mosque: MosqueConfig{
			DefaultRadiusMeters: 5000,
			MaxRadiusMeters:     50000,
			DefaultLimit:        20,
			MaxLimit:            100,
		},
		Postgres: PostgresConfig{
			MaxConns: 10,
			MinConns: 0,
		},
		Valkey: ValkeyConfig{
			Enabled: false,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Prayer.DefaultMethod == "" {
		return errors.New("prayer.defaultMethod cannot be empty")
	}
	if c.Prayer.CacheTTL < 0 {
		return errors.New("prayer.cacheTtl cannot be negative")
	}
	if c.Prayer.PreferAladhan && strings.TrimSpace(c.Prayer.AladhanBase) == "" {
		return errors.New("prayer.aladhanBaseUrl cannot be empty when preferAladhan is set")
	}
	if c.Geocode.Enabled && strings.TrimSpace(c.Geocode.NominatimBase) == "" {
		return errors.New("geocode.nominatimBaseUrl cannot be empty when geocoding is enabled")
	}
	if c.Mosque.DefaultRadiusMeters <= 0 {
		return errors.New("mosque.defaultRadiusMeters must be positive")
	}
	if c.Mosque.MaxRadiusMeters < c.Mosque.DefaultRadiusMeters {
		return errors.New("mosque.maxRadiusMeters cannot be below the default radius")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when the schedule cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
