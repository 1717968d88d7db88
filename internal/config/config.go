// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// Lead storage backends.
const (
	LeadsNoop     = "noop"
	LeadsPostgres = "postgres"
	LeadsSQLite   = "sqlite"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Site content: empty uses the embedded copy, a path enables hot reload.
	ContentFile string

	// Theme colours (hex); empty keeps the default palette.
	ThemePrimary    string
	ThemeBackground string
	ThemeText       string

	// Lead intake
	LeadsBackend string // LeadsNoop, LeadsPostgres or LeadsSQLite
	SQLitePath   string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). An empty host disables the page cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	PageCacheTTL   time.Duration

	// Form posts allowed per client IP per FormRateWindow.
	FormRateLimit  int
	FormRateWindow time.Duration

	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error for malformed values
// and for insecure defaults in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ContentFile: os.Getenv("SITE_CONTENT_FILE"),

		ThemePrimary:    os.Getenv("THEME_PRIMARY"),
		ThemeBackground: os.Getenv("THEME_BACKGROUND"),
		ThemeText:       os.Getenv("THEME_TEXT"),

		LeadsBackend: envOrDefault("LEADS_BACKEND", LeadsNoop),
		SQLitePath:   envOrDefault("SQLITE_PATH", "leads.db"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "rupinder"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "rupinder"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.PageCacheTTL, err = durationOrDefault("PAGE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FormRateWindow, err = durationOrDefault("FORM_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.FormRateLimit, err = intOrDefault("FORM_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = boolOrDefault("TRUST_PROXY", false); err != nil {
		return nil, err
	}

	switch cfg.LeadsBackend {
	case LeadsNoop, LeadsPostgres, LeadsSQLite:
	default:
		return nil, fmt.Errorf("LEADS_BACKEND must be one of %s, %s, %s; got %q",
			LeadsNoop, LeadsPostgres, LeadsSQLite, cfg.LeadsBackend)
	}

	if cfg.IsProd() && cfg.LeadsBackend == LeadsPostgres {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProd returns true in production mode. Cookies are marked Secure there.
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationOrDefault parses a time.Duration variable such as "90s".
func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

// intOrDefault parses a positive integer variable.
func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// boolOrDefault parses a boolean variable such as "true" or "0".
func boolOrDefault(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
