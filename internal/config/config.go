package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server      ServerConfig
	Catalog     CatalogConfig
	NavState    NavStateConfig
	SubmitGuard SubmitGuardConfig
	Metrics     MetricsConfig
	Store       StoreConfig
	CORS        CORSConfig
	LogLevel    string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// CatalogConfig points at the remote product/order API.
// Load never leaves BaseURL empty: without CATALOG_API_URL the catalog is
// served from the storefront's own origin, PUBLIC_ORIGIN or the loopback
// listen address. It is never derived from an inbound request.
type CatalogConfig struct {
	BaseURL      string
	PublicOrigin string
}

type NavStateConfig struct {
	TTLSeconds     int
	CleanupSeconds int
	MaxEntries     int
}

type SubmitGuardConfig struct {
	Capacity uint
}

type MetricsConfig struct {
	APIKeys []string // empty leaves /metrics open
}

type StoreConfig struct {
	Name           string
	CurrencySymbol string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Catalog: CatalogConfig{
			BaseURL:      strings.TrimRight(getEnv("CATALOG_API_URL", ""), "/"),
			PublicOrigin: strings.TrimRight(getEnv("PUBLIC_ORIGIN", ""), "/"),
		},
		NavState: NavStateConfig{
			TTLSeconds:     getEnvAsInt("NAV_STATE_TTL", 1800),
			CleanupSeconds: getEnvAsInt("NAV_STATE_CLEANUP", 60),
			MaxEntries:     getEnvAsInt("NAV_STATE_MAX_ENTRIES", 10000),
		},
		SubmitGuard: SubmitGuardConfig{
			Capacity: uint(getEnvAsInt("SUBMIT_GUARD_CAPACITY", 100000)),
		},
		Metrics: MetricsConfig{
			APIKeys: getEnvAsSlice("METRICS_API_KEYS", nil),
		},
		Store: StoreConfig{
			Name:           getEnv("STORE_NAME", "SwiftShop"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = cfg.sameOrigin()
	}

	return cfg, nil
}

// sameOrigin is the catalog base URL used when CATALOG_API_URL is unset.
func (c *Config) sameOrigin() string {
	if c.Catalog.PublicOrigin != "" {
		return c.Catalog.PublicOrigin
	}
	return "http://127.0.0.1:" + c.Server.Port
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Catalog.BaseURL != "" && !isAbsoluteURL(c.Catalog.BaseURL) {
		return fmt.Errorf("CATALOG_API_URL must be an absolute URL, got %q", c.Catalog.BaseURL)
	}

	if c.Catalog.PublicOrigin != "" && !isAbsoluteURL(c.Catalog.PublicOrigin) {
		return fmt.Errorf("PUBLIC_ORIGIN must be an absolute URL, got %q", c.Catalog.PublicOrigin)
	}

	if c.NavState.TTLSeconds <= 0 {
		return fmt.Errorf("NAV_STATE_TTL must be positive")
	}

	if c.NavState.CleanupSeconds <= 0 {
		return fmt.Errorf("NAV_STATE_CLEANUP must be positive")
	}

	if c.NavState.MaxEntries <= 0 {
		return fmt.Errorf("NAV_STATE_MAX_ENTRIES must be positive")
	}

	if c.SubmitGuard.Capacity == 0 {
		return fmt.Errorf("SUBMIT_GUARD_CAPACITY must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
