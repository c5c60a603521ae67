// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"intake_backend/platform/validator"

	"github.com/joho/godotenv"
)

const (
	defaultNominatimURL       = "https://nominatim.openstreetmap.org/search"
	defaultNominatimUserAgent = "IntakeBackend/1.0"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// GeocodeConfig provides settings for the Nominatim client.
type GeocodeConfig interface {
	GetNominatimURL() string
	GetNominatimUserAgent() string
	GetNominatimEmail() string
	GetGeocodeTimeout() time.Duration
	GetGeocodeResultLimit() int
}

// CacheConfig provides settings for the optional geocode cache.
type CacheConfig interface {
	GetCacheRedisURL() string
	GetCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// AddressConfig provides settings for the validation pipeline.
type AddressConfig interface {
	GetSuggestionLimit() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string        `validate:"required"`
	HTTPAddr           string        `validate:"required"`
	CORSAllowAll       bool
	CORSOrigins        []string      `validate:"dive,required"`
	RateLimitRPS       float64       `validate:"gt=0"`
	RateLimitBurst     int           `validate:"min=1"`
	NominatimURL       string        `validate:"required,url"`
	NominatimUserAgent string        `validate:"required"`
	NominatimEmail     string        `validate:"omitempty,email"`
	GeocodeTimeout     time.Duration `validate:"gt=0"`
	GeocodeResultLimit int           `validate:"min=1,max=40"`
	SuggestionLimit    int           `validate:"min=1,max=40"`
	CacheRedisURL      string        `validate:"omitempty,url"`
	CacheTTL           time.Duration `validate:"gte=0"`
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// GeocodeConfig implementation
func (c *Config) GetNominatimURL() string          { return c.NominatimURL }
func (c *Config) GetNominatimUserAgent() string    { return c.NominatimUserAgent }
func (c *Config) GetNominatimEmail() string        { return c.NominatimEmail }
func (c *Config) GetGeocodeTimeout() time.Duration { return c.GeocodeTimeout }
func (c *Config) GetGeocodeResultLimit() int       { return c.GeocodeResultLimit }

// CacheConfig implementation
func (c *Config) GetCacheRedisURL() string   { return c.CacheRedisURL }
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }
func (c *Config) IsCacheEnabled() bool       { return c.CacheRedisURL != "" && c.CacheTTL > 0 }

// AddressConfig implementation
func (c *Config) GetSuggestionLimit() int { return c.SuggestionLimit }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
		corsOrigins = nil
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		RateLimitRPS:       mustFloat(getEnv("RATE_LIMIT_RPS", "2")),
		RateLimitBurst:     mustInt(getEnv("RATE_LIMIT_BURST", "10")),
		NominatimURL:       getEnv("NOMINATIM_URL", defaultNominatimURL),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", defaultNominatimUserAgent),
		NominatimEmail:     getEnv("NOMINATIM_EMAIL", ""),
		GeocodeTimeout:     mustDuration(getEnv("GEOCODE_TIMEOUT", "5s")),
		GeocodeResultLimit: mustInt(getEnv("GEOCODE_RESULT_LIMIT", "10")),
		SuggestionLimit:    mustInt(getEnv("SUGGESTION_LIMIT", "5")),
		CacheRedisURL:      getEnv("GEOCODE_CACHE_REDIS_URL", ""),
		CacheTTL:           mustDuration(getEnv("GEOCODE_CACHE_TTL", "24h")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
