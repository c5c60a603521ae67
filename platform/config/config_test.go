package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.GetCORSOrigins())
	assert.False(t, cfg.GetCORSAllowAll())
	assert.Equal(t, defaultNominatimURL, cfg.GetNominatimURL())
	assert.Equal(t, 5*time.Second, cfg.GetGeocodeTimeout())
	assert.Equal(t, 10, cfg.GetGeocodeResultLimit())
	assert.Equal(t, 5, cfg.GetSuggestionLimit())
	assert.False(t, cfg.IsCacheEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("GEOCODE_TIMEOUT", "2s")
	t.Setenv("SUGGESTION_LIMIT", "3")
	t.Setenv("NOMINATIM_EMAIL", "ops@example.com")
	t.Setenv("GEOCODE_CACHE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.GetCORSOrigins())
	assert.Equal(t, 2*time.Second, cfg.GetGeocodeTimeout())
	assert.Equal(t, 3, cfg.GetSuggestionLimit())
	assert.Equal(t, "ops@example.com", cfg.GetNominatimEmail())
	assert.True(t, cfg.IsCacheEnabled())
	assert.Equal(t, 24*time.Hour, cfg.GetCacheTTL())
}

func TestLoadWildcardOrigin(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CORS_ORIGINS", "*")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.GetCORSAllowAll())
	assert.Empty(t, cfg.GetCORSOrigins())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"GEOCODE_TIMEOUT":      "soon",
		"NOMINATIM_URL":        "not a url",
		"NOMINATIM_EMAIL":      "nobody",
		"RATE_LIMIT_BURST":     "0",
		"GEOCODE_RESULT_LIMIT": "100",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, value)

			_, err := Load()
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it switches
// the working directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
