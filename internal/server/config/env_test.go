package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/marketpulse")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("WEATHER_API_KEY", "weather-key")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://example.com")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, "127.0.0.1:9000", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@db:5432/marketpulse", c.DatabaseDSN)
	assert.Equal(t, "s3cr3t", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "weather-key", c.WeatherAPIKey)
	assert.Equal(t, 3*time.Second, c.UpstreamTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, c.CORSAllowedOrigins)

	// untouched
	assert.Equal(t, "pt", c.NewsLanguage)
	assert.Equal(t, 8, c.NewsPageSize)
}

func TestParseEnv_Malformed(t *testing.T) {
	t.Setenv("NEWSAPI_PAGE_SIZE", "eight")

	c := &Config{}
	require.Panics(t, func() { parseEnv(c) })
}
