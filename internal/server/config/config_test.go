package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, "users.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
	assert.Equal(t, "https://newsapi.org/v2/everything", c.NewsAPIBaseURL)
	assert.Equal(t, "pt", c.NewsLanguage)
	assert.Equal(t, 8, c.NewsPageSize)
	assert.Equal(t, "https://api.weatherapi.com/v1/current.json", c.WeatherAPIBaseURL)
	assert.Equal(t, "pt", c.WeatherLanguage)
	assert.Equal(t, 10*time.Second, c.UpstreamTimeout)
	assert.Equal(t, []string{"*"}, c.CORSAllowedOrigins)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_LayersEnvOverDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("NEWSAPI_API_KEY", "news-key")

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, "news-key", c.NewsAPIKey)
	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.SecretKey = "secret"
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.SecretKey = "" }, want: ErrMissingSecret},
		{name: "zero ttl", mutate: func(c *Config) { c.AccessTokenValidityDuration = 0 }, want: ErrInvalidTTL},
		{name: "negative ttl", mutate: func(c *Config) { c.AccessTokenValidityDuration = -time.Second }, want: ErrInvalidTTL},
		{name: "empty addr", mutate: func(c *Config) { c.EndpointAddrHTTP = "" }, want: ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
