// Package config handles configuration for the server component:
// defaults, an optional JSON file, process environment and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the marketpulse server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - DatabaseDSN: postgres:// URL (pgx) or a SQLite file path / file: URI.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Must be set.
//   - AccessTokenValidityDuration: lifetime of issued bearer tokens.
//   - NewsAPIKey / WeatherAPIKey: third-party credentials for the passthroughs.
//   - UpstreamTimeout: per-call timeout of the passthrough HTTP client.
//   - StaticDir: directory served under /static/; empty disables it.
//   - CORSAllowedOrigins: origins allowed by the CORS middleware; "*" allows all.
type Config struct {
	EndpointAddrHTTP            string        `envconfig:"HTTP_ADDR"`
	DatabaseDSN                 string        `envconfig:"DATABASE_DSN"`
	SecretKey                   string        `envconfig:"JWT_SECRET"`
	AccessTokenValidityDuration time.Duration `envconfig:"JWT_EXPIRATION"`
	BcryptCost                  int           `envconfig:"BCRYPT_COST"`

	NewsAPIKey        string        `envconfig:"NEWSAPI_API_KEY"`
	NewsAPIBaseURL    string        `envconfig:"NEWSAPI_BASE_URL"`
	NewsLanguage      string        `envconfig:"NEWSAPI_LANGUAGE"`
	NewsPageSize      int           `envconfig:"NEWSAPI_PAGE_SIZE"`
	WeatherAPIKey     string        `envconfig:"WEATHER_API_KEY"`
	WeatherAPIBaseURL string        `envconfig:"WEATHER_API_BASE_URL"`
	WeatherLanguage   string        `envconfig:"WEATHER_API_LANGUAGE"`
	UpstreamTimeout   time.Duration `envconfig:"UPSTREAM_TIMEOUT"`

	StaticDir          string   `envconfig:"STATIC_DIR"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string   `envconfig:"LOG_LEVEL"`
}

var (
	ErrMissingSecret  = errors.New("config: JWT secret is not set")
	ErrInvalidTTL     = errors.New("config: token validity must be positive")
	ErrInvalidAddress = errors.New("config: HTTP address is empty")
)

// LoadDefaults populates Config with development defaults. SecretKey is left
// empty on purpose so that Validate fails until an operator sets one.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDSN = "users.db"
	c.SecretKey = ""
	c.AccessTokenValidityDuration = time.Hour
	c.BcryptCost = bcrypt.DefaultCost

	c.NewsAPIBaseURL = "https://newsapi.org/v2/everything"
	c.NewsLanguage = "pt"
	c.NewsPageSize = 8
	c.WeatherAPIBaseURL = "https://api.weatherapi.com/v1/current.json"
	c.WeatherLanguage = "pt"
	c.UpstreamTimeout = 10 * time.Second

	c.CORSAllowedOrigins = []string{"*"}
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file given with
// -c/-config, then environment variables, then command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports operator errors that must stop the server at startup.
func (c *Config) Validate() error {
	if c.EndpointAddrHTTP == "" {
		return ErrInvalidAddress
	}
	if c.SecretKey == "" {
		return ErrMissingSecret
	}
	if c.AccessTokenValidityDuration <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
