package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/marketpulse/internal/flagx"
	"github.com/dmitrijs2005/marketpulse/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "1h"-style strings and integer nanoseconds (timex.Duration).
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	NewsAPIKey                  string         `json:"newsapi_api_key"`
	NewsAPIBaseURL              string         `json:"newsapi_base_url"`
	NewsLanguage                string         `json:"newsapi_language"`
	NewsPageSize                int            `json:"newsapi_page_size"`
	WeatherAPIKey               string         `json:"weather_api_key"`
	WeatherAPIBaseURL           string         `json:"weather_api_base_url"`
	WeatherLanguage             string         `json:"weather_api_language"`
	UpstreamTimeout             timex.Duration `json:"upstream_timeout"`
	StaticDir                   string         `json:"static_dir"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config onto config. Keys missing
// from the file keep their current values. An unreadable or invalid file
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	fromJson(c, config)
}

func toJson(config *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP:            config.EndpointAddrHTTP,
		DatabaseDSN:                 config.DatabaseDSN,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: config.AccessTokenValidityDuration},
		BcryptCost:                  config.BcryptCost,
		NewsAPIKey:                  config.NewsAPIKey,
		NewsAPIBaseURL:              config.NewsAPIBaseURL,
		NewsLanguage:                config.NewsLanguage,
		NewsPageSize:                config.NewsPageSize,
		WeatherAPIKey:               config.WeatherAPIKey,
		WeatherAPIBaseURL:           config.WeatherAPIBaseURL,
		WeatherLanguage:             config.WeatherLanguage,
		UpstreamTimeout:             timex.Duration{Duration: config.UpstreamTimeout},
		StaticDir:                   config.StaticDir,
		CORSAllowedOrigins:          config.CORSAllowedOrigins,
		LogLevel:                    config.LogLevel,
	}
}

func fromJson(c *JsonConfig, config *Config) {
	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.NewsAPIKey = c.NewsAPIKey
	config.NewsAPIBaseURL = c.NewsAPIBaseURL
	config.NewsLanguage = c.NewsLanguage
	config.NewsPageSize = c.NewsPageSize
	config.WeatherAPIKey = c.WeatherAPIKey
	config.WeatherAPIBaseURL = c.WeatherAPIBaseURL
	config.WeatherLanguage = c.WeatherLanguage
	config.UpstreamTimeout = c.UpstreamTimeout.Duration
	config.StaticDir = c.StaticDir
	config.CORSAllowedOrigins = c.CORSAllowedOrigins
	config.LogLevel = c.LogLevel
}
