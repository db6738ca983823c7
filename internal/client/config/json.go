package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/marketpulse/internal/flagx"
	"github.com/dmitrijs2005/marketpulse/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// is a timex.Duration, so "10s" and integer nanoseconds are both accepted.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Keys absent from the file keep their current values; read or decode
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		ServerBaseURL:  cfg.ServerBaseURL,
		RequestTimeout: timex.Duration{Duration: cfg.RequestTimeout},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerBaseURL = jc.ServerBaseURL
	cfg.RequestTimeout = jc.RequestTimeout.Duration
}
