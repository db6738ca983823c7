package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		start       Config
		expected    Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "5",
				"-n", "nk", "-w", "wk", "-f", "./static", "-l", "debug",
			},
			expected: Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				NewsAPIKey:                  "nk",
				WeatherAPIKey:               "wk",
				StaticDir:                   "./static",
				LogLevel:                    "debug",
			},
		},
		{
			name:     "ttl kept without -t",
			args:     []string{"cmd", "-s", "secret"},
			start:    Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: Config{SecretKey: "secret", AccessTokenValidityDuration: 90 * time.Second},
		},
		{
			name:        "bad ttl",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
