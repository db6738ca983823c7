// Package config loads runtime configuration for the marketpulse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the marketpulse HTTP API
//	-i int      per-request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s"
//	}
package config
