package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays variables that are present in the environment. Unset
// variables leave the current value untouched. Malformed values panic, like
// the other layers.
func parseEnv(config *Config) {
	if err := envconfig.Process("", config); err != nil {
		panic(err)
	}
}
