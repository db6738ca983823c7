package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-n string   NewsAPI key
//	-w string   WeatherAPI key
//	-f string   static files directory
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-n", "-w", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.NewsAPIKey, "n", config.NewsAPIKey, "NewsAPI key")
	fs.StringVar(&config.WeatherAPIKey, "w", config.WeatherAPIKey, "WeatherAPI key")
	fs.StringVar(&config.StaticDir, "f", config.StaticDir, "static files directory")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -t replaces the TTL, so sub-minute values from the
	// earlier layers survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
