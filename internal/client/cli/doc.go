// Package cli provides the interactive marketpulse command-line client.
//
// It wires configuration, the HTTP API client and the auth/market services
// into a small REPL. Typical flow: register once, login, then browse
// headlines and the current weather.
//
// Commands:
//   - register / login / logout / whoami
//   - news [query]       up to six headlines (default query "finance")
//   - weather [lat lon]  current conditions (server default location)
//   - ping               check that the server is reachable
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
