// Package client talks to the marketpulse HTTP API on behalf of the CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login/Logout, Me, MarketData, Weather and Ping.
//  2. An HTTP implementation (see HTTPClient) built on a pooled
//     go-cleanhttp client. After Login it keeps the bearer token in memory
//     and attaches it to every gated call.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrConflict, ErrNotLoggedIn.
// Any other non-2xx answer is returned as *APIError.
package client
