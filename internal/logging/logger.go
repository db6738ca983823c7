// Package logging defines the structured, context-aware logger used by the
// server and its middleware. The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key/value pairs following the message, e.g.:
//
//	log.Info(ctx, "http.request", "method", r.Method, "status", status)
//
// The ctx argument carries per-request values such as the request id, which
// implementations attach to every record.
type Logger interface {
	// Debug logs detail useful only while diagnosing a problem.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs an unusual but non-fatal condition, e.g. a missing API key.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure that was handled by returning an error response.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
