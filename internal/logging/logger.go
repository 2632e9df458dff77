// Package logging is the server's structured logger. Components receive a
// Logger explicitly; cmd/server builds the JSON one and tests use Nop.
//
// Records written with a context that carries an OpenTelemetry span get
// trace_id and span_id attributes, so a log line can be found from a trace.
package logging

import "context"

// Logger logs a message with alternating key and value args:
//
//	log.Info(ctx, "garden watered", "garden_id", id)
//
// Ids are logged under user_id, garden_id and flower_id. Passwords, digests
// and tokens are never logged.
type Logger interface {
	// Debug is for rejected tokens and other per-request noise.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a Logger that adds args to every record.
	With(args ...any) Logger
}
