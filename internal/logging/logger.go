// Package logging defines the structured logging interface the rest of the
// project depends on, keeping the concrete backend swappable.
package logging

import "context"

// Logger logs structured, context-aware messages. The variadic args are
// alternating key/value pairs:
//
//	log.Info(ctx, "starting server", "address", addr)
type Logger interface {
	// Debug logs fine-grained diagnostic details.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs routine operational messages.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
