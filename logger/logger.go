// Package logger configures structured logging for the library and lets a
// logger travel with a context.Context. Failure handlers and the future
// package use logger.Get to obtain the most specific logger available: the
// one carried by the context, falling back to the process default.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/Grayjou/typesentinel/contexts"
)

// contextKey is an unexported custom type for context keys. Using a custom
// type avoids collisions with other packages that might use the same string
// values for their own keys.
type contextKey string

// loggerKey is the context key under which a *slog.Logger is carried.
const loggerKey contextKey = "logger"

// configMutex serializes calls to ConfigureWithOptions, which mutate the
// process-wide default logger.
var configMutex sync.Mutex //nolint:gochecknoglobals

// Options configures logging.
type Options struct {
	// Subsystem is attached to every record as a "subsystem" attribute so
	// library logs are distinguishable from the host application's.
	Subsystem string
	// JSON selects JSON output instead of text.
	JSON bool
	// MinLevel is the minimum level that will be emitted.
	MinLevel slog.Level
	// Output is the destination writer. Defaults to os.Stdout.
	Output io.Writer
}

// ConfigureWithOptions configures the process default logger and returns it.
// It is safe for concurrent use, but concurrent calls are serialized because
// the function modifies global state (slog.SetDefault).
func ConfigureWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var handler slog.Handler

	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	} else {
		handler = slog.NewTextHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	}

	log := slog.New(handler)

	if opts.Subsystem != "" {
		log = log.With("subsystem", opts.Subsystem)
	}

	slog.SetDefault(log)

	return log
}

// WithLogger returns a context carrying the given logger. Get will return it
// for this context and its descendants. A nil logger leaves the context
// unchanged.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		return contexts.EnsureContext(ctx)
	}

	return contexts.WithValue(ctx, loggerKey, log)
}

// Get returns the logger carried by the first non-nil context that has one,
// falling back to the process default logger. Callers may invoke it with no
// arguments when no context is at hand.
func Get(ctx ...context.Context) *slog.Logger {
	for _, c := range ctx {
		if c == nil {
			continue
		}

		if log, ok := contexts.GetValue[contextKey, *slog.Logger](c, loggerKey); ok {
			return log
		}
	}

	return slog.Default()
}
