// Package contexts provides small, type-safe helpers for working with
// context.Context values. The rest of the library uses these instead of bare
// context.WithValue/Value calls so that keys and values stay strongly typed.
package contexts

import "context"

// EnsureContext returns the first non-nil context passed in. If all values
// are nil (or none are given), a new background context is returned. Entry
// points use this so that a nil context from the caller never propagates.
func EnsureContext(ctx ...context.Context) context.Context {
	for _, c := range ctx {
		if c != nil {
			return c
		}
	}

	return context.Background()
}

// IsContextAlive returns true if the context is non-nil and not done.
// The check is non-blocking.
func IsContextAlive(ctx context.Context) bool {
	if ctx == nil {
		return false
	}

	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}

// WithValue is a type-safe wrapper around context.WithValue that stores a
// value of type V under a key of type K. A nil ctx is replaced with a new
// background context.
func WithValue[K any, V any](ctx context.Context, key K, value V) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, key, value)
}

// GetValue is a type-safe wrapper around context.Value that retrieves a value
// of type V using a key of type K. It returns the value and true when the key
// is present and the stored value has type V, and the zero value and false
// otherwise (including when ctx is nil).
func GetValue[K any, V any](ctx context.Context, key K) (V, bool) {
	var zero V

	if ctx == nil {
		return zero, false
	}

	val := ctx.Value(key)
	if val == nil {
		return zero, false
	}

	v, ok := val.(V)
	if !ok {
		return zero, false
	}

	return v, true
}
