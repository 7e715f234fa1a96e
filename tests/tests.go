// Package tests provides helpers for test contexts. A test context carries a
// unique identifier and a test-scoped logger, so library code exercised from
// tests logs through the testing framework and log lines can be correlated
// with the test run that produced them.
//
// Example usage:
//
//	func TestMyFeature(t *testing.T) {
//	    ctx := tests.Context(t)
//	    // library code called with ctx logs via t.Log and can read the test ID
//	}
package tests

import (
	"context"
	"testing"

	"github.com/Grayjou/typesentinel/contexts"
	"github.com/Grayjou/typesentinel/logger"
	"github.com/google/uuid"
	"github.com/neilotoole/slogt"
)

// contextKey is a private type for the context keys below, preventing
// collisions with keys from other packages.
type contextKey string

const (
	// testIDKey stores the unique test identifier, a UUID prefixed with
	// "test-".
	testIDKey contextKey = "testId"

	// testNameKey stores the test name from testing.T.Name().
	testNameKey contextKey = "testName"
)

// Context returns a context derived from t.Context() that carries a unique
// test ID, the test name, and a logger that writes through t.Log.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx := logger.WithLogger(t.Context(), slogt.New(t))
	ctx = contexts.WithValue(ctx, testIDKey, "test-"+uuid.NewString())

	return contexts.WithValue(ctx, testNameKey, t.Name())
}

// ID returns the unique test identifier from the context, if present.
func ID(ctx context.Context) (string, bool) {
	return contexts.GetValue[contextKey, string](ctx, testIDKey)
}

// Name returns the test name from the context, if present.
func Name(ctx context.Context) (string, bool) {
	return contexts.GetValue[contextKey, string](ctx, testNameKey)
}
