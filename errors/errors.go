// Package errors defines the sentinel errors shared across typesentinel and a
// small Collection type for accumulating several errors into one.
//
// Every error produced by the library wraps one of the sentinels below, so
// callers can classify failures with errors.Is without parsing messages:
//
//	if errors.Is(err, errors.ErrBadCheck) {
//	    // a check was misconfigured at wrap time
//	}
package errors

import "errors"

var (
	// ErrFailedCheck marks a call-time validation failure: one or more
	// arguments did not match their expected type. The concrete error is
	// *sentinel.Error, which carries the full failure context.
	ErrFailedCheck = errors.New("argument failed type check")

	// ErrBadCheck marks a configuration error in a check descriptor itself,
	// such as a negative positional index or a missing expected type.
	// Raised at wrap time, never at call time.
	ErrBadCheck = errors.New("malformed check")

	// ErrUnknownParameter marks a check or default that names a parameter
	// the wrapped function's signature does not have.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrNotFunction is returned when a non-function value is wrapped or
	// used to build a signature.
	ErrNotFunction = errors.New("not a function")

	// ErrBadSignature marks a configuration error in a signature: a
	// parameter-name count that does not match the function, duplicate
	// names, or a default value the parameter cannot hold.
	ErrBadSignature = errors.New("malformed signature")

	// ErrBadHandler marks a configuration error in failure-handler wiring,
	// such as installing both a synchronous and an asynchronous handler.
	ErrBadHandler = errors.New("malformed handler configuration")

	// ErrBind marks a calling-convention error: the supplied arguments
	// cannot be bound to the signature (too many positionals, unknown
	// keyword, missing required parameter, duplicate assignment). Bind
	// errors are returned directly to the caller and are never routed
	// through a failure handler.
	ErrBind = errors.New("cannot bind arguments")

	// ErrWrongType marks an invocation error: a handler suppressed a
	// validation failure but the offending value is not assignable to the
	// parameter's Go type, so the original function cannot be invoked.
	ErrWrongType = errors.New("wrong type")

	// ErrPanicRecovery wraps a panic recovered inside a future or callback.
	ErrPanicRecovery = errors.New("recovered from panic")
)

// Collection accumulates multiple errors and reports them as one. It is not
// safe for concurrent use. The resolver uses it to gather every configuration
// defect before failing a Wrap call, so the caller sees all problems at once
// rather than fixing them one by one.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// GetError returns the collected errors as a single error: nil when empty,
// the error itself when there is exactly one, and errors.Join otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
