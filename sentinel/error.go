package sentinel

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/Grayjou/typesentinel/errors"
)

// Error is the structured error produced by the default failure handler. Its
// message enumerates every failed check in evaluation order, and the full
// failure context is attached for programmatic inspection:
//
//	Invalid type for argument 'name': expected string, got int
//
// Multiple failures join with "; ". A check with a custom message uses that
// message as the fragment prefix instead of the default format. Error
// supports errors.Is against errors.ErrFailedCheck.
type Error struct {
	// Context is the failure context of the rejected call.
	Context *Context

	message string
}

func newError(fc *Context) *Error {
	fragments := make([]string, 0, len(fc.FailedResults))

	for _, r := range fc.FailedResults {
		base := r.Message
		if base == "" {
			base = fmt.Sprintf("Invalid type for argument '%s': expected %s", r.Name, r.Expected)
		}

		fragments = append(fragments, fmt.Sprintf("%s, got %s", base, r.ActualType))
	}

	return &Error{
		Context: fc,
		message: strings.Join(fragments, "; "),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.message
}

// Unwrap makes errors.Is(err, errors.ErrFailedCheck) true for every Error.
func (e *Error) Unwrap() error {
	return errors.ErrFailedCheck
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var sentinelErr *Error
	if stderrors.As(err, &sentinelErr) {
		return sentinelErr, true
	}

	return nil, false
}
