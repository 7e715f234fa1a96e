package check

import "fmt"

// Result is the outcome of evaluating one Check against one call. Exactly one
// Result is produced per check per call, in check order. Results are
// immutable; failure handlers receive them through the failure context.
type Result struct {
	// Name is the display name of the argument: the check's custom name
	// when set, otherwise the name of the targeted parameter.
	Name string

	// Target is the rendered check target ("0" for positional index zero,
	// "label" for a keyword).
	Target string

	// Kind is the argument kind of the originating check.
	Kind Kind

	// Expected is the rendered expected type, with unions joined as
	// "A | B" in declaration order.
	Expected string

	// Value is the actual argument value that was checked.
	Value any

	// ActualType is the rendered dynamic type of Value ("nil" for nil).
	ActualType string

	// Passed reports whether the check passed.
	Passed bool

	// Message is the check's custom failure message, or "" when none.
	Message string

	// Skipped is true when an optional keyword was absent at call time and
	// the check therefore passed without a type comparison.
	Skipped bool
}

// String renders the result for logs.
func (r Result) String() string {
	status := "FAILED"

	switch {
	case r.Skipped:
		status = "SKIPPED"
	case r.Passed:
		status = "PASSED"
	}

	return fmt.Sprintf("<check %s %s=%v>", status, r.Name, r.Value)
}
