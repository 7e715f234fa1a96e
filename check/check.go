package check

import (
	"fmt"
	"strconv"

	"github.com/Grayjou/typesentinel/errors"
)

// Option customizes a Check at construction time.
type Option func(*Check)

// WithMessage sets a custom failure message for the check. When set, the
// default "Invalid type for argument ..." prefix is replaced with this
// message in the aggregated failure report.
func WithMessage(message string) Option {
	return func(c *Check) {
		c.message = message
	}
}

// WithDisplayName sets the name used for the argument in results and error
// messages. Without it, a check adopts the name of the parameter it targets.
func WithDisplayName(name string) Option {
	return func(c *Check) {
		c.name = name
	}
}

// Check is the atomic unit of validation: it binds a target (positional index
// or parameter name) to an expected type, with an optional custom message and
// display name. A Check is immutable once constructed.
//
// Construction defects (a negative index, an empty keyword, a missing
// expected type) are not reported by the constructors; they are carried
// inside the Check and surface as configuration errors when the check is
// resolved against a signature at wrap time. This keeps literal check lists
// ergonomic while still failing fast before any call runs.
type Check struct {
	kind     Kind
	index    int
	key      string
	expected Type
	message  string
	name     string
	optional bool
	defect   error
}

// Positional returns a check targeting the argument at the given zero-based
// position.
func Positional(index int, expected Type, opts ...Option) Check {
	c := Check{
		kind:     KindPositional,
		index:    index,
		expected: expected,
	}

	if index < 0 {
		c.defect = fmt.Errorf("%w: positional index must not be negative, got %d", errors.ErrBadCheck, index)
	}

	return c.finish(opts)
}

// Keyword returns a check targeting the argument bound to the named
// parameter.
func Keyword(name string, expected Type, opts ...Option) Check {
	c := Check{
		kind:     KindKeyword,
		key:      name,
		expected: expected,
	}

	if name == "" {
		c.defect = fmt.Errorf("%w: keyword name must not be empty", errors.ErrBadCheck)
	}

	return c.finish(opts)
}

// OptionalKeyword returns a keyword check that is inert when its parameter
// was not explicitly supplied at call time: the check then produces a passing
// (skipped) result without any type comparison. Use it for parameters with
// defaults that should only be validated when the caller actually passes
// them.
func OptionalKeyword(name string, expected Type, opts ...Option) Check {
	c := Keyword(name, expected, opts...)
	c.optional = true

	return c
}

func (c Check) finish(opts []Option) Check {
	for _, opt := range opts {
		opt(&c)
	}

	if c.defect == nil && c.expected == nil {
		c.defect = fmt.Errorf("%w: expected type must not be nil (target %s)", errors.ErrBadCheck, c.Target())
	}

	return c
}

// Kind returns whether the check targets by position or by name.
func (c Check) Kind() Kind {
	return c.kind
}

// Index returns the positional target. Only meaningful for KindPositional.
func (c Check) Index() int {
	return c.index
}

// Key returns the keyword target. Only meaningful for KindKeyword.
func (c Check) Key() string {
	return c.key
}

// Expected returns the expected-type matcher.
func (c Check) Expected() Type {
	return c.expected
}

// Message returns the custom failure message, or "" when none was set.
func (c Check) Message() string {
	return c.message
}

// DisplayName returns the custom display name, or "" when none was set.
func (c Check) DisplayName() string {
	return c.name
}

// Optional reports whether the check is skipped when its keyword was not
// explicitly supplied.
func (c Check) Optional() bool {
	return c.optional
}

// Defect returns the construction defect carried by the check, or nil. The
// resolver surfaces defects as configuration errors at wrap time.
func (c Check) Defect() error {
	return c.defect
}

// Target renders the target for messages: the index for positional checks,
// the parameter name for keyword checks.
func (c Check) Target() string {
	if c.kind == KindPositional {
		return strconv.Itoa(c.index)
	}

	return c.key
}

// String renders the check for logs, e.g. `check(keyword "label": string)`.
func (c Check) String() string {
	expected := "<nil>"
	if c.expected != nil {
		expected = c.expected.Name()
	}

	if c.kind == KindPositional {
		return fmt.Sprintf("check(positional %d: %s)", c.index, expected)
	}

	if c.optional {
		return fmt.Sprintf("check(optional keyword %q: %s)", c.key, expected)
	}

	return fmt.Sprintf("check(keyword %q: %s)", c.key, expected)
}
