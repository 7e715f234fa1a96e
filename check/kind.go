package check

import (
	"fmt"

	"github.com/Grayjou/typesentinel/errors"
)

// Kind says how a check's target is addressed: by positional index or by
// parameter name.
type Kind int

const (
	// KindPositional targets an argument by its zero-based position.
	KindPositional Kind = iota

	// KindKeyword targets an argument by its parameter name.
	KindKeyword
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindKeyword:
		return "keyword"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromString parses "positional" or "keyword" into a Kind. Anything else
// is a configuration error.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "positional":
		return KindPositional, nil
	case "keyword":
		return KindKeyword, nil
	default:
		return KindPositional, fmt.Errorf("%w: invalid kind %q", errors.ErrBadCheck, s)
	}
}
