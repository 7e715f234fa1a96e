package check

import (
	"fmt"

	"github.com/Grayjou/typesentinel/errors"
	"gopkg.in/yaml.v3"
)

// specEntry is the serialized form of one check, shared by FromMap and
// ParseSpec.
type specEntry struct {
	Key      any    `yaml:"key"`
	Type     string `yaml:"type"`
	Kind     string `yaml:"kind"`
	Message  string `yaml:"message"`
	Name     string `yaml:"name"`
	Optional bool   `yaml:"optional"`
}

type specDoc struct {
	Checks []specEntry `yaml:"checks"`
}

// FromMap builds a Check from a generic map, the dynamic counterpart of the
// constructors. Recognized keys:
//
//	key      int (positional index) or string (parameter name); required
//	type     type name resolved via the registry, "|" for unions; required
//	         (the value may also be a check.Type directly)
//	kind     "positional" or "keyword"; defaults to the key's natural kind
//	message  custom failure message
//	name     custom display name
//	optional true for a skip-when-absent keyword check
//
// Malformed entries are configuration errors, reported immediately.
func FromMap(entry map[string]any) (Check, error) {
	spec := specEntry{
		Key: entry["key"],
	}

	if s, ok := entry["message"].(string); ok {
		spec.Message = s
	}

	if s, ok := entry["name"].(string); ok {
		spec.Name = s
	}

	if b, ok := entry["optional"].(bool); ok {
		spec.Optional = b
	}

	if s, ok := entry["kind"].(string); ok {
		spec.Kind = s
	}

	// The type may be given directly as a matcher instead of a name.
	if t, ok := entry["type"].(Type); ok {
		return fromEntry(spec, t)
	}

	if s, ok := entry["type"].(string); ok {
		spec.Type = s

		return fromEntry(spec, nil)
	}

	return Check{}, fmt.Errorf("%w: entry is missing a type", errors.ErrBadCheck)
}

// ParseSpec parses a YAML document of the form
//
//	checks:
//	  - key: 0
//	    type: int
//	  - key: label
//	    kind: keyword
//	    type: int | string
//	    message: label must be a string or an int
//	    optional: true
//
// into an ordered list of checks. Any malformed entry fails the whole parse;
// spec files are configuration, and configuration errors must not be deferred
// to call time.
func ParseSpec(data []byte) ([]Check, error) {
	var doc specDoc

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrBadCheck, err)
	}

	checks := make([]Check, 0, len(doc.Checks))

	for i, entry := range doc.Checks {
		c, err := fromEntry(entry, nil)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}

		checks = append(checks, c)
	}

	return checks, nil
}

func fromEntry(entry specEntry, expected Type) (Check, error) {
	if expected == nil {
		if entry.Type == "" {
			return Check{}, fmt.Errorf("%w: entry is missing a type", errors.ErrBadCheck)
		}

		t, err := LookupType(entry.Type)
		if err != nil {
			return Check{}, err
		}

		expected = t
	}

	if entry.Kind != "" {
		if _, err := KindFromString(entry.Kind); err != nil {
			return Check{}, err
		}
	}

	var opts []Option

	if entry.Message != "" {
		opts = append(opts, WithMessage(entry.Message))
	}

	if entry.Name != "" {
		opts = append(opts, WithDisplayName(entry.Name))
	}

	switch key := entry.Key.(type) {
	case int:
		if entry.Kind == KindKeyword.String() {
			return Check{}, fmt.Errorf("%w: keyword checks require a string key, got %d", errors.ErrBadCheck, key)
		}

		if entry.Optional {
			return Check{}, fmt.Errorf("%w: optional is only valid for keyword checks", errors.ErrBadCheck)
		}

		return Positional(key, expected, opts...), nil

	case string:
		if entry.Kind == KindPositional.String() {
			return Check{}, fmt.Errorf("%w: positional checks require an integer key, got %q", errors.ErrBadCheck, key)
		}

		if entry.Optional {
			return OptionalKeyword(key, expected, opts...), nil
		}

		return Keyword(key, expected, opts...), nil

	default:
		return Check{}, fmt.Errorf("%w: key must be an integer index or a parameter name, got %T", errors.ErrBadCheck, entry.Key)
	}
}
