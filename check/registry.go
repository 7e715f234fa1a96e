package check

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Grayjou/typesentinel/errors"
)

// registry maps type names to matchers for spec-driven check construction
// (FromMap, ParseSpec). Guarded by registryMu; the built-ins below are
// installed at init time and callers may add their own via RegisterType.
var (
	registryMu sync.RWMutex      //nolint:gochecknoglobals
	registry   = map[string]Type{ //nolint:gochecknoglobals
		"any":        Of[any](),
		"bool":       Of[bool](),
		"string":     Of[string](),
		"int":        Of[int](),
		"int8":       Of[int8](),
		"int16":      Of[int16](),
		"int32":      Of[int32](),
		"int64":      Of[int64](),
		"uint":       Of[uint](),
		"uint8":      Of[uint8](),
		"uint16":     Of[uint16](),
		"uint32":     Of[uint32](),
		"uint64":     Of[uint64](),
		"float32":    Of[float32](),
		"float64":    Of[float64](),
		"complex64":  Of[complex64](),
		"complex128": Of[complex128](),
		"byte":       Of[byte](),
		"rune":       Of[rune](),
		"bytes":      Of[[]byte](),
		"error":      Of[error](),
	}
)

// RegisterType makes a matcher available under the given name for FromMap and
// ParseSpec. Registering an existing name replaces it. Names must not contain
// "|", which is reserved for unions.
func RegisterType(name string, t Type) error {
	if name == "" || strings.Contains(name, "|") {
		return fmt.Errorf("%w: invalid type name %q", errors.ErrBadCheck, name)
	}

	if t == nil {
		return fmt.Errorf("%w: nil matcher for type name %q", errors.ErrBadCheck, name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = t

	return nil
}

// LookupType resolves a type name into a matcher. A name containing "|"
// resolves to a Union of the parts in declaration order, so "int | string"
// yields a matcher whose display name is exactly that.
func LookupType(name string) (Type, error) {
	parts := strings.Split(name, "|")

	if len(parts) > 1 {
		alternatives := make([]Type, 0, len(parts))

		for _, part := range parts {
			alt, err := lookupSingle(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}

			alternatives = append(alternatives, alt)
		}

		return Union(alternatives...), nil
	}

	return lookupSingle(strings.TrimSpace(name))
}

func lookupSingle(name string) (Type, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown type name %q", errors.ErrBadCheck, name)
	}

	return t, nil
}
