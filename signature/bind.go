package signature

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/Grayjou/typesentinel/errors"
)

// Bound is the result of binding one call's arguments against a signature:
// every parameter resolved to a value, by position, by keyword, or from its
// default. Bound also remembers which parameters were explicitly supplied by
// the caller, which is what makes skip-when-absent checks possible.
type Bound struct {
	sig        *Signature
	values     []any
	supplied   []bool
	positional []any
}

// Bind maps the given positional and keyword arguments onto the signature's
// parameters and applies defaults. Binding enforces the calling convention
// only, never types: a value of the wrong type binds fine and is caught (or
// not) by validation. Errors wrap errors.ErrBind: too many positionals, an
// unknown keyword, a parameter assigned both positionally and by keyword, or
// a missing required parameter.
func (s *Signature) Bind(args []any, kwargs map[string]any) (*Bound, error) {
	numParams := len(s.params)

	bound := &Bound{
		sig:        s,
		values:     make([]any, numParams),
		supplied:   make([]bool, numParams),
		positional: append([]any(nil), args...),
	}

	filled := make([]bool, numParams)

	if err := s.bindPositional(bound, filled, args); err != nil {
		return nil, err
	}

	// Sorted keyword order keeps error messages deterministic.
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		idx, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s got an unexpected keyword %q", errors.ErrBind, s.funcName, name)
		}

		if filled[idx] {
			return nil, fmt.Errorf("%w: %s got multiple values for parameter %q", errors.ErrBind, s.funcName, name)
		}

		bound.values[idx] = kwargs[name]
		bound.supplied[idx] = true
		filled[idx] = true
	}

	for i, param := range s.params {
		if filled[i] {
			continue
		}

		switch {
		case param.HasDefault:
			bound.values[i] = defaultValue(param)
		case param.Variadic:
			bound.values[i] = []any{}
		default:
			return nil, fmt.Errorf("%w: %s is missing required parameter %q", errors.ErrBind, s.funcName, param.Name)
		}
	}

	return bound, nil
}

func (s *Signature) bindPositional(bound *Bound, filled []bool, args []any) error {
	numParams := len(s.params)

	if s.IsVariadic() {
		head := numParams - 1

		for i, arg := range args {
			if i < head {
				bound.values[i] = arg
				bound.supplied[i] = true
				filled[i] = true

				continue
			}

			// All remaining arguments collect into the variadic tail.
			bound.values[head] = append([]any(nil), args[head:]...)
			bound.supplied[head] = true
			filled[head] = true

			break
		}

		return nil
	}

	if len(args) > numParams {
		return fmt.Errorf(
			"%w: %s takes at most %d positional arguments, got %d",
			errors.ErrBind, s.funcName, numParams, len(args),
		)
	}

	for i, arg := range args {
		bound.values[i] = arg
		bound.supplied[i] = true
		filled[i] = true
	}

	return nil
}

// defaultValue renders a parameter's default for binding. A variadic default
// given as a single element becomes a one-element tail.
func defaultValue(param Param) any {
	if !param.Variadic || param.Default == nil {
		return param.Default
	}

	if reflect.TypeOf(param.Default).AssignableTo(param.Type) {
		return param.Default
	}

	return []any{param.Default}
}

// Value returns the bound value of the named parameter.
func (b *Bound) Value(name string) (any, bool) {
	idx, ok := b.sig.byName[name]
	if !ok {
		return nil, false
	}

	return b.values[idx], true
}

// ValueAt returns the bound value of the parameter at the given index.
func (b *Bound) ValueAt(i int) any {
	return b.values[i]
}

// Supplied reports whether the named parameter was explicitly passed by the
// caller, as opposed to bound from its default (or an empty variadic tail).
func (b *Bound) Supplied(name string) bool {
	idx, ok := b.sig.byName[name]
	if !ok {
		return false
	}

	return b.supplied[idx]
}

// Names returns the parameter names in declaration order.
func (b *Bound) Names() []string {
	names := make([]string, len(b.sig.params))
	for i, param := range b.sig.params {
		names[i] = param.Name
	}

	return names
}

// Positional returns the raw positional arguments exactly as supplied by the
// caller.
func (b *Bound) Positional() []any {
	out := make([]any, len(b.positional))
	copy(out, b.positional)

	return out
}

// Arguments returns a name-to-value map of every bound parameter.
func (b *Bound) Arguments() map[string]any {
	out := make(map[string]any, len(b.values))
	for i, param := range b.sig.params {
		out[param.Name] = b.values[i]
	}

	return out
}
