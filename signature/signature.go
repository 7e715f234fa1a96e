// Package signature models a function's parameter list as an explicit,
// queryable object. Go reflection exposes parameter types but not parameter
// names or default values, so both are supplied by the caller when the
// signature is built; this is the documented capability gap between Go and
// languages with runtime parameter annotations. A signature is built once at
// wrap time and reused for every call.
package signature

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/Grayjou/typesentinel/errors"
)

// Param describes one parameter of a signature.
type Param struct {
	// Name is the parameter's name, either supplied by the caller or an
	// auto-generated "argN" placeholder.
	Name string

	// Type is the parameter's declared Go type. For the variadic
	// parameter of a variadic function this is the slice type.
	Type reflect.Type

	// HasDefault reports whether a default value was registered for the
	// parameter via WithDefault.
	HasDefault bool

	// Default is the registered default value; only meaningful when
	// HasDefault is true.
	Default any

	// Variadic marks the trailing parameter of a variadic function.
	Variadic bool
}

// Signature is the queryable parameter list of a function. It is immutable;
// WithDefault returns a modified copy. Safe for concurrent reads.
type Signature struct {
	fv       reflect.Value
	ft       reflect.Type
	funcName string
	params   []Param
	byName   map[string]int
}

// Of builds a signature for fn. Parameter names are optional: when given,
// their count must match the function's parameter count; when omitted,
// parameters are named "arg0" through "argN". Returns a configuration error
// for non-functions, mismatched name counts, or duplicate names.
func Of(fn any, names ...string) (*Signature, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: got nil", errors.ErrNotFunction)
	}

	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: got %s", errors.ErrNotFunction, fv.Kind())
	}

	ft := fv.Type()
	numIn := ft.NumIn()

	if len(names) > 0 && len(names) != numIn {
		return nil, fmt.Errorf(
			"%w: %d parameter names for a function with %d parameters",
			errors.ErrBadSignature, len(names), numIn,
		)
	}

	sig := &Signature{
		fv:       fv,
		ft:       ft,
		funcName: funcName(fv),
		params:   make([]Param, 0, numIn),
		byName:   make(map[string]int, numIn),
	}

	for i := range numIn {
		name := fmt.Sprintf("arg%d", i)
		if len(names) > 0 {
			name = names[i]
		}

		if name == "" {
			return nil, fmt.Errorf("%w: parameter %d has an empty name", errors.ErrBadSignature, i)
		}

		if _, exists := sig.byName[name]; exists {
			return nil, fmt.Errorf("%w: duplicate parameter name %q", errors.ErrBadSignature, name)
		}

		sig.params = append(sig.params, Param{
			Name:     name,
			Type:     ft.In(i),
			Variadic: ft.IsVariadic() && i == numIn-1,
		})
		sig.byName[name] = i
	}

	return sig, nil
}

// WithDefault returns a copy of the signature where the named parameter has
// the given default value. A parameter with a default that is not explicitly
// supplied at call time binds to the default, and checks derived from the
// signature treat it as optional (validated only when explicitly passed).
//
// The default must be a value the parameter can actually hold, because the
// wrapped function receives it when the caller omits the argument. For a
// variadic parameter the default may be a slice of the element type or a
// single element.
func (s *Signature) WithDefault(name string, value any) (*Signature, error) {
	idx, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no default to set", errors.ErrUnknownParameter, name)
	}

	param := s.params[idx]
	if err := checkDefaultAssignable(param, value); err != nil {
		return nil, err
	}

	clone := *s
	clone.params = make([]Param, len(s.params))
	copy(clone.params, s.params)

	clone.params[idx].HasDefault = true
	clone.params[idx].Default = value

	return &clone, nil
}

func checkDefaultAssignable(param Param, value any) error {
	target := param.Type
	if param.Variadic {
		// A slice default replaces the whole variadic tail; an element
		// default is wrapped into a one-element tail at bind time.
		if value == nil {
			return nil
		}

		vt := reflect.TypeOf(value)
		if vt.AssignableTo(target) || vt.AssignableTo(target.Elem()) {
			return nil
		}

		return fmt.Errorf(
			"%w: default for variadic %q must be %s or %s, got %s",
			errors.ErrBadSignature, param.Name, target, target.Elem(), vt,
		)
	}

	if value == nil {
		if isNilableKind(target.Kind()) {
			return nil
		}

		return fmt.Errorf("%w: default for %q must be %s, got nil", errors.ErrBadSignature, param.Name, target)
	}

	if !reflect.TypeOf(value).AssignableTo(target) {
		return fmt.Errorf(
			"%w: default for %q must be %s, got %s",
			errors.ErrBadSignature, param.Name, target, reflect.TypeOf(value),
		)
	}

	return nil
}

// NumParams returns the number of declared parameters.
func (s *Signature) NumParams() int {
	return len(s.params)
}

// Params returns a copy of the parameter list in declaration order.
func (s *Signature) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)

	return out
}

// Param returns the parameter at the given index.
func (s *Signature) Param(i int) Param {
	return s.params[i]
}

// Lookup returns the parameter with the given name.
func (s *Signature) Lookup(name string) (Param, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return Param{}, false
	}

	return s.params[idx], true
}

// Index returns the position of the named parameter.
func (s *Signature) Index(name string) (int, bool) {
	idx, ok := s.byName[name]

	return idx, ok
}

// IsVariadic reports whether the function's final parameter is variadic.
func (s *Signature) IsVariadic() bool {
	return s.ft.IsVariadic()
}

// FuncName returns the function's name as reported by the runtime, e.g.
// "github.com/acme/pkg.Greet". Anonymous functions get the runtime's
// synthesized name.
func (s *Signature) FuncName() string {
	return s.funcName
}

// Func returns the underlying function as a reflect.Value for invocation.
func (s *Signature) Func() reflect.Value {
	return s.fv
}

// Type returns the function's reflect.Type.
func (s *Signature) Type() reflect.Type {
	return s.ft
}

func funcName(fv reflect.Value) string {
	pc := runtime.FuncForPC(fv.Pointer())
	if pc == nil {
		return "<unknown>"
	}

	return pc.Name()
}

func isNilableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}
