// Package check defines the atomic unit of argument validation: a Check binds
// a call target (positional index or parameter name) to an expected type,
// together with the matcher abstraction for expected types and the Result
// produced when a check is evaluated.
package check

import (
	"reflect"
	"strings"
)

// Type is the expected-type matcher abstraction. A Type decides whether a
// runtime value counts as an instance of it and renders a stable display name
// for error messages. Implementations: single Go types (Of, TypeOf), unions
// of alternatives (Union), and explicit predicates (Satisfies).
type Type interface {
	// Matches reports whether v is an instance of the expected type.
	Matches(v any) bool

	// Name returns the display name used in error messages, for example
	// "int" or "int | string".
	Name() string
}

// Of returns a matcher for the Go type T. A value matches when its dynamic
// type is T, is assignable to T, or, when T is an interface type, implements
// T. Interface satisfaction is the Go rendering of "subtypes count as
// matches". A nil value matches only when T can hold nil.
func Of[T any]() Type {
	return TypeOf(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeOf returns a matcher for the given reflect.Type with the same semantics
// as Of. A nil reflect.Type matches nothing and renders as "<nil>".
func TypeOf(t reflect.Type) Type {
	return singleType{t: t}
}

// Union returns a matcher that passes when the value matches ANY of the
// alternatives, in a logical OR. The display name joins the alternatives in
// declaration order with " | ". Alternatives are not deduplicated and their
// order is preserved, so a union of a type and one of its interfaces renders
// exactly as declared.
func Union(alternatives ...Type) Type {
	return unionType{alternatives: alternatives}
}

// Satisfies returns a matcher backed by an explicit predicate. It is the
// escape hatch for structural expectations that a plain Go type cannot
// express, such as "a non-empty string" or "a positive number". The name is
// used verbatim in error messages.
func Satisfies(name string, pred func(v any) bool) Type {
	return predicateType{name: name, pred: pred}
}

type singleType struct {
	t reflect.Type
}

func (s singleType) Matches(v any) bool {
	if s.t == nil {
		return false
	}

	if v == nil {
		return isNilable(s.t.Kind())
	}

	vt := reflect.TypeOf(v)
	if vt == s.t {
		return true
	}

	if s.t.Kind() == reflect.Interface {
		return vt.Implements(s.t)
	}

	return vt.AssignableTo(s.t)
}

func (s singleType) Name() string {
	return typeName(s.t)
}

type unionType struct {
	alternatives []Type
}

func (u unionType) Matches(v any) bool {
	for _, alt := range u.alternatives {
		if alt != nil && alt.Matches(v) {
			return true
		}
	}

	return false
}

func (u unionType) Name() string {
	names := make([]string, 0, len(u.alternatives))

	for _, alt := range u.alternatives {
		if alt == nil {
			names = append(names, "<nil>")

			continue
		}

		names = append(names, alt.Name())
	}

	return strings.Join(names, " | ")
}

type predicateType struct {
	name string
	pred func(v any) bool
}

func (p predicateType) Matches(v any) bool {
	return p.pred != nil && p.pred(v)
}

func (p predicateType) Name() string {
	return p.name
}

// isNilable reports whether a value of the given kind can hold nil.
func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// typeName renders a reflect.Type for error messages. Named types render
// without their package qualifier ("Reader", not "io.Reader"); unnamed types
// use the full reflect rendering ("[]byte", "*os.File", "map[string]int").
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if name := t.Name(); name != "" {
		return name
	}

	return t.String()
}

// ValueTypeName renders the dynamic type of a runtime value the same way
// typeName renders declared types. A nil value renders as "nil".
func ValueTypeName(v any) string {
	if v == nil {
		return "nil"
	}

	return typeName(reflect.TypeOf(v))
}
