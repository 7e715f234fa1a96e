package sentinel

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/Grayjou/typesentinel/check"
	"github.com/Grayjou/typesentinel/errors"
	"github.com/Grayjou/typesentinel/signature"
)

// resolveChecks turns the wrap-time validation inputs into the concrete
// ordered check list the guard evaluates on every call. Three forms:
//
//   - no explicit input: one keyword check per declared parameter, typed
//     from the signature (parameters declared `any` carry no expectation and
//     are skipped; parameters with defaults and variadic tails become
//     optional checks);
//   - shorthand name->type map: one optional keyword check per entry, in
//     sorted-name order for determinism;
//   - explicit list: used as supplied, after validating every target
//     against the signature.
//
// Explicit checks precede shorthand checks. Every configuration defect is
// collected so the caller sees all of them in one wrap error.
func resolveChecks(
	sig *signature.Signature,
	explicit []check.Check,
	shorthand map[string]check.Type,
) ([]check.Check, error) {
	if len(explicit) == 0 && len(shorthand) == 0 {
		return declaredChecks(sig), nil
	}

	var defects errors.Collection

	resolved := make([]check.Check, 0, len(explicit)+len(shorthand))

	for i, c := range explicit {
		if err := validateCheck(sig, c); err != nil {
			defects.Add(fmt.Errorf("checks[%d]: %w", i, err))

			continue
		}

		resolved = append(resolved, c)
	}

	names := make([]string, 0, len(shorthand))
	for name := range shorthand {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		param, ok := sig.Lookup(name)
		if !ok {
			defects.Add(fmt.Errorf("%w: shorthand names %q", errors.ErrUnknownParameter, name))

			continue
		}

		if shorthand[name] == nil {
			defects.Add(fmt.Errorf("%w: shorthand for %q has a nil type", errors.ErrBadCheck, name))

			continue
		}

		expected := shorthand[name]
		if param.Variadic {
			// Shorthand on a variadic tail expects every element to
			// match, not the tail slice itself.
			expected = elementsOf(expected, param.Type)
		}

		resolved = append(resolved, check.OptionalKeyword(name, expected))
	}

	if defects.HasError() {
		return nil, defects.GetError()
	}

	return resolved, nil
}

// declaredChecks derives checks from the signature's own parameter types,
// the reflection analogue of annotation-derived validation.
func declaredChecks(sig *signature.Signature) []check.Check {
	checks := make([]check.Check, 0, sig.NumParams())

	for _, param := range sig.Params() {
		paramType := param.Type
		if param.Variadic {
			paramType = param.Type.Elem()
		}

		// A parameter declared `any` states no expectation.
		if isAnyType(paramType) {
			continue
		}

		expected := check.TypeOf(paramType)
		if param.Variadic {
			expected = elementsOf(expected, param.Type)
		}

		if param.HasDefault || param.Variadic {
			checks = append(checks, check.OptionalKeyword(param.Name, expected))
		} else {
			checks = append(checks, check.Keyword(param.Name, expected))
		}
	}

	return checks
}

func validateCheck(sig *signature.Signature, c check.Check) error {
	if defect := c.Defect(); defect != nil {
		return defect
	}

	if c.Kind() == check.KindPositional {
		// Extra positional indices are legal for variadic functions:
		// they address the tail.
		if c.Index() >= sig.NumParams() && !sig.IsVariadic() {
			return fmt.Errorf(
				"%w: positional index %d out of range for a function with %d parameters",
				errors.ErrBadCheck, c.Index(), sig.NumParams(),
			)
		}

		return nil
	}

	if _, ok := sig.Lookup(c.Key()); !ok {
		return fmt.Errorf("%w: check targets %q", errors.ErrUnknownParameter, c.Key())
	}

	return nil
}

// elementsOf lifts an element matcher over a variadic tail: the tail passes
// when every supplied element matches. The display name stays the element
// type's, so messages read "expected int" rather than "expected []int".
func elementsOf(elem check.Type, sliceType reflect.Type) check.Type {
	return check.Satisfies(elem.Name(), func(v any) bool {
		switch tail := v.(type) {
		case nil:
			return true
		case []any:
			for _, e := range tail {
				if !elem.Matches(e) {
					return false
				}
			}

			return true
		default:
			rv := reflect.ValueOf(v)
			if !rv.Type().AssignableTo(sliceType) {
				return false
			}

			for i := range rv.Len() {
				if !elem.Matches(rv.Index(i).Interface()) {
					return false
				}
			}

			return true
		}
	})
}

func isAnyType(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}
