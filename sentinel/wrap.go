package sentinel

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/Grayjou/typesentinel/check"
	"github.com/Grayjou/typesentinel/contexts"
	"github.com/Grayjou/typesentinel/errors"
	"github.com/Grayjou/typesentinel/signature"
)

// Option configures a Wrap call.
type Option func(*config)

type defaultEntry struct {
	name  string
	value any
}

type config struct {
	name         string
	paramNames   []string
	defaults     []defaultEntry
	sig          *signature.Signature
	checks       []check.Check
	types        map[string]check.Type
	handler      Handler
	asyncHandler AsyncHandler
}

// WithName sets the guard's display name, used in failure contexts and
// metrics. Defaults to the function's runtime name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithParams supplies parameter names in declaration order. Go reflection
// cannot recover them, so without this option parameters are named "arg0"
// through "argN".
func WithParams(names ...string) Option {
	return func(c *config) {
		c.paramNames = names
	}
}

// WithDefault registers a default value for the named parameter. A call that
// does not explicitly supply the parameter binds it to this value, and
// checks derived from the signature treat it as optional.
func WithDefault(name string, value any) Option {
	return func(c *config) {
		c.defaults = append(c.defaults, defaultEntry{name: name, value: value})
	}
}

// WithSignature supplies a pre-built signature instead of deriving one from
// the function. Mutually exclusive with WithParams and WithDefault.
func WithSignature(sig *signature.Signature) Option {
	return func(c *config) {
		c.sig = sig
	}
}

// WithChecks supplies an explicit ordered list of checks. Targets are
// validated against the signature at wrap time.
func WithChecks(checks ...check.Check) Option {
	return func(c *config) {
		c.checks = append(c.checks, checks...)
	}
}

// WithTypes supplies shorthand expectations: one optional keyword check per
// entry, validated only when the parameter is explicitly passed.
func WithTypes(types map[string]check.Type) Option {
	return func(c *config) {
		if c.types == nil {
			c.types = make(map[string]check.Type, len(types))
		}

		for name, t := range types {
			c.types[name] = t
		}
	}
}

// OnFailure installs a synchronous failure handler.
func OnFailure(handler Handler) Option {
	return func(c *config) {
		c.handler = handler
	}
}

// OnFailureAsync installs an asynchronous failure handler; its future is
// awaited before the call proceeds or aborts.
func OnFailureAsync(handler AsyncHandler) Option {
	return func(c *config) {
		c.asyncHandler = handler
	}
}

// Guard wraps a function with argument validation. It owns the signature,
// the resolved check list, and the handler dispatch, all fixed at wrap time.
// A Guard is immutable and safe for concurrent calls: each call computes its
// own results and context, and the shared state is read-only.
type Guard struct {
	fn       any
	name     string
	sig      *signature.Signature
	checks   []check.Check
	dispatch dispatcher
}

// Wrap builds a Guard for fn. All configuration errors -- a non-function, a
// malformed check, a target the signature does not have, conflicting handler
// options -- are reported here; call time only ever sees binding errors and
// validation failures.
func Wrap(fn any, opts ...Option) (*Guard, error) {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	sig, err := buildSignature(fn, &cfg)
	if err != nil {
		return nil, err
	}

	checks, err := resolveChecks(sig, cfg.checks, cfg.types)
	if err != nil {
		return nil, err
	}

	if cfg.handler != nil && cfg.asyncHandler != nil {
		return nil, fmt.Errorf("%w: OnFailure and OnFailureAsync are mutually exclusive", errors.ErrBadHandler)
	}

	dispatch := defaultDispatch
	if cfg.handler != nil {
		dispatch = syncDispatch(cfg.handler)
	} else if cfg.asyncHandler != nil {
		dispatch = asyncDispatch(cfg.asyncHandler)
	}

	name := cfg.name
	if name == "" {
		name = shortFuncName(sig.FuncName())
	}

	return &Guard{
		fn:       fn,
		name:     name,
		sig:      sig,
		checks:   checks,
		dispatch: dispatch,
	}, nil
}

// MustWrap is Wrap that panics on configuration errors. Intended for
// package-level guards whose configuration is static.
func MustWrap(fn any, opts ...Option) *Guard {
	g, err := Wrap(fn, opts...)
	if err != nil {
		panic(err)
	}

	return g
}

func buildSignature(fn any, cfg *config) (*signature.Signature, error) {
	sig := cfg.sig

	if sig != nil {
		if len(cfg.paramNames) > 0 || len(cfg.defaults) > 0 {
			return nil, fmt.Errorf(
				"%w: WithSignature is mutually exclusive with WithParams and WithDefault",
				errors.ErrBadSignature,
			)
		}

		if fn == nil || reflect.ValueOf(fn).Kind() != reflect.Func ||
			reflect.ValueOf(fn).Pointer() != sig.Func().Pointer() {
			return nil, fmt.Errorf("%w: signature belongs to a different function", errors.ErrBadSignature)
		}

		return sig, nil
	}

	sig, err := signature.Of(fn, cfg.paramNames...)
	if err != nil {
		return nil, err
	}

	for _, def := range cfg.defaults {
		sig, err = sig.WithDefault(def.name, def.value)
		if err != nil {
			return nil, err
		}
	}

	return sig, nil
}

// Name returns the guard's display name.
func (g *Guard) Name() string {
	return g.name
}

// Signature returns the guard's signature object.
func (g *Guard) Signature() *signature.Signature {
	return g.sig
}

// Checks returns a copy of the resolved check list. Resolution happens once
// at wrap time; the same list is reused for every call.
func (g *Guard) Checks() []check.Check {
	out := make([]check.Check, len(g.checks))
	copy(out, g.checks)

	return out
}

// Call invokes the wrapped function with positional arguments after running
// validation. It returns the function's results as a slice; when the
// function's last return value is an error, that error is split out as
// Call's own error and excluded from the slice.
func (g *Guard) Call(ctx context.Context, args ...any) ([]any, error) {
	return g.CallKw(ctx, args, nil)
}

// CallKw is Call with keyword arguments: kwargs entries bind to parameters
// by name, the way the signature's parameter names define them.
func (g *Guard) CallKw(ctx context.Context, args []any, kwargs map[string]any) ([]any, error) {
	out, err := g.call(ctx, args, kwargs)
	if err != nil {
		return nil, err
	}

	return g.splitResults(out)
}

// call runs the full pipeline: bind, validate, dispatch on failure, invoke.
// It returns the function's raw reflect results.
func (g *Guard) call(ctx context.Context, args []any, kwargs map[string]any) ([]reflect.Value, error) {
	ctx = contexts.EnsureContext(ctx)

	bound, err := g.sig.Bind(args, kwargs)
	if err != nil {
		callsTotal.WithLabelValues(outcomeBindError).Inc()

		return nil, err
	}

	results := g.evaluate(ctx, bound)

	if failed := failedOf(results); len(failed) > 0 {
		failure := g.newContext(args, kwargs, bound, results, failed)

		if err := g.dispatch(ctx, failure); err != nil {
			callsTotal.WithLabelValues(outcomeRejected).Inc()

			return nil, err
		}

		// The handler approved continuation.
		callsTotal.WithLabelValues(outcomeSuppressed).Inc()
	} else {
		callsTotal.WithLabelValues(outcomeOK).Inc()
	}

	return g.invoke(bound)
}

// invoke calls the original function with the bound arguments, unchanged.
// When a handler suppressed a failure, a value may not be assignable to its
// parameter's Go type; that surfaces as an ErrWrongType invocation error
// rather than a reflect panic, since Go cannot pass a mis-typed value the
// way a dynamic language can.
func (g *Guard) invoke(bound *signature.Bound) ([]reflect.Value, error) {
	numParams := g.sig.NumParams()

	fixed := numParams
	if g.sig.IsVariadic() {
		fixed = numParams - 1
	}

	in := make([]reflect.Value, 0, numParams)

	for i := range fixed {
		rv, err := argValue(bound.ValueAt(i), g.sig.Param(i))
		if err != nil {
			return nil, err
		}

		in = append(in, rv)
	}

	if !g.sig.IsVariadic() {
		return g.sig.Func().Call(in), nil
	}

	tail, err := variadicValue(bound.ValueAt(numParams-1), g.sig.Param(numParams-1))
	if err != nil {
		return nil, err
	}

	in = append(in, tail)

	return g.sig.Func().CallSlice(in), nil
}

func (g *Guard) splitResults(out []reflect.Value) ([]any, error) {
	ft := g.sig.Type()
	numOut := ft.NumOut()

	var callErr error

	if numOut > 0 && ft.Out(numOut-1) == errorType {
		if last := out[numOut-1]; !last.IsNil() {
			callErr = last.Interface().(error) //nolint:forcetypeassert // checked against errorType
		}

		out = out[:numOut-1]
	}

	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}

	return values, callErr
}

var errorType = reflect.TypeOf((*error)(nil)).Elem() //nolint:gochecknoglobals

func argValue(v any, param signature.Param) (reflect.Value, error) {
	if v == nil {
		if isNilableKind(param.Type.Kind()) {
			return reflect.Zero(param.Type), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: parameter %q needs %s, got nil", errors.ErrWrongType, param.Name, param.Type)
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(param.Type) {
		return reflect.Value{}, fmt.Errorf(
			"%w: parameter %q needs %s, got %s",
			errors.ErrWrongType, param.Name, param.Type, rv.Type(),
		)
	}

	return rv, nil
}

func variadicValue(v any, param signature.Param) (reflect.Value, error) {
	if v == nil {
		return reflect.MakeSlice(param.Type, 0, 0), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(param.Type) {
		return rv, nil
	}

	elems, ok := v.([]any)
	if !ok {
		return reflect.Value{}, fmt.Errorf(
			"%w: variadic %q needs %s, got %s",
			errors.ErrWrongType, param.Name, param.Type, rv.Type(),
		)
	}

	elemParam := signature.Param{Name: param.Name, Type: param.Type.Elem()}
	tail := reflect.MakeSlice(param.Type, 0, len(elems))

	for _, elem := range elems {
		ev, err := argValue(elem, elemParam)
		if err != nil {
			return reflect.Value{}, err
		}

		tail = reflect.Append(tail, ev)
	}

	return tail, nil
}

func isNilableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// shortFuncName trims a runtime function name down to "pkg.Func".
func shortFuncName(full string) string {
	if idx := strings.LastIndex(full, "/"); idx >= 0 {
		return full[idx+1:]
	}

	return full
}

// WrapFunc wraps fn and returns a function of the identical Go type, so the
// wrapper is a drop-in replacement with the original calling convention.
// Validation failures surface through the function's own error return when
// it has one; for functions without an error return, the wrapper panics with
// the failure error, since the original type leaves no other channel.
func WrapFunc[F any](fn F, opts ...Option) (F, error) {
	var zero F

	g, err := Wrap(fn, opts...)
	if err != nil {
		return zero, err
	}

	ft := reflect.TypeOf(fn)

	errorIdx := -1
	if ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errorType {
		errorIdx = ft.NumOut() - 1
	}

	wrapper := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := flattenArgs(ft, in)

		out, err := g.call(context.Background(), args, nil)
		if err == nil {
			return out
		}

		if errorIdx < 0 {
			panic(err)
		}

		failed := make([]reflect.Value, ft.NumOut())
		for i := range failed {
			failed[i] = reflect.Zero(ft.Out(i))
		}

		errValue := reflect.New(errorType).Elem()
		errValue.Set(reflect.ValueOf(err))
		failed[errorIdx] = errValue

		return failed
	})

	return wrapper.Interface().(F), nil //nolint:forcetypeassert // MakeFunc preserves ft
}

// flattenArgs converts MakeFunc's argument values back into a flat positional
// list, expanding a packed variadic tail.
func flattenArgs(ft reflect.Type, in []reflect.Value) []any {
	if !ft.IsVariadic() {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}

		return args
	}

	last := len(in) - 1
	tail := in[last]

	args := make([]any, 0, last+tail.Len())

	for _, v := range in[:last] {
		args = append(args, v.Interface())
	}

	for i := range tail.Len() {
		args = append(args, tail.Index(i).Interface())
	}

	return args
}
