package sentinel

import (
	"github.com/Grayjou/typesentinel/check"
	"github.com/Grayjou/typesentinel/signature"
	"github.com/google/uuid"
)

// Context is the aggregated, read-only snapshot of one failing call: the
// callable, the raw arguments, the signature, the bound view, and every check
// result. It is built only when at least one check failed, created fresh per
// failing call, and handed to the failure handler. It is never cached or
// shared between calls.
type Context struct {
	// Func is the wrapped function.
	Func any

	// FuncName is the guard's display name for the function.
	FuncName string

	// CallID uniquely identifies this failing call, for correlating
	// handler-side logs with caller-side errors.
	CallID string

	// Args holds the raw positional arguments exactly as supplied.
	Args []any

	// Kwargs holds the raw keyword arguments exactly as supplied.
	Kwargs map[string]any

	// Signature is the function's signature object.
	Signature *signature.Signature

	// Bound is the arguments-bound-to-parameters view of the call.
	Bound *signature.Bound

	// AllResults holds one result per resolved check, in evaluation order.
	AllResults []check.Result

	// FailedResults is the failed subset of AllResults, same order.
	FailedResults []check.Result

	// ArgNames lists the parameter names in declaration order.
	ArgNames []string
}

// PassedResults returns the passing subset of AllResults in evaluation
// order. It is derived on demand, not stored.
func (c *Context) PassedResults() []check.Result {
	passed := make([]check.Result, 0, len(c.AllResults)-len(c.FailedResults))

	for _, r := range c.AllResults {
		if r.Passed {
			passed = append(passed, r)
		}
	}

	return passed
}

func (g *Guard) newContext(
	args []any,
	kwargs map[string]any,
	bound *signature.Bound,
	all []check.Result,
	failed []check.Result,
) *Context {
	return &Context{
		Func:          g.fn,
		FuncName:      g.name,
		CallID:        uuid.NewString(),
		Args:          args,
		Kwargs:        kwargs,
		Signature:     g.sig,
		Bound:         bound,
		AllResults:    all,
		FailedResults: failed,
		ArgNames:      bound.Names(),
	}
}
