package sentinel

import (
	"context"
	"strconv"
	"time"

	"github.com/Grayjou/typesentinel/check"
	"github.com/Grayjou/typesentinel/signature"
)

// evaluate runs every resolved check against one bound call and returns one
// result per check, in check order. There is no short-circuit: a handler must
// be able to see every fault of a call at once, so evaluation continues past
// failures. The output always has the same length as the check list.
func (g *Guard) evaluate(ctx context.Context, bound *signature.Bound) []check.Result {
	start := time.Now()
	span := startValidateSpan(ctx, g)

	positional := bound.Positional()
	results := make([]check.Result, 0, len(g.checks))
	failed := 0

	for _, c := range g.checks {
		r := g.evalCheck(c, bound, positional)

		checksTotal.WithLabelValues(c.Kind().String(), strconv.FormatBool(r.Passed)).Inc()

		if !r.Passed {
			failed++
		}

		results = append(results, r)
	}

	finishValidateSpan(span, failed)
	validateTime.WithLabelValues(g.name).Observe(float64(time.Since(start).Microseconds()) / 1000.0)

	return results
}

// evalCheck evaluates one check. Positional checks read by index from the
// raw positional arguments, falling back to the bound view when the value
// arrived by keyword or default. Keyword checks read by name from the bound
// arguments. Optional keyword checks whose parameter was not explicitly
// supplied pass immediately, without any type comparison.
func (g *Guard) evalCheck(c check.Check, bound *signature.Bound, positional []any) check.Result {
	result := check.Result{
		Name:     g.displayName(c),
		Target:   c.Target(),
		Kind:     c.Kind(),
		Expected: c.Expected().Name(),
		Message:  c.Message(),
	}

	var value any

	if c.Kind() == check.KindPositional {
		switch {
		case c.Index() < len(positional):
			value = positional[c.Index()]
		case c.Index() < g.sig.NumParams():
			value = bound.ValueAt(c.Index())
		default:
			// A tail index beyond what this call supplied: nothing
			// to inspect, so the expectation cannot hold.
			result.ActualType = "missing"

			return result
		}
	} else {
		if c.Optional() && !bound.Supplied(c.Key()) {
			result.Passed = true
			result.Skipped = true

			return result
		}

		value, _ = bound.Value(c.Key())
	}

	result.Value = value
	result.ActualType = check.ValueTypeName(value)
	result.Passed = c.Expected().Matches(value)

	return result
}

// displayName resolves the name a check reports under: its custom display
// name when set, otherwise the name of the parameter it targets.
func (g *Guard) displayName(c check.Check) string {
	if name := c.DisplayName(); name != "" {
		return name
	}

	if c.Kind() == check.KindPositional {
		if c.Index() < g.sig.NumParams() {
			return g.sig.Param(c.Index()).Name
		}

		return c.Target()
	}

	return c.Key()
}

func failedOf(results []check.Result) []check.Result {
	var failed []check.Result

	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}

	return failed
}
