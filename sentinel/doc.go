// Package sentinel wraps a function in a runtime argument-validation layer.
// A Guard inspects the function's expected argument types and, before (or
// instead of) invoking the function, verifies that each argument matches.
//
// Expected types come from one of three places, resolved once at wrap time:
//
//   - the function's own declared parameter types, via reflection;
//   - a shorthand map from parameter name to expected type;
//   - an explicit ordered list of check descriptors.
//
// Basic usage derives checks from the function's declared types:
//
//	g := sentinel.MustWrap(greet,
//	    sentinel.WithParams("name", "excited"),
//	    sentinel.WithDefault("excited", false))
//
//	out, err := g.Call(ctx, "Alice")       // ok
//	out, err = g.Call(ctx, 123)            // *sentinel.Error:
//	// Invalid type for argument 'name': expected string, got int
//
// Every check is evaluated on every call (no short-circuit), so a failure
// handler sees every fault at once. When one or more checks fail, the
// resolved results are assembled into a Context and routed to the configured
// failure handler. The default handler rejects the call with a *Error; a
// custom handler may return nil to suppress the failure and let the original
// function run, or return any error to abort the call with it:
//
//	g := sentinel.MustWrap(render,
//	    sentinel.WithChecks(
//	        check.Positional(0, check.Of[int]()),
//	        check.Keyword("label", check.Of[string](), check.WithMessage("label must be a string")),
//	    ),
//	    sentinel.OnFailure(func(ctx context.Context, fc *sentinel.Context) error {
//	        logger.Get(ctx).Warn("bad call", "failures", len(fc.FailedResults))
//	        return nil // proceed anyway
//	    }))
//
// The asynchronous path mirrors the synchronous one: GoCall runs the same
// pipeline on a future, awaits an asynchronous handler at the failure point,
// and awaits the wrapped function's own future when it returns one.
//
// Configuration errors (a malformed check, a target the signature does not
// have) fail at wrap time, never at call time. Binding errors (too many
// arguments, an unknown keyword) are calling-convention errors returned
// directly to the caller and never routed through a handler.
package sentinel
