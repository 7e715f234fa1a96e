package sentinel

import (
	"context"

	"github.com/Grayjou/typesentinel/future"
)

// Handler is a synchronous failure handler. It receives the failure context
// of a call whose validation failed and decides the call's fate: returning
// nil suppresses the failure and lets the original function run; returning an
// error aborts the call with exactly that error. Errors returned by a custom
// handler are never wrapped.
type Handler func(ctx context.Context, failure *Context) error

// AsyncHandler is an asynchronous failure handler. It returns a future that
// the guard awaits before deciding to proceed or abort; the future's error
// has the same semantics as a Handler's return value. A nil future counts as
// suppression.
type AsyncHandler func(ctx context.Context, failure *Context) *future.Future[future.Void]

// dispatcher routes a failure context to whichever handler was configured.
// The sync/async choice is made once at wrap time, never per call.
type dispatcher func(ctx context.Context, failure *Context) error

// defaultDispatch rejects the call with a *Error enumerating every failure.
func defaultDispatch(_ context.Context, failure *Context) error {
	return newError(failure)
}

func syncDispatch(handler Handler) dispatcher {
	return func(ctx context.Context, failure *Context) error {
		return handler(ctx, failure)
	}
}

func asyncDispatch(handler AsyncHandler) dispatcher {
	return func(ctx context.Context, failure *Context) error {
		fut := handler(ctx, failure)
		if fut == nil {
			return nil
		}

		// The await is the suspension point: cancellation of ctx
		// propagates out of it while the handler keeps running.
		_, err := fut.Await(ctx)

		return err
	}
}
