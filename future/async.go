package future

import (
	"context"

	"github.com/Grayjou/typesentinel/logger"
)

// Async runs f on a goroutine without blocking. This is fire-and-forget: the
// caller does not wait for completion or receive a result. Panics are
// recovered and logged through the default logger.
//
// Failure handlers that only want to record a validation failure somewhere
// slow (a database, an external sink) can use this to avoid delaying the
// wrapped call.
func Async(f func()) {
	fut := Go(func() (Void, error) {
		f()

		return Void{}, nil
	})

	fut.OnError(func(err error) {
		logger.Get().Error("future.Async", "error", err)
	})
}

// AsyncWithError runs f on a goroutine without blocking, logging any returned
// error or recovered panic through the default logger.
func AsyncWithError(f func() error) {
	fut := Go(func() (Void, error) {
		return Void{}, f()
	})

	fut.OnError(func(err error) {
		logger.Get().Error("future.AsyncWithError", "error", err)
	})
}

// AsyncContext runs f on a goroutine without blocking, passing a child
// context that is canceled when the computation finishes or ctx is canceled.
// Panics are recovered and logged through the context-aware logger.
func AsyncContext(ctx context.Context, f func(ctx context.Context) error) {
	fut := GoContext(ctx, func(ctx context.Context) (Void, error) {
		return Void{}, f(ctx)
	})

	fut.OnError(func(err error) {
		logger.Get(ctx).Error("future.AsyncContext", "error", err)
	})
}
