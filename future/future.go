// Package future provides a small Future/Promise implementation used for the
// asynchronous paths of the library: asynchronous failure handlers and
// asynchronous wrapped callables. A Future is the read side of a computation
// that completes exactly once with either a value or an error; a Promise is
// the matching write side.
//
// Typical usage runs a function on a goroutine and awaits the result:
//
//	fut := future.Go(func() (int, error) { return compute(), nil })
//	v, err := fut.Await(ctx)
//
// Await honors context cancellation: if ctx is done before the future
// completes, Await returns ctx.Err() while the underlying computation keeps
// running to completion.
package future

import (
	"context"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"
)

// Void is the value type for futures that carry no payload, such as the
// futures returned by asynchronous failure handlers.
type Void = struct{}

// Awaitable is the type-erased view of a future. The sentinel package uses it
// to detect that a wrapped function returned a future of any element type, so
// the asynchronous call path can await the function's own result.
type Awaitable interface {
	// AwaitValue blocks until completion (or ctx is done) and returns the
	// result as an untyped value.
	AwaitValue(ctx context.Context) (any, error)
}

// Future represents the read-only side of an asynchronous computation.
//
// Guarantees:
//   - Completes at most once; later fulfillment attempts are ignored.
//   - Await can be called from any number of goroutines; completion unblocks
//     all of them.
//   - Callbacks registered before completion run when it completes; callbacks
//     registered after completion run immediately. Either way they run on
//     their own goroutine with panic recovery.
type Future[T any] struct {
	mu          sync.Mutex
	once        sync.Once
	resultReady chan struct{}

	value T
	err   error

	successCallbacks []func(T)
	errorCallbacks   []func(error)
	resultCallbacks  []func(T, error)
}

// New creates an unfulfilled future together with the promise that completes
// it. The promise side is separate so futures can be handed out without
// exposing the ability to complete them.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
	}

	promise := &Promise[T]{
		future:   fut,
		canceled: atomic.NewBool(false),
	}

	return fut, promise
}

// Completed returns a future that is already fulfilled with the given value.
func Completed[T any](value T) *Future[T] {
	fut, promise := New[T]()
	promise.Success(value)

	return fut
}

// Failed returns a future that is already fulfilled with the given error.
func Failed[T any](err error) *Future[T] {
	fut, promise := New[T]()
	promise.Failure(err)

	return fut
}

// Go runs f on a new goroutine and returns a future for its result. Panics in
// f are recovered and surface as an error wrapping errors.ErrPanicRecovery.
func Go[T any](f func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(panicRecoveryError(r, debug.Stack()))
			}
		}()

		promise.Complete(f())
	}()

	return fut
}

// GoContext runs f on a new goroutine with a child context that is canceled
// when the future completes or is canceled. If ctx is nil a background
// context is used. Panics in f are recovered like in Go.
func GoContext[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	cctx, cancel := context.WithCancel(ctx)

	fut, promise := New[T]()
	promise.cancelFuncs = append(promise.cancelFuncs, cancel)

	go func() {
		// Release the child context once the computation finishes,
		// whatever the outcome.
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				promise.Failure(panicRecoveryError(r, debug.Stack()))
			}
		}()

		promise.Complete(f(cctx))
	}()

	return fut
}

// Await blocks until the future completes or ctx is done, whichever happens
// first. When ctx wins, Await returns the zero value and ctx.Err(); the
// computation itself is not interrupted.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-f.resultReady:
		return f.value, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// AwaitValue implements Awaitable.
func (f *Future[T]) AwaitValue(ctx context.Context) (any, error) {
	return f.Await(ctx)
}

// IsCompleted reports whether the future has been fulfilled.
func (f *Future[T]) IsCompleted() bool {
	select {
	case <-f.resultReady:
		return true
	default:
		return false
	}
}

// OnSuccess registers a callback invoked with the value when the future
// completes successfully. If the future is already fulfilled with a value,
// the callback is invoked immediately on its own goroutine.
func (f *Future[T]) OnSuccess(callback func(T)) {
	if callback == nil {
		return
	}

	f.mu.Lock()

	if !f.IsCompleted() {
		f.successCallbacks = append(f.successCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	if f.err == nil {
		invokeCallback("OnSuccess", callback, f.value)
	}
}

// OnError registers a callback invoked with the error when the future
// completes with a failure. If the future is already fulfilled with an error,
// the callback is invoked immediately on its own goroutine.
func (f *Future[T]) OnError(callback func(error)) {
	if callback == nil {
		return
	}

	f.mu.Lock()

	if !f.IsCompleted() {
		f.errorCallbacks = append(f.errorCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	if f.err != nil {
		invokeCallback("OnError", callback, f.err)
	}
}

// OnResult registers a callback invoked with the value and error when the
// future completes, regardless of outcome. If the future is already
// fulfilled, the callback is invoked immediately on its own goroutine.
func (f *Future[T]) OnResult(callback func(T, error)) {
	if callback == nil {
		return
	}

	f.mu.Lock()

	if !f.IsCompleted() {
		f.resultCallbacks = append(f.resultCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	invokeResultCallback("OnResult", callback, f.value, f.err)
}
