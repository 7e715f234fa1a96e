package future

import (
	"go.uber.org/atomic"
)

// Promise represents the write-only side of an asynchronous computation.
//
// A Promise completes its Future by providing either a value or an error.
// It is the "producer" side while the Future is the "consumer" side.
//
// Guarantees:
//   - A promise can only be fulfilled once (enforced by sync.Once on the
//     future); later calls to Success/Failure/Complete are ignored.
//   - Fulfillment is safe from any goroutine and unblocks every waiter.
//
// The promise holds a reference to the future, not the other way around, so
// futures can be passed around without exposing completion rights.
type Promise[T any] struct {
	future      *Future[T]
	canceled    *atomic.Bool
	cancelFuncs []func()
}

// IsCancelled reports whether the promise has been canceled. Once canceled,
// a promise stays canceled.
func (p *Promise[T]) IsCancelled() bool {
	return p.canceled.Load()
}

// Cancel marks the promise as canceled, runs any registered cancel functions
// (such as the context cancel installed by GoContext), and fails the future
// with the given error. Only the first call has any effect.
func (p *Promise[T]) Cancel(err error) {
	if p.canceled.CompareAndSwap(false, true) {
		for _, cancel := range p.cancelFuncs {
			cancel()
		}

		p.Failure(err)
	}
}

// fulfill completes the promise with the given value and error. It stores the
// result on the future, closes the resultReady channel to broadcast
// completion, and invokes any registered callbacks. sync.Once makes repeated
// calls no-ops.
func (p *Promise[T]) fulfill(value T, err error) {
	p.future.once.Do(func() {
		// The mutex is held while closing the channel so callback
		// registration cannot race with callback collection.
		p.future.mu.Lock()

		p.future.value = value
		p.future.err = err

		close(p.future.resultReady)

		successCallbacks := p.future.successCallbacks
		errorCallbacks := p.future.errorCallbacks
		resultCallbacks := p.future.resultCallbacks

		// Callbacks run at most once; dropping the slices also lets the
		// GC reclaim them.
		p.future.successCallbacks = nil
		p.future.errorCallbacks = nil
		p.future.resultCallbacks = nil

		p.future.mu.Unlock()

		for _, callback := range resultCallbacks {
			invokeResultCallback("OnResult", callback, value, err)
		}

		if err == nil {
			for _, callback := range successCallbacks {
				invokeCallback("OnSuccess", callback, value)
			}
		} else {
			for _, callback := range errorCallbacks {
				invokeCallback("OnError", callback, err)
			}
		}
	})
}

// Success fulfills the promise with a value.
func (p *Promise[T]) Success(value T) {
	p.fulfill(value, nil)
}

// Failure fulfills the promise with an error. The value side is the zero
// value of T.
func (p *Promise[T]) Failure(err error) {
	var zero T

	p.fulfill(zero, err)
}

// Complete fulfills the promise with a (value, error) pair, matching Go's
// standard return shape: a non-nil error fails the promise, otherwise the
// value succeeds it.
func (p *Promise[T]) Complete(value T, err error) {
	if err != nil {
		p.Failure(err)
	} else {
		p.Success(value)
	}
}
