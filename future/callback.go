package future

import (
	"fmt"
	"runtime/debug"

	"github.com/Grayjou/typesentinel/errors"
	"github.com/Grayjou/typesentinel/logger"
)

// panicRecoveryError converts a recovered panic value and optional stack
// trace into an error wrapping errors.ErrPanicRecovery.
func panicRecoveryError(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	if err, ok := recovered.(error); ok {
		if stack != nil {
			return fmt.Errorf("%w: %w\nstack trace:\n%s", errors.ErrPanicRecovery, err, string(stack))
		}

		return fmt.Errorf("%w: %w", errors.ErrPanicRecovery, err)
	}

	if stack != nil {
		return fmt.Errorf("%w: %v\nstack trace:\n%s", errors.ErrPanicRecovery, recovered, string(stack))
	}

	return fmt.Errorf("%w: %v", errors.ErrPanicRecovery, recovered)
}

// invokeCallback runs a single-argument callback on its own goroutine with
// panic recovery. Panics are logged rather than crashing the process; the
// kind parameter identifies which callback type panicked.
func invokeCallback[T any](kind string, callback func(T), value T) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err := panicRecoveryError(r, debug.Stack()); err != nil {
					logger.Get().Error("panic in future."+kind+" callback", "error", err)
				}
			}
		}()

		callback(value)
	}()
}

// invokeResultCallback runs a (value, error) callback on its own goroutine
// with panic recovery.
func invokeResultCallback[T any](kind string, callback func(T, error), value T, err error) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if rerr := panicRecoveryError(r, debug.Stack()); rerr != nil {
					logger.Get().Error("panic in future."+kind+" callback", "error", rerr)
				}
			}
		}()

		callback(value, err)
	}()
}
