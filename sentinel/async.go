package sentinel

import (
	"context"

	"github.com/Grayjou/typesentinel/future"
)

// GoCall runs the call pipeline asynchronously and returns a future for the
// function's results. The pipeline is the same as Call's, with two possible
// suspension points: an asynchronous failure handler is awaited before the
// decision to proceed or abort, and when the function's single result is
// itself a future, that future is awaited too, so the returned future
// completes with the wrapped function's final value. Cancelling ctx
// propagates through both await points.
func (g *Guard) GoCall(ctx context.Context, args ...any) *future.Future[[]any] {
	return g.GoCallKw(ctx, args, nil)
}

// GoCallKw is GoCall with keyword arguments.
func (g *Guard) GoCallKw(ctx context.Context, args []any, kwargs map[string]any) *future.Future[[]any] {
	return future.GoContext(ctx, func(ctx context.Context) ([]any, error) {
		out, err := g.CallKw(ctx, args, kwargs)
		if err != nil {
			return nil, err
		}

		if len(out) == 1 {
			if awaitable, ok := out[0].(future.Awaitable); ok {
				value, err := awaitable.AwaitValue(ctx)
				if err != nil {
					return nil, err
				}

				return []any{value}, nil
			}
		}

		return out, nil
	})
}
