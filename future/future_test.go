package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tserrors "github.com/Grayjou/typesentinel/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestGoSuccess(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 42, nil
	})

	v, err := fut.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, fut.IsCompleted())
}

func TestGoFailure(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 0, errBoom
	})

	_, err := fut.Await(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestGoRecoversPanic(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		panic("kaboom")
	})

	_, err := fut.Await(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, tserrors.ErrPanicRecovery)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestAwaitHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fut := Go(func() (int, error) {
		<-release

		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fut.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)

	// The computation still completes; a fresh Await sees the value.
	v, err := fut.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestCompletedAndFailed(t *testing.T) {
	t.Parallel()

	v, err := Completed("done").Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	_, err = Failed[string](errBoom).Await(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestPromiseFulfillsOnce(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	promise.Success(1)
	promise.Success(2)
	promise.Failure(errBoom)

	v, err := fut.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestPromiseComplete(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	promise.Complete(7, nil)

	v, err := fut.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	fut2, promise2 := New[int]()
	promise2.Complete(7, errBoom)

	_, err = fut2.Await(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestPromiseCancel(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	assert.False(t, promise.IsCancelled())

	promise.Cancel(context.Canceled)

	assert.True(t, promise.IsCancelled())

	_, err := fut.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOnSuccessBeforeCompletion(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	var (
		wg  sync.WaitGroup
		got int
	)

	wg.Add(1)

	fut.OnSuccess(func(v int) {
		got = v

		wg.Done()
	})

	promise.Success(9)
	wg.Wait()

	assert.Equal(t, 9, got)
}

func TestOnErrorAfterCompletion(t *testing.T) {
	t.Parallel()

	fut := Failed[int](errBoom)

	// The future is already fulfilled before registration.
	_, _ = fut.Await(context.Background())

	var wg sync.WaitGroup

	wg.Add(1)

	var got error

	fut.OnError(func(err error) {
		got = err

		wg.Done()
	})

	wg.Wait()
	assert.ErrorIs(t, got, errBoom)
}

func TestOnResult(t *testing.T) {
	t.Parallel()

	fut, promise := New[string]()

	var wg sync.WaitGroup

	wg.Add(1)

	var (
		gotValue string
		gotErr   error
	)

	fut.OnResult(func(v string, err error) {
		gotValue, gotErr = v, err

		wg.Done()
	})

	promise.Success("ok")
	wg.Wait()

	assert.Equal(t, "ok", gotValue)
	assert.NoError(t, gotErr)
}

func TestGoContextChildIsCanceledOnCompletion(t *testing.T) {
	t.Parallel()

	childDone := make(chan struct{})

	fut := GoContext(context.Background(), func(ctx context.Context) (int, error) {
		go func() {
			<-ctx.Done()
			close(childDone)
		}()

		return 3, nil
	})

	v, err := fut.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	select {
	case <-childDone:
	case <-time.After(time.Second):
		t.Fatal("child context was not canceled after completion")
	}
}

func TestAwaitValue(t *testing.T) {
	t.Parallel()

	var aw Awaitable = Completed(11)

	v, err := aw.AwaitValue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, v)
}
