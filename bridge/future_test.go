package bridge

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/n-r-w/asyncdb"
	"github.com/stretchr/testify/require"
)

func TestFuture_Lazy(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 2)

	var calls atomic.Int64
	f := NewFuture(p, func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	})

	time.Sleep(10 * time.Millisecond)
	require.Equal(t, int64(0), calls.Load(), "nothing runs before Await")

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)

	// memoized
	v, err = f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, int64(1), calls.Load())
}

func TestFuture_ErrorPassedThrough(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1)
	expectedErr := errors.New("unit of work")

	_, err := NewFuture(p, func(context.Context) (string, error) {
		return "", expectedErr
	}).Await(context.Background())

	require.Equal(t, expectedErr, err)
}

func TestFuture_Panic(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1)

	_, err := NewFuture(p, func(context.Context) (int, error) {
		panic("boom")
	}).Await(context.Background())

	var panicErr *asyncdb.PanicError
	require.ErrorAs(t, err, &panicErr)
	require.Equal(t, "boom", panicErr.Value)
}

func TestFuture_SubmissionError(t *testing.T) {
	t.Parallel()

	p, err := NewWorkerPool(1)
	require.NoError(t, err)
	require.NoError(t, p.Close(context.Background()))

	executed := false
	_, err = NewFuture(p, func(context.Context) (int, error) {
		executed = true
		return 1, nil
	}).Await(context.Background())

	require.True(t, asyncdb.IsSubmissionError(err))
	require.False(t, executed)
}

func TestFuture_Cancel(t *testing.T) {
	t.Parallel()

	t.Run("before start", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 1)
		executed := false
		f := NewFuture(p, func(context.Context) (int, error) {
			executed = true
			return 1, nil
		})

		require.True(t, f.Cancel())
		_, err := f.Await(context.Background())
		require.ErrorIs(t, err, asyncdb.ErrCancelled)
		require.False(t, executed)
	})

	t.Run("while queued", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 1)
		release := make(chan struct{})
		require.NoError(t, p.Submit(context.Background(), func(context.Context) { <-release }))

		var executed atomic.Bool
		f := NewFuture(p, func(context.Context) (int, error) {
			executed.Store(true)
			return 1, nil
		}).Start(context.Background())

		require.True(t, f.Cancel())
		close(release)

		_, err := f.Await(context.Background())
		require.ErrorIs(t, err, asyncdb.ErrCancelled)

		// the queued task is skipped
		done := NewFuture(p, func(context.Context) (bool, error) { return true, nil })
		_, err = done.Await(context.Background())
		require.NoError(t, err)
		require.False(t, executed.Load())
	})

	t.Run("after completion", func(t *testing.T) {
		t.Parallel()

		p := newTestPool(t, 1)
		f := NewFuture(p, func(context.Context) (int, error) { return 5, nil })
		v, err := f.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, 5, v)

		require.False(t, f.Cancel())
		v, err = f.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, 5, v)
	})
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1)
	release := make(chan struct{})
	f := NewFuture(p, func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the work is not interrupted
	close(release)
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, v)
}
