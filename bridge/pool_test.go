package bridge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/n-r-w/asyncdb"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestPool(t *testing.T, size int) *WorkerPool {
	t.Helper()

	p, err := NewWorkerPool(size)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Close(ctx)
	})

	return p
}

func TestWorkerPool_Bounded(t *testing.T) {
	t.Parallel()

	const (
		size  = 3
		tasks = 20
	)
	p := newTestPool(t, size)

	var (
		running  atomic.Int64
		maxSeen  atomic.Int64
		finished sync.WaitGroup
	)
	finished.Add(tasks)

	g, ctx := errgroup.WithContext(context.Background())
	for range tasks {
		g.Go(func() error {
			return p.Submit(ctx, func(context.Context) {
				defer finished.Done()

				n := running.Add(1)
				for {
					m := maxSeen.Load()
					if n <= m || maxSeen.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
			})
		})
	}
	require.NoError(t, g.Wait())

	finished.Wait()
	require.LessOrEqual(t, maxSeen.Load(), int64(size))
	require.LessOrEqual(t, p.Peak(), size)
	require.Equal(t, 0, p.Queued())
	require.Equal(t, size, p.Size())
}

func TestWorkerPool_Counters(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1)

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(10)
	for range 10 {
		require.NoError(t, p.Submit(context.Background(), func(context.Context) {
			defer wg.Done()
			<-release
		}))
	}

	require.Eventually(t, func() bool { return p.InFlight() == 1 }, 5*time.Second, time.Millisecond)
	require.Equal(t, 10, p.Submitted())
	require.Positive(t, p.Queued())

	close(release)
	wg.Wait()

	require.Eventually(t, func() bool { return p.InFlight() == 0 }, 5*time.Second, time.Millisecond)
	require.Equal(t, 0, p.Queued())
	require.Equal(t, 1, p.Peak())
}

func TestWorkerPool_Close(t *testing.T) {
	t.Parallel()

	p, err := NewWorkerPool(2)
	require.NoError(t, err)

	var executed atomic.Int64
	for range 10 {
		require.NoError(t, p.Submit(context.Background(), func(context.Context) {
			time.Sleep(time.Millisecond)
			executed.Add(1)
		}))
	}

	require.NoError(t, p.Close(context.Background()))
	require.Equal(t, int64(10), executed.Load(), "queued tasks are drained on close")
	require.True(t, p.IsClosed())

	err = p.Submit(context.Background(), func(context.Context) {})
	require.True(t, asyncdb.IsSubmissionError(err))
	require.ErrorIs(t, err, asyncdb.ErrPoolClosed)

	// repeated close
	require.NoError(t, p.Close(context.Background()))
}

func TestWorkerPool_CloseTimeout(t *testing.T) {
	t.Parallel()

	p, err := NewWorkerPool(1)
	require.NoError(t, err)

	release := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func(context.Context) { <-release }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.Close(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, p.Close(context.Background()))
}

func TestWorkerPool_PanicDoesNotKillWorker(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1)

	require.NoError(t, p.Submit(context.Background(), func(context.Context) { panic("task") }))

	done := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func(context.Context) { close(done) }))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive panic")
	}
}

func TestWorkerPool_TaskContextNotCancelled(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1)

	type key struct{}
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "v"))
	cancel()

	got := make(chan context.Context, 1)
	require.NoError(t, p.Submit(ctx, func(ctx context.Context) { got <- ctx }))

	taskCtx := <-got
	require.NoError(t, taskCtx.Err())
	require.Equal(t, "v", taskCtx.Value(key{}))
}

func TestNewWorkerPool_InvalidSize(t *testing.T) {
	t.Parallel()

	_, err := NewWorkerPool(0)
	require.ErrorIs(t, err, asyncdb.ErrInvalidConfiguration)
}
