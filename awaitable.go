package syncbridge

import (
	"context"
	"sync"
	"sync/atomic"
)

// Awaitable is a deferred asynchronous operation that a driver can run to
// completion. Await must respect ctx cancellation. Discard abandons the
// operation without ever running it; it must be safe to call at most once,
// and only when Await has not been (and will not be) called. The bridge
// discards an awaitable whenever it cannot legally drive it.
type Awaitable[T any] interface {
	Await(ctx context.Context) (T, error)
	Discard()
}

// AwaitableFunc adapts an ordinary context-taking function to Awaitable.
// Discard is a no-op: a bare function holds no resources until called.
type AwaitableFunc[T any] func(ctx context.Context) (T, error)

func (f AwaitableFunc[T]) Await(ctx context.Context) (T, error) { return f(ctx) }

func (f AwaitableFunc[T]) Discard() {}

// Resolved returns an Awaitable that immediately yields v.
func Resolved[T any](v T) Awaitable[T] {
	return AwaitableFunc[T](func(context.Context) (T, error) { return v, nil })
}

// Failed returns an Awaitable that immediately fails with err.
func Failed[T any](err error) Awaitable[T] {
	return AwaitableFunc[T](func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

// Future is a single-assignment Awaitable an asynchronous transport can
// hand out before the result exists. Complete or Fail settles it exactly
// once; later settlements are ignored. Await blocks until the future is
// settled or ctx is done. Discarding an unsettled future settles it with
// ErrFutureDiscarded so that no completer blocks and no pending operation
// is left behind.
type Future[T any] struct {
	once      sync.Once
	done      chan struct{}
	value     T
	err       error
	discarded atomic.Bool
}

// NewFuture returns an unsettled Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) settle(v T, err error) {
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
	})
}

// Complete settles the future with v.
func (f *Future[T]) Complete(v T) { f.settle(v, nil) }

// Fail settles the future with err.
func (f *Future[T]) Fail(err error) {
	var zero T
	f.settle(zero, err)
}

// Await blocks until the future is settled or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Discard abandons the future. An unsettled future is settled with
// ErrFutureDiscarded; a settled one is left as is.
func (f *Future[T]) Discard() {
	f.discarded.Store(true)
	var zero T
	f.settle(zero, ErrFutureDiscarded)
}

// Discarded reports whether Discard has been called. Useful as a probe in
// tests asserting that an adapter did not leak a pending operation.
func (f *Future[T]) Discarded() bool { return f.discarded.Load() }
