package syncbridge

import (
	"context"

	"github.com/ygrebnov/errorc"
)

// AwaitOnly suspends the current worker, hands aw to the driver loop, and
// blocks until the driver resumes this worker with aw's result or failure.
// It is callable only from within a function passed to Spawn, with the
// context that function received (or one derived from it), and only on
// the goroutine running that function: sharing the worker context with
// other goroutines and awaiting from them races the worker's completion
// and is unsupported.
//
// Called without an enclosing worker, AwaitOnly discards aw first, so no
// pending operation leaks, and then reports ErrMissingWorker. Awaits do
// not nest: a second suspension while one is in flight on the same worker
// reports ErrAwaitInProgress.
func AwaitOnly[T any](ctx context.Context, aw Awaitable[T]) (T, error) {
	f, ok := workerFromContext(ctx)
	if !ok {
		var zero T
		aw.Discard()
		return zero, errorc.With(ErrMissingWorker, errorc.String("adapter", "AwaitOnly"))
	}
	return awaitOn(f, aw)
}

// AwaitFallback behaves like AwaitOnly inside a worker. Outside one, when
// the current Runtime is idle, it drives aw to completion itself and
// returns the result, blocking the calling goroutine; when the runtime is
// already running, it discards aw and reports ErrMissingWorker, since a
// synchronous drive at that point would deadlock or corrupt reentrancy.
//
// The out-of-worker drive is a legacy convenience. Prefer establishing a
// worker with Spawn and using AwaitOnly.
func AwaitFallback[T any](ctx context.Context, aw Awaitable[T]) (T, error) {
	if f, ok := workerFromContext(ctx); ok {
		return awaitOn(f, aw)
	}

	var zero T
	rt := CurrentRuntime(ctx)
	if err := rt.acquire(); err != nil {
		aw.Discard()
		return zero, errorc.With(ErrMissingWorker, errorc.String("adapter", "AwaitFallback"))
	}
	defer rt.release()
	return aw.Await(ctx)
}

// awaitOn boxes aw across the worker boundary and unboxes the resumption.
func awaitOn[T any](f *fiber, aw Awaitable[T]) (T, error) {
	var zero T
	v, err := f.await(&suspension{
		run:     func(ctx context.Context) (any, error) { return aw.Await(ctx) },
		discard: aw.Discard,
	})
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}
