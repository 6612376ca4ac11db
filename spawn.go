package syncbridge

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/syncbridge/metrics"
)

// Spawn runs fn on a new worker and drives it from the calling goroutine.
// Inside fn, AwaitOnly and AwaitFallback suspend the worker and hand the
// awaitable to this loop, which drives it with the caller's context and
// feeds the value, or the failure, back in at the suspension point. Spawn
// returns fn's result and error unchanged once the worker has run to
// completion.
//
// A failure while driving, including cancellation of ctx, is raised inside
// the worker rather than aborting the loop, so fn's deferred cleanup runs
// before the error surfaces here. A panic in fn, or in a driven awaitable
// that fn does not handle, surfaces as a *PanicError.
//
// Spawn is the only way to establish a worker. Nested calls from within fn
// layer an independent driver/worker pair on top of the current one.
func Spawn[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...SpawnOption) (T, error) {
	var zero T

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return zero, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return zero, err
	}

	rt := cfg.Runtime
	if rt == nil {
		rt = CurrentRuntime(ctx)
	}
	// The worker and the driven awaitables must observe the same runtime
	// the loop accounts against, pinned or discovered.
	ctx = ContextWithRuntime(ctx, rt)

	ins := newInstruments(cfg.Metrics)
	ins.spawns.Add(1)
	ins.inflight.Add(1)
	started := time.Now()
	defer func() {
		ins.inflight.Add(-1)
		ins.duration.Record(time.Since(started).Seconds())
	}()

	f := newFiber(uuid.NewString())
	f.bindDriver(rt)
	defer f.releaseDriver()

	rt.enter()
	defer rt.exit()

	h := f.start(ctx, func(ctx context.Context) (any, error) { return fn(ctx) })

	suspended := false
	for !f.finished() {
		suspended = true
		ins.suspensions.Add(1)
		if v, err := driveSuspension(ctx, h.pending); err != nil {
			// Raise the failure at the worker's suspension point so its own
			// error handling gets a chance to run first.
			h = f.resumeWith(resumption{err: err})
		} else {
			h = f.resumeWith(resumption{value: v})
		}
	}

	// fn's own failure always wins: the bridge passes it through unchanged
	// even when a required suspension never happened.
	if h.err != nil {
		return zero, h.err
	}
	if cfg.RequireSuspension && !suspended {
		return zero, errorc.With(ErrSuspensionRequired, errorc.String("bridge_id", f.id))
	}
	v, _ := h.value.(T)
	return v, nil
}

// driveSuspension runs a yielded awaitable on the driver's context. A panic
// inside the awaitable is captured so it can be raised inside the worker
// instead of unwinding the driver loop.
func driveSuspension(ctx context.Context, s *suspension) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return s.run(ctx)
}

// RunSync runs fn through a bridge, or calls it directly when ctx already
// belongs to a live worker. Useful for entry points that may be invoked
// both from bridged and plain code, test harnesses in particular.
func RunSync[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	if InWorker(ctx) {
		return fn(ctx)
	}
	return Spawn(ctx, fn)
}

// instruments bundles the per-Spawn metric instruments.
type instruments struct {
	spawns      metrics.Counter
	suspensions metrics.Counter
	inflight    metrics.UpDownCounter
	duration    metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		spawns: p.Counter("syncbridge.spawns",
			metrics.WithDescription("bridges spawned"), metrics.WithUnit("1")),
		suspensions: p.Counter("syncbridge.suspensions",
			metrics.WithDescription("worker suspensions relayed by driver loops"), metrics.WithUnit("1")),
		inflight: p.UpDownCounter("syncbridge.inflight",
			metrics.WithDescription("driver loops currently running"), metrics.WithUnit("1")),
		duration: p.Histogram("syncbridge.duration",
			metrics.WithDescription("bridge wall time"), metrics.WithUnit("seconds")),
	}
}
