package syncbridge

import (
	"context"
	"sync"
	"sync/atomic"
)

// Runtime is a handle to the execution surface that drives awaitables: a
// driver loop entered through Spawn, or a one-shot drive performed by
// AwaitFallback. It carries no scheduler of its own; it only accounts for
// whether something is currently being driven, which is what the fallback
// path needs to refuse a reentrant drive.
type Runtime struct {
	busy atomic.Int64
}

// NewRuntime returns an idle Runtime.
func NewRuntime() *Runtime { return &Runtime{} }

// Busy reports whether the runtime is currently driving at least one
// operation (an active Spawn loop or a one-shot drive).
func (r *Runtime) Busy() bool { return r.busy.Load() > 0 }

// enter/exit account for a driver loop. Nested Spawn calls on the same
// runtime stack up; the runtime stays busy until the outermost loop exits.
func (r *Runtime) enter() { r.busy.Add(1) }

func (r *Runtime) exit() { r.busy.Add(-1) }

// acquire claims the runtime for a one-shot drive. Unlike enter, it fails
// when anything is already running: synchronously driving a second
// operation while one is active would deadlock or corrupt reentrancy.
func (r *Runtime) acquire() error {
	if !r.busy.CompareAndSwap(0, 1) {
		return ErrRuntimeBusy
	}
	return nil
}

func (r *Runtime) release() { r.busy.Add(-1) }

type runtimeKey struct{}

// ContextWithRuntime installs rt as the runtime for call paths below ctx.
func ContextWithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// RuntimeFromContext returns the runtime installed on ctx, if any.
func RuntimeFromContext(ctx context.Context) (*Runtime, bool) {
	rt, ok := ctx.Value(runtimeKey{}).(*Runtime)
	return rt, ok
}

var defaultRuntime = sync.OnceValue(NewRuntime)

// CurrentRuntime returns the runtime active for ctx: the one installed via
// ContextWithRuntime when present, otherwise a process-wide default
// created on first use.
func CurrentRuntime(ctx context.Context) *Runtime {
	if rt, ok := RuntimeFromContext(ctx); ok && rt != nil {
		return rt
	}
	return defaultRuntime()
}
