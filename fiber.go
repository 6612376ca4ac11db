package syncbridge

import (
	"context"
	"runtime/debug"
	"sync/atomic"
)

// handoff is the single value exchanged at a control transfer. At most one
// handoff is in flight per worker at any time: either a suspension carrying
// an awaitable for the driver to run, or the worker's final outcome.
type handoff struct {
	pending *suspension // non-nil while the worker is suspended
	value   any         // final result, valid once the worker has ended
	err     error       // final error, valid once the worker has ended
}

// suspension is the untyped form of an Awaitable crossing the worker
// boundary. The typed await adapters box and unbox around it.
type suspension struct {
	run     func(ctx context.Context) (any, error)
	discard func()
}

// resumption carries the driver's answer back into a suspended worker.
type resumption struct {
	value any
	err   error
}

// fiber simulates a stackful, suspendable execution context with a
// dedicated goroutine synchronized by two rendezvous channels: resume
// carries resumptions into the worker, yield carries handoffs out. Both
// are unbuffered, so exactly one of driver and worker runs at any instant
// and every transfer is a strict rendezvous.
//
// The driver loop in Spawn owns the fiber for its whole run. It never
// abandons a suspended worker: every yielded suspension is answered with a
// value or an error, so the worker goroutine always runs to completion and
// cannot leak.
type fiber struct {
	id       string
	resume   chan resumption
	yield    chan handoff
	driver   atomic.Pointer[Runtime] // set for the duration of the driver loop
	awaiting atomic.Bool             // rejects overlapping suspensions
	ended    atomic.Bool
}

func newFiber(id string) *fiber {
	return &fiber{
		id:     id,
		resume: make(chan resumption),
		yield:  make(chan handoff),
	}
}

type workerKey struct{}

// workerFromContext returns the worker bound to ctx. The role marker is
// visible only while the worker's stack is live and its driver attached; a
// context leaked past the end of Spawn no longer identifies a worker.
func workerFromContext(ctx context.Context) (*fiber, bool) {
	f, ok := ctx.Value(workerKey{}).(*fiber)
	if !ok || f.ended.Load() || f.driver.Load() == nil {
		return nil, false
	}
	return f, true
}

// InWorker reports whether ctx belongs to a live worker created by Spawn.
func InWorker(ctx context.Context) bool {
	_, ok := workerFromContext(ctx)
	return ok
}

// BridgeID returns the identifier of the bridge pair ctx belongs to, if
// any. The identifier also appears as an attribute on the bridge's own
// misuse errors and tracing spans.
func BridgeID(ctx context.Context) (string, bool) {
	f, ok := workerFromContext(ctx)
	if !ok {
		return "", false
	}
	return f.id, true
}

// start launches fn on the worker goroutine and blocks until the first
// handoff: a suspension, or the final outcome if fn never suspends. The
// worker runs under the driver's ctx, snapshot at creation, with the role
// marker installed on top; fibers do not inherit ambient state by
// themselves. Called on the driver goroutine only.
func (f *fiber) start(ctx context.Context, fn func(context.Context) (any, error)) handoff {
	wctx := context.WithValue(ctx, workerKey{}, f)
	go func() {
		var h handoff
		func() {
			defer func() {
				if v := recover(); v != nil {
					h = handoff{err: &PanicError{Value: v, Stack: debug.Stack()}}
				}
			}()
			h.value, h.err = fn(wctx)
		}()
		f.ended.Store(true)
		f.yield <- h
	}()
	return <-f.yield
}

// resumeWith transfers control back into the suspended worker and blocks
// until the next handoff. Called on the driver goroutine only.
func (f *fiber) resumeWith(r resumption) handoff {
	f.resume <- r
	return <-f.yield
}

// finished reports whether the worker function has returned or panicked
// past the top of its stack. The channel rendezvous orders the flag write
// before the driver's read.
func (f *fiber) finished() bool { return f.ended.Load() }

// await yields s to the driver and blocks until the driver resumes this
// worker with the outcome. Called on the worker goroutine, via the await
// adapters, only.
func (f *fiber) await(s *suspension) (any, error) {
	if !f.awaiting.CompareAndSwap(false, true) {
		s.discard()
		return nil, ErrAwaitInProgress
	}
	defer f.awaiting.Store(false)
	if f.ended.Load() {
		// A stale handle: the worker completed after the caller looked it
		// up. Yielding now would compete with the final handoff.
		s.discard()
		return nil, ErrMissingWorker
	}
	f.yield <- handoff{pending: s}
	r := <-f.resume
	return r.value, r.err
}

func (f *fiber) bindDriver(rt *Runtime) { f.driver.Store(rt) }

// releaseDriver drops the worker's reference to its driver. The driver
// loop calls it on every exit path so a retained worker context cannot pin
// the runtime nor pass for a live worker afterwards.
func (f *fiber) releaseDriver() { f.driver.Store(nil) }
