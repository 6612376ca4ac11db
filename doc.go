// Package syncbridge lets ordinary blocking-style code drive asynchronous
// operations without being rewritten around callbacks or channels. It is
// aimed at libraries (database drivers in particular) that expose a
// synchronous API on top of an asynchronous transport: the synchronous body
// occasionally needs to perform a real asynchronous operation and block
// until it resolves, while the outer caller sees the whole call as a single
// operation on its own context.
//
// # Model
//
// A bridge is a strict pairing of a driver and a worker. Spawn creates the
// pair: it runs the supplied function on a worker (an independently-stacked
// execution simulated by a dedicated goroutine) and drives it from the
// calling goroutine. Inside the function, AwaitOnly hands an Awaitable back
// to the driver and blocks until the driver has driven it to completion;
// the result, or the failure, reappears at the call site as a plain return
// value, exactly as if the call had blocked normally.
//
// Exactly one side of a pair runs at any instant. Control transfers only at
// explicit points: the worker suspending through an await adapter, or the
// driver resuming the worker with a value or an error. Cancellation and
// timeouts are delivered into the worker as an error at its suspension
// point, never as an interrupt in the middle of arbitrary worker code, so
// deferred cleanup inside the worker runs before the failure reaches the
// caller of Spawn.
//
// Nested bridges are allowed: a worker's function may itself call Spawn,
// which layers an independent pair on top of the current one. Concurrent
// siblings sharing one pair are not supported; use RunAll or ForEach to run
// several independent pairs instead.
//
// # Adapters
//
//   - AwaitOnly: requires an enclosing worker; misuse discards the
//     awaitable and reports ErrMissingWorker.
//   - AwaitFallback: like AwaitOnly inside a worker; outside one it drives
//     the awaitable on the current Runtime when that runtime is free. This
//     fallback is a legacy convenience and blocks the calling goroutine;
//     prefer AwaitOnly under Spawn in new code.
//   - Lock: scoped acquire/release over an asynchronous semaphore, usable
//     from synchronous code whether or not a worker is active.
//
// # Failure signals
//
// The bridge never wraps or swallows application errors. Its own error
// kinds are sentinels: ErrMissingWorker (adapter misuse),
// ErrSuspensionRequired (Spawn was told to require a real suspension and
// none occurred, typically a non-asynchronous backend masquerading as an
// asynchronous one), ErrAwaitInProgress (overlapping suspension attempts
// on one worker). IsExitCondition distinguishes cancellation, timeout and
// recovered panics from ordinary recoverable errors.
//
// Observability is opt-in via the metrics subpackage (WithMetrics) and the
// tracing subpackage; the library itself carries no logger.
package syncbridge
