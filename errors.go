package syncbridge

import "errors"

const Namespace = "syncbridge"

var (
	// ErrMissingWorker reports an await adapter invoked on a call path with
	// no enclosing worker. The offending awaitable is always discarded
	// before this error is returned, so no pending operation leaks.
	ErrMissingWorker = errors.New(
		Namespace + ": Spawn has not been called; cannot await here. Was IO attempted in an unexpected place?",
	)

	// ErrSuspensionRequired reports that Spawn was configured with
	// WithRequireSuspension but the function completed without a single
	// asynchronous bridge. This usually means a non-asynchronous backend is
	// masquerading as an asynchronous one.
	ErrSuspensionRequired = errors.New(
		Namespace + ": the operation required an asynchronous execution but none was detected",
	)

	// ErrAwaitInProgress reports an attempt to start a second suspension on
	// a worker while the first one is still in flight.
	ErrAwaitInProgress = errors.New(Namespace + ": another await is already in flight on this worker")

	// ErrRuntimeBusy reports that a one-shot drive was requested on a
	// Runtime that is already driving an operation.
	ErrRuntimeBusy = errors.New(Namespace + ": runtime is already running")

	// ErrFutureDiscarded is the failure a Future settles with when it is
	// discarded before completion.
	ErrFutureDiscarded = errors.New(Namespace + ": future discarded before completion")

	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)
