package syncbridge

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Lock adapts an asynchronous mutex to scoped blocking-style acquisition,
// usable from synchronous code whether or not a worker is active. Inside a
// worker, Enter suspends cooperatively; outside one, it falls back to
// driving the acquisition directly.
//
// The zero value is ready to use. The underlying semaphore is created
// lazily on first use; creation itself never suspends, so first-time
// access cannot race within a single worker.
type Lock struct {
	once sync.Once
	sem  *semaphore.Weighted
}

func (l *Lock) mutex() *semaphore.Weighted {
	l.once.Do(func() { l.sem = semaphore.NewWeighted(1) })
	return l.sem
}

// Enter acquires the lock, blocking in the manner appropriate for the
// calling context. It returns the error of the underlying acquisition,
// typically ctx's error when the wait is cancelled; the lock is not held
// in that case.
func (l *Lock) Enter(ctx context.Context) error {
	m := l.mutex()
	_, err := AwaitFallback(ctx, AwaitableFunc[struct{}](func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.Acquire(ctx, 1)
	}))
	return err
}

// Exit releases the lock. It never suspends. Calling Exit without a
// matching successful Enter panics, as with sync.Mutex.
func (l *Lock) Exit() {
	l.mutex().Release(1)
}
