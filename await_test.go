package syncbridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAwaitOnly_NoWorker_DiscardsAndReportsMissingWorker(t *testing.T) {
	probe := NewFuture[int]()

	v, err := AwaitOnly(context.Background(), probe)
	require.ErrorIs(t, err, ErrMissingWorker)
	require.Zero(t, v)
	require.True(t, probe.Discarded(), "misused awaitable must not be left pending")
}

func TestAwaitOnly_LeakedWorkerContext_IsNotAWorker(t *testing.T) {
	var leaked context.Context

	_, err := Spawn(context.Background(), func(ctx context.Context) (int, error) {
		leaked = ctx
		return 0, nil
	})
	require.NoError(t, err)

	// The role marker is only visible while the worker's stack is live.
	probe := NewFuture[int]()
	_, err = AwaitOnly(leaked, probe)
	require.ErrorIs(t, err, ErrMissingWorker)
	require.True(t, probe.Discarded())
	require.False(t, InWorker(leaked))
}

func TestAwaitFallback_InWorker_Suspends(t *testing.T) {
	v, err := Spawn(context.Background(), func(ctx context.Context) (int, error) {
		return AwaitFallback(ctx, resolveLater(11, 5*time.Millisecond))
	})
	require.NoError(t, err)
	require.Equal(t, 11, v)
}

func TestAwaitFallback_NoWorkerIdleRuntime_DrivesToCompletion(t *testing.T) {
	ctx := ContextWithRuntime(context.Background(), NewRuntime())

	fut := NewFuture[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		fut.Complete(5)
	}()

	v, err := AwaitFallback(ctx, fut)
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestAwaitFallback_NoWorkerBusyRuntime_DiscardsAndReportsMissingWorker(t *testing.T) {
	rt := NewRuntime()
	ctx := ContextWithRuntime(context.Background(), rt)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := Spawn(ctx, func(ctx context.Context) (int, error) {
			return AwaitOnly(ctx, AwaitableFunc[int](func(_ context.Context) (int, error) {
				close(started)
				<-release
				return 0, nil
			}))
		})
		done <- err
	}()

	<-started
	require.True(t, rt.Busy())

	probe := NewFuture[int]()
	_, err := AwaitFallback(ctx, probe)
	require.ErrorIs(t, err, ErrMissingWorker)
	require.True(t, probe.Discarded())

	close(release)
	require.NoError(t, <-done)
	require.False(t, rt.Busy())
}

func TestAwaitOnly_OverlappingSuspensionRejected(t *testing.T) {
	var (
		firstErr  error
		secondErr error
	)

	_, err := Spawn(context.Background(), func(ctx context.Context) (int, error) {
		firstStarted := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})

		go func() {
			defer close(done)
			// Runs strictly after the first suspension is in flight.
			<-firstStarted
			_, secondErr = AwaitOnly(ctx, Resolved(2))
			close(release)
		}()

		_, firstErr = AwaitOnly(ctx, AwaitableFunc[int](func(_ context.Context) (int, error) {
			close(firstStarted)
			<-release
			return 1, nil
		}))
		<-done
		return 0, nil
	})

	require.NoError(t, err)
	require.NoError(t, firstErr)
	require.ErrorIs(t, secondErr, ErrAwaitInProgress)
}
