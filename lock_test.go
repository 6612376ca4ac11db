package syncbridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLock_ContendedEnterBlocksUntilExit(t *testing.T) {
	var l Lock
	ctx := ContextWithRuntime(context.Background(), NewRuntime())

	require.NoError(t, l.Enter(ctx), "first Enter acquires immediately on a freshly created mutex")

	bEntered := make(chan struct{})
	go func() {
		// Independent runtime: B is plain synchronous code.
		bctx := ContextWithRuntime(context.Background(), NewRuntime())
		if err := l.Enter(bctx); err == nil {
			close(bEntered)
		}
	}()

	select {
	case <-bEntered:
		t.Fatal("second Enter must block while the lock is held")
	case <-time.After(50 * time.Millisecond):
	}

	l.Exit()

	select {
	case <-bEntered:
	case <-time.After(time.Second):
		t.Fatal("second Enter must return once the lock is released")
	}
	l.Exit()
}

func TestLock_EnterInsideWorkerSuspends(t *testing.T) {
	var l Lock

	v, err := Spawn(context.Background(), func(ctx context.Context) (int, error) {
		if err := l.Enter(ctx); err != nil {
			return 0, err
		}
		defer l.Exit()
		return 21, nil
	})
	require.NoError(t, err)
	require.Equal(t, 21, v)
}

func TestLock_EnterCancelledWhileWaiting(t *testing.T) {
	var l Lock
	ctx := ContextWithRuntime(context.Background(), NewRuntime())
	require.NoError(t, l.Enter(ctx))

	waitCtx, cancel := context.WithCancel(ContextWithRuntime(context.Background(), NewRuntime()))
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := l.Enter(waitCtx)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, IsExitCondition(err))

	// Still held by the first acquisition only.
	l.Exit()
}
