package syncbridge_test

import (
	"context"
	"fmt"

	"github.com/ygrebnov/syncbridge"
)

func ExampleSpawn() {
	v, err := syncbridge.Spawn(context.Background(), func(ctx context.Context) (int, error) {
		n, err := syncbridge.AwaitOnly(ctx, syncbridge.Resolved(2))
		if err != nil {
			return 0, err
		}
		return 1 + n, nil
	})

	fmt.Println(v, err)
	// Output: 3 <nil>
}

func ExampleAwaitFallback() {
	fut := syncbridge.NewFuture[int]()
	go fut.Complete(5)

	// No worker, idle runtime: the fallback drives the future itself.
	ctx := syncbridge.ContextWithRuntime(context.Background(), syncbridge.NewRuntime())
	v, err := syncbridge.AwaitFallback(ctx, fut)

	fmt.Println(v, err)
	// Output: 5 <nil>
}

func ExampleLock() {
	var l syncbridge.Lock
	ctx := syncbridge.ContextWithRuntime(context.Background(), syncbridge.NewRuntime())

	if err := l.Enter(ctx); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("held")
	l.Exit()
	// Output: held
}

func ExampleSpawn_requireSuspension() {
	_, err := syncbridge.Spawn(context.Background(),
		func(_ context.Context) (int, error) { return 1, nil },
		syncbridge.WithRequireSuspension(),
	)

	fmt.Println(err != nil)
	// Output: true
}
