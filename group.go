package syncbridge

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs each function on its own independent driver/worker pair,
// concurrently, and returns the results in input order. The first error
// cancels the context the remaining pairs are driven with, and is the one
// returned. Pairs never share a worker: the one-pair-at-a-time rule holds
// within each element, not across elements.
func RunAll[T any](ctx context.Context, fns ...func(context.Context) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	out := make([]T, len(fns))
	for i, fn := range fns {
		g.Go(func() error {
			v, err := Spawn(ctx, fn)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ForEach bridges fn over every item concurrently, one independent pair
// per item, with at most limit pairs in flight (limit <= 0 means no
// limit). The first error cancels the remaining pairs' driving context
// and is returned.
func ForEach[S any](ctx context.Context, items []S, limit int, fn func(context.Context, S) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, item := range items {
		g.Go(func() error {
			_, err := Spawn(ctx, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, fn(ctx, item)
			})
			return err
		})
	}
	return g.Wait()
}
