// Package stagger renders an ordered sequence with a per-item entrance delay.
//
// Each item is rendered by its own goroutine into a slot reserved for its
// index, so the output order always equals the input order no matter how the
// goroutines are scheduled. The delay is handed to the render callback rather
// than slept on: the page applies it as a CSS animation-delay.
package stagger

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DelayFunc returns the entrance delay of the item at index i.
type DelayFunc func(i int) time.Duration

// Step delays item i by i*d.
func Step(d time.Duration) DelayFunc {
	return func(i int) time.Duration { return time.Duration(i) * d }
}

// Zero never delays.
func Zero(int) time.Duration { return 0 }

// RenderFunc renders one item given its index and entrance delay.
type RenderFunc[T any] func(i int, item T, delay time.Duration) (string, error)

// Render calls fn for every item concurrently and returns the results in
// input order. The first error cancels ctx for the remaining items and is
// returned; a nil delay means Zero.
func Render[T any](ctx context.Context, items []T, delay DelayFunc, fn RenderFunc[T]) ([]string, error) {
	if delay == nil {
		delay = Zero
	}
	out := make([]string, len(items))
	g, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := fn(i, item, delay(i))
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
