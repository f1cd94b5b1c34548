// Package dispatcher runs a list of independent tasks through a bounded worker pool.
//
// A fixed number of workers each claim the next unclaimed index with an atomic increment,
// so the pool stays saturated until the list is drained and no index is claimed twice.
// Results land in a slice indexed by the task's original position; each slot is written by
// exactly one worker.
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Result is the outcome of one task.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Hooks observe the pool. All hooks are optional and may be called concurrently.
type Hooks struct {
	// OnStart runs when a worker claims index i, before the task function is called.
	OnStart func(i int)
	// OnDone runs after index i finished; completed counts finished tasks including i.
	OnDone func(i int, completed int, total int, err error)
}

// Run calls fn for every item with at most concurrency calls in flight and returns one
// Result per item at the item's index. A failing or panicking task never affects its
// siblings. Once ctx is done, unclaimed items are not started and carry ctx.Err().
func Run[T, R any](
	ctx context.Context,
	items []T,
	concurrency int,
	fn func(ctx context.Context, item T) (R, error),
	hooks Hooks,
) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	workers := min(concurrency, len(items))

	var (
		next      atomic.Int64
		completed atomic.Int64
		wg        sync.WaitGroup
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(items) {
					return
				}
				if hooks.OnStart != nil {
					hooks.OnStart(i)
				}
				res := Result[R]{Index: i}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Value, res.Err = call(ctx, items[i], fn)
				}
				results[i] = res
				done := int(completed.Add(1))
				if hooks.OnDone != nil {
					hooks.OnDone(i, done, len(items), res.Err)
				}
			}
		}()
	}
	wg.Wait()
	return results
}

func call[T, R any](ctx context.Context, item T, fn func(context.Context, T) (R, error)) (value R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panicked: %v", rec)
		}
	}()
	return fn(ctx, item)
}
