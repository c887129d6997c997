package workspace

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Run applies fn to every job with at most workers running at once and
// returns the results in job order. A failed job never stops the others;
// failures are data in R. onDone, if set, is called once per finished job
// from one goroutine at a time.
func Run[J, R any](ctx context.Context, jobs []J, workers int, fn func(context.Context, J) R, onDone func(i int, r R)) []R {
	results := make([]R, len(jobs))
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			r := fn(ctx, job)
			results[i] = r
			if onDone != nil {
				mu.Lock()
				onDone(i, r)
				mu.Unlock()
			}
			return nil // Never fail, failures are carried in the result
		})
	}

	_ = g.Wait()
	return results
}
