package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"accreditation/internal/sentinel"
	dErrors "accreditation/pkg/domain-errors"
)

// ConcurrentResult counts outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes   int32
	Unavailable int32
	Conflicts   int32
	Errors      int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Unavailable + r.Conflicts + r.Errors
}

// RunConcurrent runs fn in goroutines parallel calls and buckets the errors.
// Storage failures (unavailable or timeout) and conflicts get their own counts.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, unavailable, conflicts, errs atomic.Int32

	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.IsFailClosed(err):
				unavailable.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyExists), dErrors.HasCode(err, dErrors.CodeConflict):
				conflicts.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}
	wg.Wait()

	return &ConcurrentResult{
		Successes:   successes.Load(),
		Unavailable: unavailable.Load(),
		Conflicts:   conflicts.Load(),
		Errors:      errs.Load(),
	}
}

func RunConcurrentCtx(ctx context.Context, goroutines int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	return RunConcurrent(goroutines, func(idx int) error {
		return fn(ctx, idx)
	})
}
