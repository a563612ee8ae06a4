package utils

import (
	"context"
	"sync"
)

// ParallelMap applies fn to every item using up to workers goroutines.
// Results and errors are returned in the order of items. Items not
// processed because ctx was cancelled get ctx.Err() as their error.
func ParallelMap[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	done := make([]bool, len(items))
	taskChan := make(chan int, len(items))
	var wg sync.WaitGroup

	// each index is written by exactly one worker
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-taskChan:
					if !ok {
						return
					}
					results[idx], errs[idx] = fn(ctx, items[idx])
					done[idx] = true
				}
			}
		}()
	}

	for i := range items {
		taskChan <- i
	}
	close(taskChan)
	wg.Wait()

	for i := range items {
		if !done[i] {
			errs[i] = ctx.Err()
		}
	}

	return results, errs
}

// FirstError returns the first non-nil error from a slice of errors
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
