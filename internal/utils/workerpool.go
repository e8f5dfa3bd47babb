package utils

import (
	"context"
	"sync"
)

// ParallelForEach runs fn for every item on at most workers goroutines.
// The returned slice holds each item's error at the item's index; items
// never dispatched because ctx was cancelled keep a nil error.
func ParallelForEach[T any](ctx context.Context, items []T, workers int, fn func(context.Context, T) error) []error {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs
	}
	workers = max(1, min(workers, len(items)))

	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			// each index is written by exactly one worker
			for idx := range next {
				errs[idx] = fn(ctx, items[idx])
			}
		}()
	}

dispatch:
	for i := range items {
		select {
		case <-ctx.Done():
			break dispatch
		case next <- i:
		}
	}
	close(next)
	wg.Wait()

	return errs
}

// FirstError returns the error of the earliest failed item, in item order
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// CollectErrors returns the non-nil errors in item order
func CollectErrors(errs []error) []error {
	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return failed
}
