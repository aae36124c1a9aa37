package models

import (
	"context"
)

// Result carries the outcome of one unit of scheduled work.
type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		cancel: cancel,
	}

	return f
}

func (f *Future[T]) C() chan T {
	return f.input
}

// Wait blocks until the result is available or ctx is done. The work context
// is released in both cases, so the work is canceled when ctx ends first.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	defer f.cancel()
	select {
	case v := <-f.input:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) Stop() {
	f.cancel()
}
