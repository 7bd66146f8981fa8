package scheduler

import (
	"context"
)

// Work is a unit of work run by a worker. It must honour ctx cancellation.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

func (r Result[T]) Unwrap() (T, error) {
	return r.Data, r.Err
}

// Future delivers the single result of a submitted work. Reading C more than
// once blocks forever.
type Future[T any] struct {
	c      <-chan T
	cancel context.CancelFunc
}

func newFuture[T any](c <-chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

func (f *Future[T]) C() <-chan T {
	return f.c
}

// Stop cancels the context of the work. A stopped work still delivers its result.
func (f *Future[T]) Stop() {
	f.cancel()
}
