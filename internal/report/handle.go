// internal/report/handle.go
package report

import (
	"context"

	"libralend/internal/pool"
)

// Handle is a future-like view of a report computed on the worker pool.
// The caller may wait on it, poll Done, or drop it.
type Handle[T any] struct {
	task   *pool.Task
	result T
}

// Wait blocks until the report is ready or ctx expires. A failed
// computation surfaces its error here.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	if err := h.task.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return h.result, nil
}

// Done is closed once the computation has finished.
func (h *Handle[T]) Done() <-chan struct{} { return h.task.Done() }

// submit schedules fn on the pool and wraps its result in a Handle. The
// result is published before the task's done channel closes, so reads
// through Wait are race-free.
func submit[T any](ctx context.Context, p *pool.Pool, fn func(context.Context) (T, error)) (*Handle[T], error) {
	h := &Handle[T]{}
	task, err := p.Submit(context.WithoutCancel(ctx), func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		h.result = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	h.task = task
	return h, nil
}
