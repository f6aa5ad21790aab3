// internal/pool/pool.go
// Package pool provides the process-wide bounded worker pool used by the
// notification dispatcher and the report aggregator. It is constructed once
// at startup and torn down exactly once at shutdown.
package pool

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Submit after shutdown has been initiated.
var ErrClosed = errors.New("worker pool closed")

// Task is the handle for a submitted unit of work. Callers may wait on it,
// poll Done, or ignore it entirely.
type Task struct {
	ctx  context.Context
	fn   func(context.Context) error
	err  error
	done chan struct{}
}

func (t *Task) run() {
	t.err = t.fn(t.ctx)
	close(t.done)
}

// Done is closed once the task has finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the task's result. It is only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx expires. Tasks abandoned at
// pool shutdown never finish, so waiters should pass a bounded context.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pool runs short-lived independent tasks on a fixed number of workers.
type Pool struct {
	mu      sync.Mutex
	closed  bool
	tasks   chan *Task
	workers sync.WaitGroup
}

// New starts a pool with the given number of workers.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		tasks: make(chan *Task, 1024),
	}
	for i := 0; i < size; i++ {
		p.workers.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for t := range p.tasks {
		t.run()
	}
}

// Submit enqueues fn for execution and returns its handle. It fails with
// ErrClosed once shutdown has been initiated. The supplied context is the
// one the task runs under; callers that outlive their request should pass
// a detached context.
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) (*Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	t := &Task{ctx: ctx, fn: fn, done: make(chan struct{})}
	p.tasks <- t
	return t, nil
}

// Shutdown stops intake and waits for queued tasks to drain. When ctx
// expires first, the remaining tasks are abandoned and ctx's error is
// returned. Shutdown is idempotent.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
