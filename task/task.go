package task

import (
	"context"
)

// Result carries the outcome of a completed task: a value or an error,
// never both meaningfully.
type Result[T any] struct {
	Value T
	Err   error
}

// ResultFrom packs a conventional (value, error) pair into a Result.
func ResultFrom[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

// Task is a deferred computation that eventually completes with a
// Result[T]. Obtaining a Task never blocks; Await does.
//
// A Task completes exactly once. Await may be called any number of times
// from any goroutine; every call observes the same Result.
type Task[T any] struct {
	done <-chan struct{}
	res  *Result[T]
}

// New returns an unresolved Task and the completion function that resolves
// it. The completion function must be called exactly once.
func New[T any]() (*Task[T], func(Result[T])) {
	done := make(chan struct{})
	t := &Task[T]{done: done, res: new(Result[T])}
	complete := func(r Result[T]) {
		*t.res = r
		close(done)
	}
	return t, complete
}

// Completed returns a Task already resolved with value.
func Completed[T any](value T) *Task[T] {
	t, complete := New[T]()
	complete(Result[T]{Value: value})
	return t
}

// Failed returns a Task already resolved with err.
func Failed[T any](err error) *Task[T] {
	t, complete := New[T]()
	complete(Result[T]{Err: err})
	return t
}

// Await blocks until the task completes or ctx is done, whichever comes
// first. Cancellation abandons the wait, not the underlying computation.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.res.Value, t.res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryResult returns the task's Result if it has completed, without blocking.
func (t *Task[T]) TryResult() (Result[T], bool) {
	select {
	case <-t.done:
		return *t.res, true
	default:
		return Result[T]{}, false
	}
}
