package interp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/inert-io/conprog/internal/executor"
	"github.com/inert-io/conprog/internal/node"
	"github.com/inert-io/conprog/program"
	"github.com/inert-io/conprog/task"
)

// RunAsync executes p without blocking the caller: the returned Task
// resolves with the program's final value once every effect has completed,
// or with the first effect's error.
//
// Every effect of the run is submitted to the interpreter's worker pool
// under the run's id, and the next stage is derived only after the
// previous effect has completed, so dependent steps keep their causal
// order no matter how the pool is sized. A failed effect resolves the Task
// with that error and no later stage is ever scheduled.
func RunAsync[T any](ctx context.Context, in *Interpreter, p program.Program[T]) *task.Task[T] {
	pool := in.asyncPool()
	if pool == nil {
		return task.Failed[T](executor.ErrStopped)
	}

	runID := uuid.New().String()
	start := time.Now()
	t, complete := task.New[T]()

	go func() {
		v, effects, err := in.walk(ctx, p.Node, func(op node.Op) (any, error) {
			return in.performOnPool(ctx, pool, runID, op)
		})

		in.logger.Debug("asynchronous run finished",
			zap.String("runId", runID),
			zap.Int("effects", effects),
			zap.Stringer("span", timespan.BetweenTimes(start, time.Now())),
			zap.Error(err),
		)

		if err != nil {
			complete(task.Result[T]{Err: err})
			return
		}
		complete(task.Result[T]{Value: v.(T)})
	}()

	return t
}

// performOnPool schedules one effect on the pool and waits for its
// completion. The driving goroutine blocks here, not the caller of
// RunAsync; the console itself is only ever touched by pool workers.
func (in *Interpreter) performOnPool(
	ctx context.Context,
	pool *executor.Pool,
	runID string,
	op node.Op,
) (any, error) {
	// Buffered so an abandoned wait never wedges the worker.
	done := make(chan task.Result[any], 1)
	job := executor.Job{
		Key: runID,
		Fn: func(context.Context) {
			done <- task.ResultFrom(in.perform(op))
		},
	}
	if err := pool.Submit(ctx, job); err != nil {
		return nil, err
	}

	select {
	case res := <-done:
		return res.Value, res.Err
	case <-pool.Done():
		// The pool stopped under the run: the job either never reached a
		// worker or is completing concurrently. Prefer its result when it
		// is already in, otherwise fail the stage.
		select {
		case res := <-done:
			return res.Value, res.Err
		default:
			return nil, executor.ErrStopped
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
