package interp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/inert-io/conprog/internal/node"
	"github.com/inert-io/conprog/program"
)

// Run executes p on the calling goroutine, blocking until every effect has
// completed, and returns the program's final value.
//
// Effects run exactly once each, in left-to-right structural order. The
// first console error aborts the run and is returned unchanged; effects
// after the failure point never execute. ctx is observed between effects
// only — a ReadLine already blocking on the console cannot be interrupted.
func Run[T any](ctx context.Context, in *Interpreter, p program.Program[T]) (T, error) {
	runID := uuid.New().String()
	start := time.Now()

	v, effects, err := in.walk(ctx, p.Node, in.perform)

	in.logger.Debug("synchronous run finished",
		zap.String("runId", runID),
		zap.Int("effects", effects),
		zap.Stringer("span", timespan.BetweenTimes(start, time.Now())),
		zap.Error(err),
	)

	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// walk is the trampolined structural interpreter shared by the synchronous
// and asynchronous strategies; they differ only in how a primitive effect
// is executed, passed in as performFn. Sequencing is handled with an
// explicit continuation stack rather than native recursion, so arbitrarily
// long Bind chains cannot grow the goroutine stack.
func (in *Interpreter) walk(
	ctx context.Context,
	root node.Node,
	performFn func(node.Op) (any, error),
) (result any, effects int, err error) {
	pending := make([]func(any) node.Node, 0, 8)
	current := root
	for {
		switch n := current.(type) {
		case node.Seq:
			pending = append(pending, n.Next)
			current = n.First

		case node.Pure:
			next, done := resume(&pending, n.Value)
			if done {
				return n.Value, effects, nil
			}
			current = next

		case node.Perform:
			if err := ctx.Err(); err != nil {
				return nil, effects, err
			}
			v, err := performFn(n.Op)
			if err != nil {
				return nil, effects, err
			}
			effects++
			next, done := resume(&pending, v)
			if done {
				return v, effects, nil
			}
			current = next

		default:
			panic("conprog: unknown program node")
		}
	}
}

// resume pops the innermost pending continuation and applies it to v.
// Reports done when no continuation is pending, i.e. v is the final result.
func resume(pending *[]func(any) node.Node, v any) (node.Node, bool) {
	ks := *pending
	if len(ks) == 0 {
		return nil, true
	}
	k := ks[len(ks)-1]
	*pending = ks[:len(ks)-1]
	return k(v), false
}
