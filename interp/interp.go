package interp

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/inert-io/conprog/console"
	"github.com/inert-io/conprog/internal/executor"
	"github.com/inert-io/conprog/internal/node"
	"github.com/inert-io/conprog/program"
)

// Interpreter executes programs against a single console collaborator.
// It holds no state about any individual run: the same Interpreter may run
// many programs, sequentially or concurrently, each run independent of the
// others.
//
// The zero value is not usable; construct with New.
type Interpreter struct {
	con    console.Console
	logger *zap.Logger

	poolConfig executor.Config
	poolOnce   sync.Once
	pool       *executor.Pool
	poolCtx    context.Context
	poolCancel context.CancelFunc
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger makes the interpreter emit per-run debug logs (run id, effect
// count, timespan) through logger. The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithAsyncWorkers sizes the worker pool backing RunAsync. Non-positive
// values fall back to the defaults (one worker, buffer of one). More
// workers only help when several programs run concurrently: all effects of
// one run are keyed to one worker to preserve their order.
func WithAsyncWorkers(numWorkers, bufferSize int) Option {
	return func(in *Interpreter) {
		in.poolConfig = executor.NewConfig(numWorkers, bufferSize)
	}
}

// New returns an Interpreter executing effects against con.
func New(con console.Console, opts ...Option) *Interpreter {
	in := &Interpreter{
		con:        con,
		logger:     zap.NewNop(),
		poolConfig: executor.NewConfig(1, 1),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Close stops the asynchronous worker pool, if one was ever started.
// Synchronous runs are unaffected. Tasks still in flight complete with
// executor.ErrStopped instead of scheduling further effects.
func (in *Interpreter) Close() {
	in.poolOnce.Do(func() {}) // ensure no pool is started after Close
	if in.poolCancel != nil {
		in.poolCancel()
	}
}

// asyncPool lazily starts the worker pool on first asynchronous run.
// The pool's lifetime is the interpreter's, not any single run's.
func (in *Interpreter) asyncPool() *executor.Pool {
	in.poolOnce.Do(func() {
		in.poolCtx, in.poolCancel = context.WithCancel(context.Background())
		in.pool = executor.NewPool(in.poolCtx, in.poolConfig)
		in.logger.Debug("async executor started",
			zap.Int("numWorkers", in.poolConfig.NumWorkers),
			zap.Int("bufferSize", in.poolConfig.BufferSize),
		)
	})
	return in.pool
}

// perform executes exactly one primitive effect against the console and
// returns its type-erased result. This is the only place in the module
// where described effects become real I/O.
func (in *Interpreter) perform(op node.Op) (any, error) {
	switch o := op.(type) {
	case node.PrintOp:
		if err := in.con.WriteLine(o.Message); err != nil {
			return nil, err
		}
		return program.Unit{}, nil
	case node.ReadOp:
		return in.con.ReadLine()
	default:
		panic("conprog: unknown console operation")
	}
}
