package executor

import (
	"context"
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ErrStopped reports a submission to a pool whose context has been
// cancelled.
var ErrStopped = errors.New("conprog: executor stopped")

// Job is one unit of deferred work. Jobs sharing a Key are executed by the
// same worker in submission order; that per-key FIFO is the only ordering
// the pool guarantees, and the only one the async interpreter needs.
type Job struct {
	Key string
	Fn  func(context.Context)
}

// Config sizes a worker pool.
type Config struct {
	NumWorkers int // default: 1
	BufferSize int // per-worker job buffer, default: 1
}

// NewConfig normalizes non-positive sizes to the defaults.
func NewConfig(numWorkers, bufferSize int) Config {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return Config{NumWorkers: numWorkers, BufferSize: bufferSize}
}

// Pool is a fixed set of worker goroutines, each draining its own job
// channel. Jobs are routed to workers by key hash, so two jobs with the
// same key never run concurrently or out of submission order.
type Pool struct {
	jobChs []chan Job
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool starts the workers and returns once all of them are draining.
// The pool runs until Close is called or ctx is cancelled.
func NewPool(ctx context.Context, config Config) *Pool {
	ctx, cancel := context.WithCancel(ctx)

	jobChs := make([]chan Job, config.NumWorkers)
	ready := sync.WaitGroup{}
	for i := 0; i < config.NumWorkers; i++ {
		ready.Add(1)
		ch := make(chan Job, config.BufferSize)
		// The job channel is never closed: Submit may still be sending
		// when a worker observes cancellation. Unreferenced channels are
		// collected once the pool is dropped.
		go func(ch chan Job) {
			ready.Done()
			for {
				select {
				case job := <-ch:
					job.Fn(ctx)
				case <-ctx.Done():
					return
				}
			}
		}(ch)
		jobChs[i] = ch
	}
	ready.Wait()

	return &Pool{jobChs: jobChs, ctx: ctx, cancel: cancel}
}

// Submit enqueues job on the worker owning its key. Blocks while that
// worker's buffer is full; fails once the pool is closed or ctx is done.
// After Close has returned, Submit always fails with ErrStopped. When a
// close races the send itself, the job may land in a buffer no worker
// drains; callers that need to notice use Done.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if p.ctx.Err() != nil {
		return ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := p.jobChs[indexByHash(job.Key, len(p.jobChs))]
	select {
	case ch <- job:
		return nil
	case <-p.ctx.Done():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the pool has stopped, whether by Close or by
// cancellation of its parent context.
func (p *Pool) Done() <-chan struct{} {
	return p.ctx.Done()
}

// Close stops all workers. Buffered jobs that have not started are dropped.
func (p *Pool) Close() {
	p.cancel()
}

func indexByHash(key string, numChs int) int {
	switch numChs {
	case 0:
		panic("number of worker channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numChs))
	}
}
