// Package executor implements the lightning execution engine: a fixed
// worker pool around a task queue with per-job timing and panic isolation.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDraining is returned by Submit once Drain has been called.
var ErrDraining = errors.New("executor: pool is draining")

// Job is a named unit of work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	Submitted  int
	Completed  int
	Failed     int
	AvgLatency time.Duration
}

type submission struct {
	ctx  context.Context
	job  Job
	done chan error
}

// Pool runs jobs on a fixed set of workers. A panicking job is isolated
// and counted as failed; it never takes a worker down.
type Pool struct {
	queue    chan submission
	wg       sync.WaitGroup
	inflight sync.WaitGroup

	mu        sync.Mutex
	draining  bool
	submitted int
	completed int
	failed    int
	ran       int
	totalTime time.Duration
}

// NewPool starts a pool with the given worker count and queue depth.
func NewPool(workers, depth int) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if depth <= 0 {
		depth = workers * 2
	}

	p := &Pool{queue: make(chan submission, depth)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for sub := range p.queue {
		err := p.runOne(sub.ctx, sub.job)
		if sub.done != nil {
			sub.done <- err
		}
	}
}

func (p *Pool) runOne(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("executor: job %q panicked: %v", job.Name, r)
		}
	}()

	if ctx.Err() != nil {
		p.record(0, ctx.Err(), false)
		return ctx.Err()
	}

	start := time.Now()
	err = job.Run(ctx)
	p.record(time.Since(start), err, true)
	return err
}

// record counts the outcome. Jobs cancelled before they started carry no
// latency and are kept out of the average.
func (p *Pool) record(latency time.Duration, err error, started bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.failed++
	} else {
		p.completed++
	}
	if started {
		p.ran++
		p.totalTime += latency
	}
}

// Submit enqueues a job and returns a channel that receives the job's
// result exactly once. It blocks while the queue is full, and fails fast
// on context cancellation or a draining pool.
func (p *Pool) Submit(ctx context.Context, job Job) (<-chan error, error) {
	p.mu.Lock()
	if p.draining {
		p.mu.Unlock()
		return nil, ErrDraining
	}
	p.submitted++
	// Holding an inflight token keeps Drain from closing the queue while
	// this submission's send is pending.
	p.inflight.Add(1)
	p.mu.Unlock()
	defer p.inflight.Done()

	done := make(chan error, 1)
	select {
	case <-ctx.Done():
		p.mu.Lock()
		p.submitted--
		p.mu.Unlock()
		return nil, ctx.Err()
	case p.queue <- submission{ctx: ctx, job: job, done: done}:
		return done, nil
	}
}

// Drain stops accepting new jobs, waits for pending submissions to land,
// runs out the queue, and waits for all workers to exit. Safe to call
// more than once.
func (p *Pool) Drain() {
	p.mu.Lock()
	if p.draining {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.draining = true
	p.mu.Unlock()

	p.inflight.Wait()
	close(p.queue)
	p.wg.Wait()
}

// Stats returns current counters. The latency average covers completed
// and failed jobs that actually started.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Submitted: p.submitted,
		Completed: p.completed,
		Failed:    p.failed,
	}
	if p.ran > 0 {
		s.AvgLatency = p.totalTime / time.Duration(p.ran)
	}
	return s
}
