// Package workerpool bounds concurrent task execution. The queue worker
// submits job handlers here so a flood of jobs cannot spawn unbounded
// goroutines; on ErrPoolFull the caller falls back to running inline.
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when every worker is busy and the
// backlog is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned once Shutdown has begun.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted tasks on a fixed set of worker goroutines. The backlog
// holds twice the worker count so short bursts are absorbed without
// rejecting.
type Pool struct {
	backlog  chan func()
	done     chan struct{}
	shutdown sync.Once
	workers  sync.WaitGroup
}

// New starts a pool of size workers. A size below 1 is treated as 1.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}

	p := &Pool{
		backlog: make(chan func(), size*2),
		done:    make(chan struct{}),
	}

	p.workers.Add(size)
	for i := 0; i < size; i++ {
		go p.run()
	}

	return p
}

func (p *Pool) run() {
	defer p.workers.Done()
	for task := range p.backlog {
		func() {
			defer func() { _ = recover() }()
			task()
		}()
	}
}

// Submit enqueues task without blocking. It returns ErrPoolFull when the
// backlog is at capacity and ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case p.backlog <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is accepted or the pool closes.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	case p.backlog <- task:
		return nil
	}
}

// Shutdown rejects further submissions, drains the backlog and waits for
// in-flight tasks. Calling it again is a no-op.
func (p *Pool) Shutdown() {
	p.shutdown.Do(func() {
		close(p.done)
		close(p.backlog)
		p.workers.Wait()
	})
}
