// Package workerpool provides a bounded goroutine pool with backpressure.
// Banner image uploads run on it so a slow storage disk never holds up the
// request that triggered them.
//
//	pool := workerpool.New(4, "banner-publish")
//	defer pool.Shutdown()
//
//	if err := pool.Submit(task); errors.Is(err, workerpool.ErrPoolFull) {
//	    // caller decides: run inline, drop, or report
//	}
package workerpool

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vitrine/backoffice/pkg/logger"
)

// ErrPoolFull is returned by Submit when every worker is busy and the queue
// is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

type Pool struct {
	name   string
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New starts size workers. The queue holds 2×size pending tasks.
func New(size int, name string) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		name:  name,
		tasks: make(chan func(), size*2),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting tasks, runs the queued ones and waits for the
// workers to exit. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

// run executes task and logs a panic instead of killing the worker.
func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker task panicked",
				zap.String("pool", p.name),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	task()
}
