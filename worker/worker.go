package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Workers runs submitted functions on a set of goroutines that grows with the amount of regions a
// manager ticks, up to one goroutine per CPU.
type Workers struct {
	queue   chan func()
	running int
	limit   int
	stopped bool

	mu sync.Mutex
}

// NewWorkers returns an idle set of workers. No goroutine runs until Grow is called.
func NewWorkers() *Workers {
	return &Workers{
		queue: make(chan func(), runtime.NumCPU()),
		limit: runtime.NumCPU(),
	}
}

// Grow starts workers until n are running, or as many as there are CPUs.
func (w *Workers) Grow(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	for ; w.running < min(n, w.limit); w.running++ {
		go w.worker()
	}
}

// Running returns the amount of worker goroutines.
func (w *Workers) Running() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Workers) worker() {
	for f := range w.queue {
		w.run(f)
	}
}

// run executes f, reporting a panic instead of losing the worker to it.
func (w *Workers) run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be ran by a worker. To be used by a function that may be CPU intensive, and
// never from inside of a submitted function. It returns false if the workers were stopped or none
// were ever started, in which case f is not ran.
func (w *Workers) Submit(f func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.running == 0 {
		return false
	}
	w.queue <- f
	return true
}

// Stop stops the workers once they finished the functions already queued.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
}
