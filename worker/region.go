package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/settings"
	"github.com/oomph-ac/motion/transition"
)

// DefaultQueueSize is the amount of jobs a region buffers if Options.QueueSize is not set.
const DefaultQueueSize = 64

// Options holds the optional configuration of a Region.
type Options struct {
	Settings  *settings.Settings
	Logger    *slog.Logger
	QueueSize int
}

type outcome struct {
	res transition.Result
	err error
}

type job struct {
	req  transition.Request
	done chan outcome
}

// Region resolves the motion of every object inside of one spatial region. Requests are resolved
// one at a time by a single goroutine that owns the transition pool of the region.
type Region struct {
	name  string
	cells transition.CellFinder
	land  transition.Landscape
	opts  transition.Options
	log   *slog.Logger

	pool *transition.Pool
	jobs chan job

	closing   chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// NewRegion creates a region resolving motion against cells and land, and starts its goroutine.
func NewRegion(name string, cells transition.CellFinder, land transition.Landscape, opts Options) *Region {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("region", name)

	size := opts.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	r := &Region{
		name:    name,
		cells:   cells,
		land:    land,
		log:     log,
		jobs:    make(chan job, size),
		closing: make(chan struct{}),
		closed:  make(chan struct{}),
	}
	r.opts = transition.Options{
		Settings: opts.Settings,
		Debugf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	}
	r.pool = transition.NewPool(cells, land, r.opts)
	go r.run()
	return r
}

// Name returns the name of the region.
func (r *Region) Name() string {
	return r.name
}

// Resolve queues req and waits for its result. It returns oerror.ErrRegionClosed once the region is
// closed, and the error of ctx if it is done before the request is resolved.
func (r *Region) Resolve(ctx context.Context, req transition.Request) (transition.Result, error) {
	j := job{req: req, done: make(chan outcome, 1)}
	select {
	case <-r.closing:
		return transition.Result{}, oerror.ErrRegionClosed
	case <-ctx.Done():
		return transition.Result{}, ctx.Err()
	case r.jobs <- j:
	}

	select {
	case o := <-j.done:
		return o.res, o.err
	case <-r.closed:
		return transition.Result{}, oerror.ErrRegionClosed
	case <-ctx.Done():
		return transition.Result{}, ctx.Err()
	}
}

// ResolveBatch resolves reqs in order. Results of requests that failed are left zero and the first
// error is returned after every request was attempted.
func (r *Region) ResolveBatch(ctx context.Context, reqs []transition.Request) ([]transition.Result, error) {
	results := make([]transition.Result, len(reqs))
	var firstErr error
	for i, req := range reqs {
		res, err := r.Resolve(ctx, req)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if errors.Is(err, oerror.ErrRegionClosed) || ctx.Err() != nil {
				return results, firstErr
			}
			continue
		}
		results[i] = res
	}
	return results, firstErr
}

// Close stops the region. Requests still queued fail with oerror.ErrRegionClosed.
func (r *Region) Close() error {
	r.closeOnce.Do(func() {
		close(r.closing)
		<-r.closed
		r.log.Debug("region closed")
	})
	return nil
}

func (r *Region) run() {
	defer close(r.closed)
	for {
		select {
		case <-r.closing:
			return
		case j := <-r.jobs:
			j.done <- r.resolve(j.req)
		}
	}
}

func (r *Region) resolve(req transition.Request) (o outcome) {
	defer func() {
		if v := recover(); v != nil {
			r.log.Warn("transition panicked", "panic", v)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("region", r.name)
			})
			hub.Recover(oerror.New("%v", v))
			hub.Flush(time.Second * 5)

			// The pool may have been left with frames acquired.
			r.pool = transition.NewPool(r.cells, r.land, r.opts)
			o = outcome{err: oerror.ErrPanicked}
		}
	}()

	start := time.Now()
	res, err := r.pool.Resolve(req)
	r.log.Debug("resolved request", "ok", res.OK, "cell", res.Position.CellID, "err", err, "took", time.Since(start))
	return outcome{res: res, err: err}
}
