package worker

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/transition"
	"github.com/sasha-s/go-deadlock"
)

// Manager keeps track of the regions of a simulation.
type Manager struct {
	regions map[string]*Region
	workers *Workers
	opts    Options
	log     *slog.Logger
	closed  bool

	deadlock.RWMutex
}

// NewManager creates a manager whose regions are created with opts.
func NewManager(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{regions: make(map[string]*Region), workers: NewWorkers(), opts: opts, log: log}
}

// AddRegion creates and starts a region with the given name, closing any region that previously had
// that name.
func (m *Manager) AddRegion(name string, cells transition.CellFinder, land transition.Landscape) (*Region, error) {
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return nil, oerror.ErrRegionClosed
	}
	if old, ok := m.regions[name]; ok {
		_ = old.Close()
	}
	r := NewRegion(name, cells, land, m.opts)
	m.regions[name] = r
	m.workers.Grow(len(m.regions))
	m.log.Debug("added region", "region", name, "workers", m.workers.Running())
	return r, nil
}

// Region returns the region with the given name.
func (m *Manager) Region(name string) (*Region, bool) {
	m.RLock()
	r, ok := m.regions[name]
	m.RUnlock()
	return r, ok
}

// Regions returns the names of all regions, sorted.
func (m *Manager) Regions() []string {
	m.RLock()
	names := make([]string, 0, len(m.regions))
	for name := range m.regions {
		names = append(names, name)
	}
	m.RUnlock()
	sort.Strings(names)
	return names
}

// RemoveRegion closes and forgets the region with the given name.
func (m *Manager) RemoveRegion(name string) {
	m.Lock()
	r, ok := m.regions[name]
	delete(m.regions, name)
	m.Unlock()
	if ok {
		_ = r.Close()
	}
}

// Tick resolves the requests of every region in batches, with the regions running concurrently on
// the workers of the manager. Requests for unknown regions fail with oerror.ErrNoCell.
func (m *Manager) Tick(ctx context.Context, batches map[string][]transition.Request) (map[string][]transition.Result, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	results := make(map[string][]transition.Result, len(batches))
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for name, reqs := range batches {
		r, ok := m.Region(name)
		if !ok {
			m.log.Warn("tick for unknown region", "region", name)
			fail(oerror.ErrNoCell)
			continue
		}
		wg.Add(1)
		submitted := m.workers.Submit(func() {
			defer wg.Done()
			res, err := r.ResolveBatch(ctx, reqs)
			if err != nil {
				fail(err)
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
		})
		if !submitted {
			wg.Done()
			fail(oerror.ErrRegionClosed)
		}
	}
	wg.Wait()
	return results, firstErr
}

// Close closes every region of the manager and stops its workers.
func (m *Manager) Close() error {
	m.Lock()
	regions := m.regions
	m.regions = make(map[string]*Region)
	m.closed = true
	m.Unlock()
	m.workers.Stop()

	for _, r := range regions {
		_ = r.Close()
	}
	return nil
}
