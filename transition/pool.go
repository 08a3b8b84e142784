package transition

import (
	"github.com/oomph-ac/motion/assert"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/settings"
)

// Options configure a Pool.
type Options struct {
	// Settings holds the tuning values used by every transition of the pool. Nil uses the defaults.
	Settings *settings.Settings
	// Debugf receives internal resolution trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Pool is a bounded stack of transitions. Transitions are acquired at increasing depth and must be
// released in the reverse order. A Pool is not safe for concurrent use: each simulation region owns
// its own.
type Pool struct {
	frames []*Transition
	depth  int

	cells    CellFinder
	land     Landscape
	settings settings.Settings
	debugf   func(format string, args ...any)
}

// NewPool returns a pool resolving against the cells found by cells. A nil finder only ever tests
// the candidate cell, and a nil landscape treats every cell as sharing one origin. Settings that
// fail validation are replaced by the defaults.
func NewPool(cells CellFinder, land Landscape, opts Options) *Pool {
	if cells == nil {
		cells = checkCellFinder{}
	}
	if land == nil {
		land = flatLandscape{}
	}
	s := settings.DefaultSettings()
	if opts.Settings != nil {
		s = *opts.Settings
	}
	if err := s.Validate(); err != nil {
		if opts.Debugf != nil {
			opts.Debugf("invalid settings, using defaults: %v", err)
		}
		s = settings.DefaultSettings()
	}
	return &Pool{
		frames:   make([]*Transition, s.MaxDepth),
		cells:    cells,
		land:     land,
		settings: s,
		debugf:   opts.Debugf,
	}
}

// Acquire returns a reset transition at the next depth, or nil if the pool is exhausted.
func (p *Pool) Acquire() *Transition {
	if p.depth >= len(p.frames) {
		if p.debugf != nil {
			p.debugf("transition depth limit %d reached", len(p.frames))
		}
		return nil
	}
	t := p.frames[p.depth]
	if t == nil {
		t = &Transition{pool: p}
		p.frames[p.depth] = t
	}
	t.level = p.depth
	t.reset()
	p.depth++
	return t
}

// Release returns the most recently acquired transition to the pool.
func (p *Pool) Release(t *Transition) {
	assert.IsTrue(t.pool == p && t.level == p.depth-1, game.ErrorInternalOutOfOrderRelease, t.level, p.depth)
	t.reset()
	p.depth--
}

// Depth returns the amount of transitions currently acquired.
func (p *Pool) Depth() int {
	return p.depth
}

// Settings returns the settings used by the pool.
func (p *Pool) Settings() settings.Settings {
	return p.settings
}
