package transition

import (
	"github.com/go-gl/mathgl/mgl32"
)

type stubObject struct {
	stops int
}

func (o *stubObject) StopVelocity() { o.stops++ }

// stubCell is a cell whose collision test is supplied by the test.
type stubCell struct {
	id    uint32
	calls int
	find  func(t *Transition) State
}

func (c *stubCell) ID() uint32 { return c.id }

func (c *stubCell) FindCollisions(t *Transition) State {
	c.calls++
	if c.find == nil {
		return StateOK
	}
	return c.find(t)
}

func alwaysState(s State) func(*Transition) State {
	return func(*Transition) State { return s }
}

// newTestTransition acquires a transition from a fresh pool and seeds it with a single sphere of the
// given radius moving from begin to end inside of cell.
func newTestTransition(cell Cell, radius float32, begin, end mgl32.Vec3, state ObjectState) (*Pool, *Transition) {
	pool := NewPool(nil, nil, Options{})
	t := pool.Acquire()
	t.InitObject(&stubObject{}, state)
	t.InitSphere([]Sphere{{Radius: radius}}, 1)
	b := NewPosition(1, begin)
	t.InitPath(cell, &b, NewPosition(1, end))
	return pool, t
}

func vecInDelta(a, b mgl32.Vec3, delta float32) bool {
	return a.Sub(b).Len() <= delta
}
