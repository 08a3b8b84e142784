package worker

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/transition"
	"github.com/oomph-ac/motion/world"
	"github.com/stretchr/testify/require"
)

type body struct{}

func (body) StopVelocity() {}

type panicCell struct{}

func (panicCell) ID() uint32 { return 1 }

func (panicCell) FindCollisions(*transition.Transition) transition.State {
	panic("broken geometry")
}

func newGround() *world.World {
	w := world.New(world.DefaultCellSize, nil)
	w.AddBox(cube.Box(-30, -30, -1, 60, 60, 0))
	return w
}

func walkRequest(t *testing.T, w *world.World, from, to mgl32.Vec3) transition.Request {
	t.Helper()
	begin, cell, ok := w.Position(from)
	require.True(t, ok)
	return transition.Request{
		Object:  body{},
		Spheres: []transition.Sphere{{Center: mgl32.Vec3{0, 0, 0.5}, Radius: 0.5}},
		Cell:    cell,
		Begin:   begin,
		End:     transition.NewPosition(begin.CellID, to.Sub(w.Origin(begin.CellID))),
	}
}

func TestWorkersSubmit(t *testing.T) {
	w := NewWorkers()
	require.False(t, w.Submit(func() {}), "no workers were started")

	w.Grow(2)
	require.Equal(t, min(2, runtime.NumCPU()), w.Running())
	w.Grow(1)
	require.Equal(t, min(2, runtime.NumCPU()), w.Running())
	w.Grow(runtime.NumCPU() + 4)
	require.Equal(t, runtime.NumCPU(), w.Running())

	var n atomic.Int32
	done := make(chan struct{})
	// A panicking function must not take its worker down with it.
	require.True(t, w.Submit(func() { panic("job failed") }))
	for i := 0; i < 10; i++ {
		require.True(t, w.Submit(func() {
			if n.Add(1) == 10 {
				close(done)
			}
		}))
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("submitted functions did not run")
	}

	w.Stop()
	w.Stop()
	require.False(t, w.Submit(func() {}))
}

func TestRegionResolve(t *testing.T) {
	w := newGround()
	r := NewRegion("spawn", w, w, Options{})
	defer r.Close()
	require.Equal(t, "spawn", r.Name())

	res, err := r.Resolve(context.Background(), walkRequest(t, w, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{2, 1, 0}))
	require.NoError(t, err)
	require.True(t, res.OK)
	require.InDelta(t, 2, w.WorldPosition(res.Position).X(), 1e-4)
}

func TestRegionRecoversFromPanic(t *testing.T) {
	r := NewRegion("broken", nil, nil, Options{})
	defer r.Close()

	req := transition.Request{
		Object:  body{},
		Spheres: []transition.Sphere{{Radius: 0.5}},
		Cell:    panicCell{},
		Begin:   transition.NewPosition(1, mgl32.Vec3{}),
		End:     transition.NewPosition(1, mgl32.Vec3{1, 0, 0}),
	}
	_, err := r.Resolve(context.Background(), req)
	require.ErrorIs(t, err, oerror.ErrPanicked)

	// The region keeps serving requests after a panic.
	_, err = r.Resolve(context.Background(), transition.Request{})
	require.ErrorIs(t, err, oerror.ErrNilObject)
}

func TestRegionClosed(t *testing.T) {
	w := newGround()
	r := NewRegion("closed", w, w, Options{})
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err := r.Resolve(context.Background(), walkRequest(t, w, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}))
	require.ErrorIs(t, err, oerror.ErrRegionClosed)
}

func TestRegionContextDone(t *testing.T) {
	w := newGround()
	r := NewRegion("ctx", w, w, Options{})
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, walkRequest(t, w, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}))
	if err != nil {
		require.True(t, errors.Is(err, context.Canceled))
	}
}

func TestResolveBatchKeepsGoing(t *testing.T) {
	w := newGround()
	r := NewRegion("batch", w, w, Options{})
	defer r.Close()

	reqs := []transition.Request{
		walkRequest(t, w, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}),
		{},
		walkRequest(t, w, mgl32.Vec3{5, 5, 0}, mgl32.Vec3{5, 6, 0}),
	}
	results, err := r.ResolveBatch(context.Background(), reqs)
	require.ErrorIs(t, err, oerror.ErrNilObject)
	require.Len(t, results, 3)
	require.True(t, results[0].OK)
	require.False(t, results[1].OK)
	require.True(t, results[2].OK)
}

func TestManagerTick(t *testing.T) {
	m := NewManager(Options{})
	defer m.Close()

	north, south := newGround(), newGround()
	_, err := m.AddRegion("north", north, north)
	require.NoError(t, err)
	_, err = m.AddRegion("south", south, south)
	require.NoError(t, err)
	require.Equal(t, []string{"north", "south"}, m.Regions())
	require.Equal(t, min(2, runtime.NumCPU()), m.workers.Running())

	results, err := m.Tick(context.Background(), map[string][]transition.Request{
		"north": {walkRequest(t, north, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})},
		"south": {walkRequest(t, south, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results["north"][0].OK)
	require.True(t, results["south"][0].OK)
	require.InDelta(t, 1, south.WorldPosition(results["south"][0].Position).Y(), 1e-4)

	_, err = m.Tick(context.Background(), map[string][]transition.Request{"east": {{}}})
	require.ErrorIs(t, err, oerror.ErrNoCell)

	m.RemoveRegion("south")
	_, ok := m.Region("south")
	require.False(t, ok)
}

func TestManagerClosed(t *testing.T) {
	m := NewManager(Options{})
	w := newGround()
	r, err := m.AddRegion("a", w, w)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	_, err = r.Resolve(context.Background(), walkRequest(t, w, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}))
	require.ErrorIs(t, err, oerror.ErrRegionClosed)

	_, err = m.AddRegion("b", w, w)
	require.ErrorIs(t, err, oerror.ErrRegionClosed)
	require.Empty(t, m.Regions())
}
