package transition

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/stretchr/testify/require"
)

func TestValidateTransitionCommits(t *testing.T) {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0)
	tr.Path.SetCheckPos(tr.Path.CurPos, cell)
	tr.Path.AddOffsetToCheckPos(mgl32.Vec3{0.4, 0, 0})
	candidate := tr.Path.CheckPos

	require.Equal(t, StateOK, tr.ValidateTransition(StateOK))
	require.Equal(t, candidate, tr.Path.CurPos)
	require.Equal(t, Cell(cell), tr.Path.CurCell)
	require.Equal(t, mgl32.Vec3{0.4, 0, 0}, tr.Path.GlobalCurrCenter[0])
}

func TestValidateTransitionCollidedKeepsCurrentPosition(t *testing.T) {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0)
	start := tr.Path.CurPos
	tr.Path.SetCheckPos(start, cell)
	tr.Path.AddOffsetToCheckPos(mgl32.Vec3{0.4, 0, 0})

	require.Equal(t, StateOK, tr.ValidateTransition(StateCollided))
	require.Equal(t, start, tr.Path.CurPos)
	require.Equal(t, start, tr.Path.CheckPos)
	require.Equal(t, mgl32.Vec3{0, 0, 1}, tr.Collision.CollisionNormal)
}

func TestValidateTransitionInvalidIsNotConverted(t *testing.T) {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0)
	start := tr.Path.CurPos
	tr.Path.SetCheckPos(start, cell)
	tr.Path.AddOffsetToCheckPos(mgl32.Vec3{0.4, 0, 0})

	require.Equal(t, StateInvalid, tr.ValidateTransition(StateInvalid))
	require.Equal(t, start, tr.Path.CurPos)
}

func TestValidateTransitionReinstatesLastKnownContact(t *testing.T) {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{1, 0, 0.5}, OnWalkable|InContact)
	obj := tr.ObjectInfo.Object.(*stubObject)
	ground := game.Plane{Normal: mgl32.Vec3{0, 0, 1}}
	tr.InitLastKnownContactPlane(Contact{Plane: ground, CellID: 1})
	tr.Path.SetCheckPos(tr.Path.CurPos, cell)

	tr.ValidateTransition(StateCollided)
	require.Equal(t, 1, obj.stops)
	require.True(t, tr.Collision.ContactPlaneValid)
	require.Equal(t, ground, tr.Collision.ContactPlane)
	require.True(t, tr.ObjectInfo.State.Has(OnWalkable|InContact))
}

func TestStationaryFall(t *testing.T) {
	cell := &stubCell{id: 1, find: alwaysState(StateCollided)}
	pool := NewPool(nil, nil, Options{})
	obj := &stubObject{}
	ground := &Contact{Plane: game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, CellID: 1}

	req := Request{
		Object:                obj,
		State:                 OnWalkable | InContact | Gravity,
		Spheres:               []Sphere{{Radius: 0.5}},
		Cell:                  cell,
		Begin:                 NewPosition(1, mgl32.Vec3{0, 0, 0.5}),
		End:                   NewPosition(1, mgl32.Vec3{0, 0, 0.49}),
		LastKnownContactPlane: ground,
	}

	want := []int{1, 2, 3, 3}
	var res Result
	for tick, frames := range want {
		var err error
		res, err = pool.Resolve(req)
		require.NoError(t, err)
		require.True(t, res.OK)
		require.Equal(t, frames, res.StationaryFall, "tick %d", tick)
		require.Equal(t, req.Begin, res.Position)
		require.True(t, res.State.Has(OnWalkable))

		req.State = res.State
		req.StationaryFall = res.StationaryFall
		req.LastKnownContactPlane = res.LastKnownContactPlane
	}
	require.NotNil(t, res.ContactPlane)
	require.Equal(t, mgl32.Vec3{0, 0, 1}, res.ContactPlane.Plane.Normal)
	require.InDelta(t, 0, res.ContactPlane.Plane.D, 1e-6)
	require.Equal(t, len(want), obj.stops)
	require.Zero(t, pool.Depth())

	// Without a contact to fall back on the object is no longer resting.
	req.State = Gravity
	req.LastKnownContactPlane = nil
	res, err := pool.Resolve(req)
	require.NoError(t, err)
	require.Zero(t, res.StationaryFall)
	require.False(t, res.State.Has(OnWalkable))
}

func TestStationaryFallResetsOnCommittedMove(t *testing.T) {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 1.9}, Gravity)
	tr.InitStationaryFall(2)

	require.True(t, tr.FindTransitionalPosition())
	require.Zero(t, tr.Collision.FramesStationaryFall)
	require.False(t, tr.Collision.ContactPlaneValid)
	require.False(t, tr.Collision.CollidedWithEnvironment)
	require.InDelta(t, 1.9, tr.Path.CurPos.Frame.Origin.Z(), 1e-6)
}

func TestStationaryFallSyntheticPlaneWithoutContact(t *testing.T) {
	cell := &stubCell{id: 1, find: alwaysState(StateCollided)}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 1.9}, OnWalkable|Gravity)
	tr.InitLastKnownContactPlane(Contact{Plane: game.Plane{Normal: mgl32.Vec3{0, 0, 1}, D: -1.5}, CellID: 1})
	tr.InitStationaryFall(2)

	require.True(t, tr.FindTransitionalPosition())
	require.Equal(t, 3, tr.Collision.FramesStationaryFall)
	require.True(t, tr.Collision.CollidedWithEnvironment)
	require.Equal(t, mgl32.Vec3{0, 0, 1}, tr.Collision.CollisionNormal)
	require.InDelta(t, 1.5, -tr.Collision.ContactPlane.D, 1e-6)
}

func TestValidatePlacementTransitionClearsStateWhenSliding(t *testing.T) {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{}, mgl32.Vec3{}, 0)
	tr.Path.SetCheckPos(tr.Path.CurPos, cell)
	tr.Collision.SetCollisionNormal(mgl32.Vec3{0, 1, 0})

	require.Equal(t, StateSlid, tr.ValidatePlacementTransition(StateSlid))
	require.True(t, tr.Collision.CollisionNormalValid)

	tr.Path.PlacementAllowsSliding = true
	require.Equal(t, StateCollided, tr.ValidatePlacementTransition(StateCollided))
	require.False(t, tr.Collision.CollisionNormalValid)

	tr.Path.CheckCell = nil
	require.Equal(t, StateCollided, tr.ValidatePlacementTransition(StateOK))
}
