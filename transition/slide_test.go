package transition

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/stretchr/testify/require"
)

// movedTransition returns a transition whose candidate position is offset from its current one.
func movedTransition(offset mgl32.Vec3, state ObjectState) *Transition {
	cell := &stubCell{id: 1}
	_, tr := newTestTransition(cell, 0.5, mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0, 0, 0.5}.Add(offset), state)
	tr.Path.SetCheckPos(tr.Path.CurPos, cell)
	tr.Path.AddOffsetToCheckPos(offset)
	return tr
}

func TestCliffSlidePerpendicularPlanes(t *testing.T) {
	for _, offset := range []mgl32.Vec3{{}, {0.2, 0.1, 0}, {-0.3, 0, -0.1}} {
		tr := movedTransition(offset, OnWalkable)
		tr.InitLastKnownContactPlane(Contact{Plane: game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, CellID: 1})

		state := tr.CliffSlide(game.Plane{Normal: mgl32.Vec3{1, 0, 0}})
		require.Equal(t, StateAdjusted, state)
		require.True(t, tr.Collision.CollisionNormalValid)
		require.Zero(t, tr.Collision.CollisionNormal.Z())
		require.InDelta(t, 1, tr.Collision.CollisionNormal.Len(), 1e-5)
	}
}

func TestCliffSlideParallelPlanes(t *testing.T) {
	tr := movedTransition(mgl32.Vec3{0.1, 0, 0}, OnWalkable)
	up := game.Plane{Normal: mgl32.Vec3{0, 0, 1}}
	tr.InitLastKnownContactPlane(Contact{Plane: up, CellID: 1})
	before := tr.Path.CheckPos

	require.Equal(t, StateAdjusted, tr.CliffSlide(up))
	require.False(t, tr.Collision.CollisionNormalValid)
	require.Equal(t, before, tr.Path.CheckPos)
}

func TestSlideSphere(t *testing.T) {
	t.Run("zero normal backs off halfway", func(t *testing.T) {
		tr := movedTransition(mgl32.Vec3{0.4, 0, 0}, 0)
		require.Equal(t, StateAdjusted, tr.SlideSphere(mgl32.Vec3{}, tr.Path.GlobalCurrCenter[0]))
		require.InDelta(t, 0.2, tr.Path.CheckPos.Frame.Origin.X(), 1e-6)
	})
	t.Run("wall without ground removes the normal component", func(t *testing.T) {
		tr := movedTransition(mgl32.Vec3{0.3, 0.4, 0}, 0)
		require.Equal(t, StateSlid, tr.SlideSphere(mgl32.Vec3{-1, 0, 0}, tr.Path.GlobalCurrCenter[0]))
		require.InDelta(t, 0, tr.Path.CheckPos.Frame.Origin.X(), 1e-6)
		require.InDelta(t, 0.4, tr.Path.CheckPos.Frame.Origin.Y(), 1e-6)
		require.Equal(t, mgl32.Vec3{-1, 0, 0}, tr.Collision.CollisionNormal)
	})
	t.Run("wall on ground slides along the crease", func(t *testing.T) {
		tr := movedTransition(mgl32.Vec3{0.3, 0.4, 0.1}, 0)
		tr.Collision.SetContactPlane(game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, 1, false)
		require.Equal(t, StateSlid, tr.SlideSphere(mgl32.Vec3{-1, 0, 0}, tr.Path.GlobalCurrCenter[0]))
		require.True(t, vecInDelta(mgl32.Vec3{0, 0.4, 0.5}, tr.Path.CheckPos.Frame.Origin, 1e-5))
	})
	t.Run("head on collision along the crease stops", func(t *testing.T) {
		tr := movedTransition(mgl32.Vec3{0.3, 0, 0}, 0)
		tr.Collision.SetContactPlane(game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, 1, false)
		require.Equal(t, StateCollided, tr.SlideSphere(mgl32.Vec3{-1, 0, 0}, tr.Path.GlobalCurrCenter[0]))
	})
}

func TestStepUpSlide(t *testing.T) {
	tr := movedTransition(mgl32.Vec3{0.3, 0.4, 0}, 0)
	tr.Path.StepUp = true
	tr.Path.StepUpNormal = mgl32.Vec3{-1, 0, 0}
	tr.Collision.SetContactPlane(game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, 1, false)

	require.Equal(t, StateSlid, tr.StepUpSlide())
	require.False(t, tr.Path.StepUp)
	require.False(t, tr.Collision.ContactPlaneValid)
}

// edge is a walkable whose only edge runs along x=0, the surface covering x<0.
type edge struct{}

func (edge) Supports(center mgl32.Vec3, _ float32) bool { return center.X() < 0 }

func (edge) CrossedEdge(center mgl32.Vec3) (mgl32.Vec3, bool) {
	if center.X() < 0 {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{1, 0, 0}, true
}

func TestPrecipiceSlide(t *testing.T) {
	tr := movedTransition(mgl32.Vec3{0.3, 0.4, 0}, OnWalkable|EdgeSlide)
	tr.InitLastKnownContactPlane(Contact{Plane: game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, CellID: 1})
	tr.Path.SetWalkable(edge{}, 1)

	require.Equal(t, StateSlid, tr.PrecipiceSlide())
	require.Nil(t, tr.Path.Walkable)
	require.InDelta(t, 0, tr.Path.CheckPos.Frame.Origin.X(), 1e-6)
	require.InDelta(t, 0.4, tr.Path.CheckPos.Frame.Origin.Y(), 1e-6)

	tr = movedTransition(mgl32.Vec3{-0.3, 0, 0}, OnWalkable|EdgeSlide)
	tr.Path.SetWalkable(edge{}, 1)
	require.Equal(t, StateCollided, tr.PrecipiceSlide())
}

func TestClassifyEdgeSlide(t *testing.T) {
	steep := game.Plane{Normal: mgl32.Vec3{0.9, 0, 0.1}.Normalize()}
	flat := game.Plane{Normal: mgl32.Vec3{0, 0, 1}}

	tests := []struct {
		name     string
		state    ObjectState
		contact  *game.Plane
		walkable bool
		want     edgeSlideCase
	}{
		{"not walking", EdgeSlide, &flat, true, edgeSlideAccept},
		{"edge slide disabled", OnWalkable, &steep, true, edgeSlideAccept},
		{"steep landing", OnWalkable | EdgeSlide, &steep, true, edgeSlideCliff},
		{"known ledge", OnWalkable | EdgeSlide, nil, true, edgeSlidePrecipice},
		{"walkable contact", OnWalkable | EdgeSlide, &flat, false, edgeSlideContact},
		{"nothing known", OnWalkable | EdgeSlide, nil, false, edgeSlideFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := movedTransition(mgl32.Vec3{0.1, 0, 0}, tt.state)
			if tt.contact != nil {
				tr.Collision.SetContactPlane(*tt.contact, 1, false)
			}
			if tt.walkable {
				tr.Path.SetWalkable(edge{}, 1)
			}
			require.Equal(t, tt.want, tr.classifyEdgeSlide(game.FloorZ))
		})
	}
}

func TestEdgeSlideAcceptRestoresCandidate(t *testing.T) {
	tr := movedTransition(mgl32.Vec3{0.2, 0, 0}, 0)
	tr.Path.SaveCheckPos()
	saved := tr.Path.CheckPos
	tr.Path.AddOffsetToCheckPos(mgl32.Vec3{0, 0, -0.04})
	tr.Collision.SetContactPlane(game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, 1, false)

	done, state := tr.EdgeSlide(0.04, game.FloorZ)
	require.True(t, done)
	require.Equal(t, StateOK, state)
	require.Equal(t, saved, tr.Path.CheckPos)
	require.False(t, tr.Collision.ContactPlaneValid)
}

func TestEdgeSlideCliffSlidesFromRestoredCandidate(t *testing.T) {
	tr := movedTransition(mgl32.Vec3{0.1, 0.2, 0}, OnWalkable|EdgeSlide)
	tr.InitLastKnownContactPlane(Contact{Plane: game.Plane{Normal: mgl32.Vec3{0, 0, 1}}, CellID: 1})
	tr.Path.SaveCheckPos()
	saved := tr.Path.CheckPos.Frame.Origin

	// The step-down landed on a slope too steep to walk on.
	tr.Path.AddOffsetToCheckPos(mgl32.Vec3{0, 0, -0.04})
	tr.Collision.SetContactPlane(game.Plane{Normal: mgl32.Vec3{0.9, 0, 0.1}.Normalize()}, 1, false)
	tr.Path.SetWalkable(edge{}, 1)

	done, state := tr.EdgeSlide(0.04, game.FloorZ)
	require.False(t, done)
	require.Equal(t, StateAdjusted, state)
	require.False(t, tr.Collision.ContactPlaneValid)
	require.Nil(t, tr.Path.Walkable)

	// The slide removes the motion into the slope from the candidate before the step-down.
	require.True(t, vecInDelta(saved.Add(mgl32.Vec3{-0.1, 0, 0}), tr.Path.CheckPos.Frame.Origin, 1e-5))
	require.True(t, vecInDelta(mgl32.Vec3{1, 0, 0}, tr.Collision.CollisionNormal, 1e-5))
}

func TestEdgeSlideFallbackWithoutGround(t *testing.T) {
	tr := movedTransition(mgl32.Vec3{0.2, 0, 0}, OnWalkable|EdgeSlide)
	tr.Path.SaveCheckPos()

	done, state := tr.EdgeSlide(0.04, game.FloorZ)
	require.True(t, done)
	require.Equal(t, StateCollided, state)
}
