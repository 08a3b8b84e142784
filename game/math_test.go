package game

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestPlaneDistance(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 2})
	require.InDelta(t, 1, p.Distance(mgl32.Vec3{5, 5, 3}), 1e-6)
	require.InDelta(t, -2, p.Distance(mgl32.Vec3{0, 0, 0}), 1e-6)

	moved := p.Translate(mgl32.Vec3{0, 0, 1})
	require.InDelta(t, 1, moved.Distance(mgl32.Vec3{5, 5, 2}), 1e-6)
}

func TestSnapToPlane(t *testing.T) {
	flat := Plane{Normal: mgl32.Vec3{0, 0, 1}}
	require.Equal(t, mgl32.Vec3{1, 2, 0}, flat.SnapToPlane(mgl32.Vec3{1, 2, 3}))

	wall := Plane{Normal: mgl32.Vec3{1, 0, 0}}
	require.Equal(t, mgl32.Vec3{}, wall.SnapToPlane(mgl32.Vec3{1, 2, 3}))

	n := mgl32.Vec3{0, -1, 1}.Normalize()
	slope := Plane{Normal: n}
	snapped := slope.SnapToPlane(mgl32.Vec3{0, 1, 0})
	require.InDelta(t, 0, n.Dot(snapped), 1e-5)
	require.InDelta(t, 1, snapped.Z(), 1e-5)
}

func TestNormalizeCheckSmall(t *testing.T) {
	v := mgl32.Vec3{0, 3, 4}
	require.False(t, NormalizeCheckSmall(&v))
	require.InDelta(t, 1, v.Len(), 1e-6)

	tiny := mgl32.Vec3{Epsilon / 10, 0, 0}
	require.True(t, NormalizeCheckSmall(&tiny))
}

func TestHeadingVector(t *testing.T) {
	north := HeadingVector(0)
	require.InDelta(t, 1, north.Y(), 1e-6)
	east := HeadingVector(90)
	require.InDelta(t, 1, east.X(), 1e-6)
	require.InDelta(t, 0, east.Y(), 1e-6)
}

func TestSpherePenetration(t *testing.T) {
	box := cube.Box(0, 0, 0, 1, 1, 1)

	tests := []struct {
		name   string
		center mgl32.Vec3
		normal mgl32.Vec3
		depth  float32
	}{
		{"above", mgl32.Vec3{0.5, 0.5, 1.4}, mgl32.Vec3{0, 0, 1}, 0.1},
		{"beside", mgl32.Vec3{1.25, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 0.25},
		{"apart", mgl32.Vec3{3, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, -1.5},
		{"inside", mgl32.Vec3{0.5, 0.5, 0.9}, mgl32.Vec3{0, 0, 1}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, d := SpherePenetration(box, tt.center, 0.5)
			require.InDelta(t, tt.depth, d, 1e-5)
			require.InDelta(t, tt.normal.X(), n.X(), 1e-5)
			require.InDelta(t, tt.normal.Y(), n.Y(), 1e-5)
			require.InDelta(t, tt.normal.Z(), n.Z(), 1e-5)
		})
	}
}
