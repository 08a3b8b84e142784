package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// ClosestPoint returns the point inside of the bounding box closest to v.
func ClosestPoint(b cube.BBox, v mgl32.Vec3) mgl32.Vec3 {
	min, max := b.Min(), b.Max()
	return mgl32.Vec3{
		math32.Max(min.X(), math32.Min(v.X(), max.X())),
		math32.Max(min.Y(), math32.Min(v.Y(), max.Y())),
		math32.Max(min.Z(), math32.Min(v.Z(), max.Z())),
	}
}

// SpherePenetration calculates how far a sphere sinks into a bounding box. The returned normal
// points out of the box towards the sphere centre, and depth is positive when the two overlap.
func SpherePenetration(b cube.BBox, center mgl32.Vec3, radius float32) (normal mgl32.Vec3, depth float32) {
	closest := ClosestPoint(b, center)
	delta := center.Sub(closest)
	if dist := delta.Len(); dist > Epsilon {
		return delta.Mul(1 / dist), radius - dist
	}

	// The centre is inside of the box, push out through the nearest face.
	min, max := b.Min(), b.Max()
	faces := [6]struct {
		n mgl32.Vec3
		d float32
	}{
		{mgl32.Vec3{0, 0, 1}, max.Z() - center.Z()},
		{mgl32.Vec3{0, 0, -1}, center.Z() - min.Z()},
		{mgl32.Vec3{1, 0, 0}, max.X() - center.X()},
		{mgl32.Vec3{-1, 0, 0}, center.X() - min.X()},
		{mgl32.Vec3{0, 1, 0}, max.Y() - center.Y()},
		{mgl32.Vec3{0, -1, 0}, center.Y() - min.Y()},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.d < best.d {
			best = f
		}
	}
	return best.n, radius + best.d
}

// FootprintContains checks if the XY projection of the bounding box contains v.
func FootprintContains(b cube.BBox, v mgl32.Vec3) bool {
	min, max := b.Min(), b.Max()
	return v.X() >= min.X() && v.X() <= max.X() && v.Y() >= min.Y() && v.Y() <= max.Y()
}
