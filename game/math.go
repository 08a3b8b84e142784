package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is an infinite plane satisfying Normal·p + D = 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// NewPlane returns the plane with the given normal passing through point.
func NewPlane(normal, point mgl32.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// Distance returns the signed distance of point from the plane.
func (p Plane) Distance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// SnapToPlane keeps the horizontal part of offset and replaces its Z so that the result lies in
// the plane. Planes that are (close to) vertical yield a zero offset.
func (p Plane) SnapToPlane(offset mgl32.Vec3) mgl32.Vec3 {
	if math32.Abs(p.Normal.Z()) <= Epsilon {
		return mgl32.Vec3{}
	}
	offset[2] = -(offset.X()*p.Normal.X() + offset.Y()*p.Normal.Y()) / p.Normal.Z()
	return offset
}

// Translate returns the plane expressed in a frame whose origin is moved by offset, so that a point
// p in the old frame is p-offset in the new one.
func (p Plane) Translate(offset mgl32.Vec3) Plane {
	return Plane{Normal: p.Normal, D: p.D + p.Normal.Dot(offset)}
}

// IsZero reports whether every component of v is within Epsilon of zero.
func IsZero(v mgl32.Vec3) bool {
	return math32.Abs(v[0]) < Epsilon && math32.Abs(v[1]) < Epsilon && math32.Abs(v[2]) < Epsilon
}

// NormalizeCheckSmall normalizes v in place and reports true if v was too short to normalize.
func NormalizeCheckSmall(v *mgl32.Vec3) bool {
	l := v.Len()
	if l < Epsilon {
		return true
	}
	*v = v.Mul(1 / l)
	return false
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// HeadingVector returns the horizontal unit vector for a heading in degrees, where 0 faces +Y and
// headings increase clockwise.
func HeadingVector(degrees float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(degrees)
	return mgl32.Vec3{math32.Sin(rad), math32.Cos(rad), 0}
}
