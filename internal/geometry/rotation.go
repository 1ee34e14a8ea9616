package geometry

import (
	"math"

	"github.com/westphae/quaternion"
)

// Identity is the rotation that leaves every point in place.
var Identity = quaternion.Quaternion{W: 1}

// AxisAngle returns the rotation by angle radians about axis, following the
// right-hand rule.
func AxisAngle(axis Point3D, angle float64) quaternion.Quaternion {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return quaternion.Quaternion{W: math.Cos(angle / 2), X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// RotationX returns a rotation about the world X axis.
func RotationX(angle float64) quaternion.Quaternion {
	return AxisAngle(Point3D{X: 1}, angle)
}

// RotationY returns a rotation about the world Y axis.
func RotationY(angle float64) quaternion.Quaternion {
	return AxisAngle(Point3D{Y: 1}, angle)
}

// RotationZ returns a rotation about the world Z axis.
func RotationZ(angle float64) quaternion.Quaternion {
	return AxisAngle(Point3D{Z: 1}, angle)
}

// Compose returns the rotation that applies first and then second.
func Compose(first, second quaternion.Quaternion) quaternion.Quaternion {
	return quaternion.Prod(second, first).Unit()
}

// Rotate rotates p about the origin.
func Rotate(q quaternion.Quaternion, p Point3D) Point3D {
	r := q.RotateVec3(quaternion.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	return Point3D{r.X, r.Y, r.Z}
}

// RotateAbout rotates p by angle radians about the line through center with
// direction axis.
func RotateAbout(p, center, axis Point3D, angle float64) Point3D {
	return Rotate(AxisAngle(axis, angle), p.Sub(center)).Add(center)
}

// RotateAll rotates every point in place about center.
func RotateAll(points []Point3D, center Point3D, q quaternion.Quaternion) {
	for i, p := range points {
		points[i] = Rotate(q, p.Sub(center)).Add(center)
	}
}
