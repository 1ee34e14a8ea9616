// Package geometry provides the 3D points, quaternion rotations and 2D
// triangles used to model and rasterize the puzzle.
package geometry

import "math"

// Point3D represents a point or direction in 3D space.
// X grows to the right, Y grows up and Z grows away from the viewer.
type Point3D struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point3D) Scale(s float64) Point3D {
	return Point3D{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product.
func (p Point3D) Dot(q Point3D) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Length returns the Euclidean length.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// Normalize returns p scaled to unit length. The zero vector is returned
// unchanged.
func (p Point3D) Normalize() Point3D {
	l := p.Length()
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// Lerp returns the point a fraction t of the way from p to q.
func (p Point3D) Lerp(q Point3D, t float64) Point3D {
	return p.Add(q.Sub(p).Scale(t))
}

// Distance returns the distance between p and q.
func (p Point3D) Distance(q Point3D) float64 {
	return p.Sub(q).Length()
}

// Centroid returns the mean of points. It returns the origin for no points.
func Centroid(points ...Point3D) Point3D {
	var sum Point3D
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}
