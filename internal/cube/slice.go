package cube

import (
	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubeterm/internal/geometry"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// FaceSlice is a 1x3 strip on the side of a slice.
//
// Corners run A0, A1, B1, B0 where A lies on the slice's first cap and B on
// its second. Markers[j] splits A0..A1 and Markers[4+j] splits B0..B1.
type FaceSlice struct {
	Corners [4]geometry.Point3D
	Markers [8]geometry.Point3D
	Colors  [3]types.Color
}

// NewFaceSlice creates a strip and derives its markers.
func NewFaceSlice(corners [4]geometry.Point3D, colors [3]types.Color) FaceSlice {
	fs := FaceSlice{Corners: corners, Colors: colors}
	for j := 0; j < 4; j++ {
		t := float64(j) / 3
		fs.Markers[j] = corners[0].Lerp(corners[1], t)
		fs.Markers[4+j] = corners[3].Lerp(corners[2], t)
	}
	return fs
}

// StickerCenter returns the centroid of sticker t.
func (fs FaceSlice) StickerCenter(t int) geometry.Point3D {
	return geometry.Centroid(fs.Markers[t], fs.Markers[t+1], fs.Markers[5+t], fs.Markers[4+t])
}

// Depth returns the distance from the camera to the strip center.
func (fs FaceSlice) Depth() float64 {
	return geometry.Centroid(fs.Corners[:]...).Length()
}

// Drawable returns the strip as a 1x3 sticker quad.
func (fs FaceSlice) Drawable() screen.Drawable {
	return screen.Drawable{
		Rows:    1,
		Cols:    3,
		Markers: append([]geometry.Point3D(nil), fs.Markers[:]...),
		Colors:  append([]types.Color(nil), fs.Colors[:]...),
		Depth:   fs.Depth(),
	}
}

// CubeSlice is one layer of the solid along an axis: two caps and four
// side strips that rotate together.
type CubeSlice struct {
	Axis   types.Axis
	Order  types.Order
	Caps   [2]Face
	Strips [4]FaceSlice
	angle  float64
}

// Rotate turns the slice by angle radians about the line through both cap
// centers, directed from the first cap to the second.
func (s *CubeSlice) Rotate(angle float64) {
	center := s.Caps[0].Center()
	axis := s.Caps[1].Center().Sub(center)
	s.each(func(p *geometry.Point3D) {
		*p = geometry.RotateAbout(*p, center, axis, angle)
	})
	s.angle += angle
}

// each visits every point the slice owns.
func (s *CubeSlice) each(fn func(p *geometry.Point3D)) {
	for i := range s.Caps {
		for j := range s.Caps[i].Corners {
			fn(&s.Caps[i].Corners[j])
		}
		for j := range s.Caps[i].Markers {
			fn(&s.Caps[i].Markers[j])
		}
	}
	for i := range s.Strips {
		for j := range s.Strips[i].Corners {
			fn(&s.Strips[i].Corners[j])
		}
		for j := range s.Strips[i].Markers {
			fn(&s.Strips[i].Markers[j])
		}
	}
}

// Transform moves the whole slice rigidly by q about center. It is used to
// follow view rotations and does not count towards Angle.
func (s *CubeSlice) Transform(center geometry.Point3D, q quaternion.Quaternion) {
	for i := range s.Caps {
		s.Caps[i].rotate(center, q)
	}
	for i := range s.Strips {
		geometry.RotateAll(s.Strips[i].Corners[:], center, q)
		geometry.RotateAll(s.Strips[i].Markers[:], center, q)
	}
}

// Angle returns the total rotation applied so far.
func (s *CubeSlice) Angle() float64 {
	return s.angle
}

// Points returns every point the slice owns.
func (s *CubeSlice) Points() []geometry.Point3D {
	points := make([]geometry.Point3D, 0, 2*(4+16)+4*(4+8))
	for _, c := range s.Caps {
		points = append(points, c.Corners[:]...)
		points = append(points, c.Markers[:]...)
	}
	for _, fs := range s.Strips {
		points = append(points, fs.Corners[:]...)
		points = append(points, fs.Markers[:]...)
	}
	return points
}

// Depth returns the mean distance of caps and strips from the camera.
func (s *CubeSlice) Depth() float64 {
	sum := s.Caps[0].Depth() + s.Caps[1].Depth()
	for _, fs := range s.Strips {
		sum += fs.Depth()
	}
	return sum / 6
}

// DrawFaces returns both caps and all four strips.
func (s *CubeSlice) DrawFaces() []screen.Drawable {
	out := make([]screen.Drawable, 0, 6)
	for _, c := range s.Caps {
		out = append(out, c.Drawable())
	}
	for _, fs := range s.Strips {
		out = append(out, fs.Drawable())
	}
	return out
}
