package geometry

// Point2D is a pixel position. Y grows downwards.
type Point2D struct {
	X, Y int
}

// Triangle is a screen space triangle.
type Triangle [3]Point2D

// area2 returns twice the unsigned area of the triangle p1 p2 p3.
func area2(p1, p2, p3 Point2D) int {
	a := p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y)
	if a < 0 {
		return -a
	}
	return a
}

// Area2 returns twice the area of t.
func (t Triangle) Area2() int {
	return area2(t[0], t[1], t[2])
}

// Degenerate reports whether the triangle has no area.
func (t Triangle) Degenerate() bool {
	return t.Area2() == 0
}

// Contains reports whether p lies inside or on the edge of t. The sub
// triangle areas may exceed the total by one to close rounding gaps
// between neighbouring triangles. A degenerate triangle contains nothing.
func (t Triangle) Contains(p Point2D) bool {
	total := t.Area2()
	if total == 0 {
		return false
	}
	a1 := area2(p, t[1], t[2])
	a2 := area2(t[0], p, t[2])
	a3 := area2(t[0], t[1], p)
	return a1+a2+a3 <= total+1
}

// Bounds returns the inclusive bounding box of t.
func (t Triangle) Bounds() (lo, hi Point2D) {
	lo, hi = t[0], t[0]
	for _, p := range t[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}
