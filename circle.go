package bezier

import (
	"iter"
	"math"
)

// Circle is a circle, such as the osculating circle of a curve.
type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) IsInf() bool {
	return c.Center.IsInf() || math.IsInf(c.Radius, 0)
}

func (c Circle) IsNaN() bool {
	return c.Center.IsNaN() || math.IsNaN(c.Radius)
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	return Rect{
		X0: c.Center.X - r,
		Y0: c.Center.Y - r,
		X1: c.Center.X + r,
		Y1: c.Center.Y + r,
	}
}

// Points yields n+1 points around the circle, starting and ending at
// angle 0, so that consecutive points form a closed polygon. n less than 3
// is treated as 3.
func (c Circle) Points(n int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		n := max(n, 3)
		r := math.Abs(c.Radius)
		for i := range n + 1 {
			th := 2 * math.Pi * float64(i%n) / float64(n)
			sin, cos := math.Sincos(th)
			if !yield(Pt(c.Center.X+r*cos, c.Center.Y+r*sin)) {
				return
			}
		}
	}
}
