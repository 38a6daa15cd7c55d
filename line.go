package bezier

// Line is a line segment from P0 to P1. The constructor describes its
// scaffold as Lines.
type Line struct {
	P0 Point
	P1 Point
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}
