package bezier

import (
	"fmt"
	"slices"
)

// DerivativeVector is a derivative of the curve at some parameter,
// together with its magnitude.
type DerivativeVector struct {
	X         float64
	Y         float64
	Magnitude float64
}

func newDerivativeVector(v Vec2) DerivativeVector {
	return DerivativeVector{X: v.X, Y: v.Y, Magnitude: v.Hypot()}
}

// Vec returns the derivative as a vector.
func (d DerivativeVector) Vec() Vec2 {
	return Vec2{X: d.X, Y: d.Y}
}

func (d DerivativeVector) String() string {
	return fmt.Sprintf("⟨%g, %g⟩ |%g|", d.X, d.Y, d.Magnitude)
}

// Evaluator evaluates the Bézier curve of degree len(points)−1 defined by a
// sequence of control points, and its first three derivatives.
//
// The zero value has no control points. An Evaluator is not safe for
// concurrent use; see [Engine] for a serialized wrapper.
type Evaluator struct {
	points []Point
}

// NewEvaluator returns an Evaluator for a copy of pts.
func NewEvaluator(pts []Point) *Evaluator {
	ev := &Evaluator{}
	ev.SetControlPoints(pts)
	return ev
}

// SetControlPoints replaces the control points with a copy of pts. Later
// changes to pts do not affect the evaluator.
func (ev *Evaluator) SetControlPoints(pts []Point) {
	ev.points = slices.Clone(pts)
}

// ControlPoints returns a copy of the control points.
func (ev *Evaluator) ControlPoints() []Point {
	return slices.Clone(ev.points)
}

// Len returns the number of control points.
func (ev *Evaluator) Len() int { return len(ev.points) }

// Degree returns the degree of the curve, which is one less than the number
// of control points. It is -1 when there are no control points.
func (ev *Evaluator) Degree() int { return len(ev.points) - 1 }

// weighted returns Σ pᵢ · BasisDerivative(n, i, t, order).
func (ev *Evaluator) weighted(t float64, order int) Vec2 {
	n := len(ev.points) - 1
	t = clampUnit(t)
	var sum Vec2
	for i, p := range ev.points {
		w := BasisDerivative(n, i, t, order)
		sum.X += p.X * w
		sum.Y += p.Y * w
	}
	return sum
}

// Point returns the point on the curve at parameter t, which is clamped to
// [0, 1]. It needs at least two control points.
func (ev *Evaluator) Point(t float64) (Point, error) {
	if err := needPoints("Point", 2, len(ev.points)); err != nil {
		return Point{}, err
	}
	return Point(ev.weighted(t, 0)), nil
}

// Velocity returns the first derivative of the curve at t. It needs at
// least two control points.
func (ev *Evaluator) Velocity(t float64) (DerivativeVector, error) {
	if err := needPoints("Velocity", 2, len(ev.points)); err != nil {
		return DerivativeVector{}, err
	}
	return newDerivativeVector(ev.weighted(t, 1)), nil
}

// Acceleration returns the second derivative of the curve at t.
//
// A curve with exactly two control points is a straight line traversed at
// constant speed; its acceleration is reported as the zero vector rather
// than an error. Fewer than two control points is an error.
func (ev *Evaluator) Acceleration(t float64) (DerivativeVector, error) {
	if err := needPoints("Acceleration", 2, len(ev.points)); err != nil {
		return DerivativeVector{}, err
	}
	if len(ev.points) < 3 {
		return DerivativeVector{}, nil
	}
	return newDerivativeVector(ev.weighted(t, 2)), nil
}

// Jerk returns the third derivative of the curve at t. Like
// [Evaluator.Acceleration], it returns the zero vector for curves of too low
// degree (fewer than four control points).
func (ev *Evaluator) Jerk(t float64) (DerivativeVector, error) {
	if err := needPoints("Jerk", 2, len(ev.points)); err != nil {
		return DerivativeVector{}, err
	}
	if len(ev.points) < 4 {
		return DerivativeVector{}, nil
	}
	return newDerivativeVector(ev.weighted(t, 3)), nil
}

// Polyline returns steps+1 points of the curve at evenly spaced parameters
// from 0 to 1 inclusive. steps less than 1 is treated as 1.
func (ev *Evaluator) Polyline(steps int) ([]Point, error) {
	if err := needPoints("Polyline", 2, len(ev.points)); err != nil {
		return nil, err
	}
	steps = max(steps, 1)
	out := make([]Point, steps+1)
	for i := range out {
		out[i] = Point(ev.weighted(float64(i)/float64(steps), 0))
	}
	return out, nil
}
