package bezier

import "slices"

// Decomposer expresses a point of a Bézier curve as a weighted sum of the
// vectors from an origin to each control point:
//
//	B(t) − origin = Σ wᵢ(t) · (Pᵢ − origin)
//
// where wᵢ are the Bernstein weights. The identity holds for any origin
// because the weights sum to one.
type Decomposer struct {
	points    []Point
	origin    Point
	hasOrigin bool
}

// NewDecomposer returns a Decomposer for a copy of pts with the origin at
// their centroid.
func NewDecomposer(pts []Point) *Decomposer {
	d := &Decomposer{}
	d.SetControlPoints(pts)
	return d
}

// SetControlPoints replaces the control points with a copy of pts. An
// origin set with [Decomposer.SetOrigin] is kept; otherwise the origin
// follows the centroid of the new points.
func (d *Decomposer) SetControlPoints(pts []Point) {
	d.points = slices.Clone(pts)
}

// Origin returns the current origin: the point passed to SetOrigin, or the
// centroid of the control points.
func (d *Decomposer) Origin() Point {
	if d.hasOrigin {
		return d.origin
	}
	return Centroid(d.points)
}

// SetOrigin pins the origin to p.
func (d *Decomposer) SetOrigin(p Point) {
	d.origin = p
	d.hasOrigin = true
}

// ResetOrigin makes the origin follow the centroid of the control points
// again.
func (d *Decomposer) ResetOrigin() {
	d.origin = Point{}
	d.hasOrigin = false
}

// Weights returns the Bernstein weights of every control point at t,
// normalized so that they sum to exactly one up to rounding. A single
// control point has weight 1.
func (d *Decomposer) Weights(t float64) ([]float64, error) {
	if err := needPoints("Weights", 1, len(d.points)); err != nil {
		return nil, err
	}
	return d.weights(clampUnit(t)), nil
}

func (d *Decomposer) weights(t float64) []float64 {
	n := len(d.points) - 1
	w := make([]float64, len(d.points))
	var sum float64
	for i := range w {
		w[i] = Basis(n, i, t)
		sum += w[i]
	}
	// At least one basis polynomial is positive on [0, 1].
	if sum > 0 {
		for i := range w {
			w[i] /= sum
		}
	}
	return w
}

// Vectors returns, for every control point Pᵢ, the vector (Pᵢ − origin)
// scaled by its weight at t. Their sum is Point(t) − origin.
func (d *Decomposer) Vectors(origin Point, t float64) ([]Vec2, error) {
	if err := needPoints("Vectors", 1, len(d.points)); err != nil {
		return nil, err
	}
	w := d.weights(clampUnit(t))
	out := make([]Vec2, len(d.points))
	for i, p := range d.points {
		out[i] = p.Sub(origin).Mul(w[i])
	}
	return out, nil
}

// Chain returns the running sums of [Decomposer.Vectors] placed head to
// tail, starting at origin. The result has one more element than there are
// control points, and its last element is the curve point at t.
func (d *Decomposer) Chain(origin Point, t float64) ([]Point, error) {
	vs, err := d.Vectors(origin, t)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(vs)+1)
	cur := origin
	out = append(out, cur)
	for _, v := range vs {
		cur = cur.Translate(v)
		out = append(out, cur)
	}
	return out, nil
}
