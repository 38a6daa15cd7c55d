package bezier

import "math"

const (
	// RadiusSentinel is the radius reported by [Analyzer.Radius] where the
	// curvature is zero, NaN or infinite. It stands in for an infinite
	// radius so that callers never see non-finite values.
	RadiusSentinel = 10000.0

	// DefaultMaxDisplayRadius and DefaultMinDisplayRadius bound the radius
	// used to place the osculating center when the corresponding
	// [Analyzer] fields are zero.
	DefaultMaxDisplayRadius = 500.0
	DefaultMinDisplayRadius = 5.0
)

// CurvatureSample is the local curvature of a curve at parameter T.
type CurvatureSample struct {
	T float64
	// Curvature is signed: positive where the curve turns from +x toward +y
	// (velocity × acceleration > 0).
	Curvature float64
	// Radius is 1/|Curvature| carrying the sign of Curvature, or
	// RadiusSentinel.
	Radius float64
	// Center is the center of the osculating circle, as returned by
	// [Analyzer.OsculatingCenter].
	Center Point
}

// Analyzer computes curvature and the osculating circle of a Bézier curve.
// It embeds an [Evaluator] holding its own copy of the control points.
type Analyzer struct {
	Evaluator

	// MaxDisplayRadius and MinDisplayRadius clamp the distance between a
	// curve point and its osculating center. Zero selects the defaults.
	MaxDisplayRadius float64
	MinDisplayRadius float64
}

// NewAnalyzer returns an Analyzer for a copy of pts with default clamps.
func NewAnalyzer(pts []Point) *Analyzer {
	a := &Analyzer{}
	a.SetControlPoints(pts)
	return a
}

func (a *Analyzer) radiusBounds() (lo, hi float64) {
	lo, hi = a.MinDisplayRadius, a.MaxDisplayRadius
	if lo <= 0 {
		lo = DefaultMinDisplayRadius
	}
	if hi <= 0 {
		hi = DefaultMaxDisplayRadius
	}
	return lo, max(lo, hi)
}

// frenet returns velocity and acceleration at t.
func (a *Analyzer) frenet(t float64) (v, acc Vec2) {
	return a.weighted(t, 1), a.weighted(t, 2)
}

// Curvature returns the signed curvature
//
//	κ = (vx·ay − vy·ax) / |v|³
//
// at t. It is 0 for curves with fewer than three control points and at
// stationary points, where the velocity vanishes.
func (a *Analyzer) Curvature(t float64) (float64, error) {
	if err := needPoints("Curvature", 2, a.Len()); err != nil {
		return 0, err
	}
	return a.curvature(t), nil
}

func (a *Analyzer) curvature(t float64) float64 {
	if a.Len() < 3 {
		return 0
	}
	v, acc := a.frenet(t)
	speed := v.Hypot()
	if speed == 0 {
		return 0
	}
	k := v.Cross(acc) / (speed * speed * speed)
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0
	}
	return k
}

// Radius returns the signed radius of curvature 1/|κ|·sign(κ) at t. Where
// κ is zero, NaN or infinite, or where the reciprocal overflows, it
// returns [RadiusSentinel].
func (a *Analyzer) Radius(t float64) (float64, error) {
	if err := needPoints("Radius", 2, a.Len()); err != nil {
		return 0, err
	}
	return radiusOf(a.curvature(t)), nil
}

func radiusOf(k float64) float64 {
	if k == 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return RadiusSentinel
	}
	r := 1 / math.Abs(k)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return RadiusSentinel
	}
	return math.Copysign(r, k)
}

// OsculatingCenter returns the center of the osculating circle at t.
//
// The center lies on the concave side of the curve, at distance |Radius(t)|
// from Point(t), clamped to [MinDisplayRadius, MaxDisplayRadius]. The side
// is taken from the component of the acceleration perpendicular to the
// tangent. That component, projected on the quarter-turned tangent, equals
// (v × a)/|v|, so it always agrees with the sign of [Analyzer.Curvature].
// Where it vanishes (inflection points, straight runs) the quarter-turned
// tangent is used.
//
// For curves of degree less than two, and at stationary points, the
// center is Point(t) itself.
func (a *Analyzer) OsculatingCenter(t float64) (Point, error) {
	p, err := a.Point(t)
	if err != nil {
		return Point{}, err
	}
	return a.center(t, p), nil
}

func (a *Analyzer) center(t float64, p Point) Point {
	if a.Len() < 3 {
		return p
	}
	v, acc := a.frenet(t)
	speed := v.Hypot()
	if speed == 0 {
		return p
	}
	normal := v.Turn90().Mul(1 / speed)
	if acc.Dot(normal) < 0 {
		normal = normal.Negate()
	}
	lo, hi := a.radiusBounds()
	r := min(max(math.Abs(radiusOf(a.curvature(t))), lo), hi)
	return p.Translate(normal.Mul(r))
}

// OsculatingCircle returns the display circle at t: its center is
// [Analyzer.OsculatingCenter] and its radius the clamped distance to the
// curve point.
func (a *Analyzer) OsculatingCircle(t float64) (Circle, error) {
	p, err := a.Point(t)
	if err != nil {
		return Circle{}, err
	}
	c := a.center(t, p)
	return Circle{Center: c, Radius: c.Distance(p)}, nil
}

// Sample returns the curvature sample at t.
func (a *Analyzer) Sample(t float64) (CurvatureSample, error) {
	p, err := a.Point(t)
	if err != nil {
		return CurvatureSample{}, err
	}
	k := a.curvature(t)
	return CurvatureSample{
		T:         clampUnit(t),
		Curvature: k,
		Radius:    radiusOf(k),
		Center:    a.center(t, p),
	}, nil
}
