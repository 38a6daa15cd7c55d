package bezier

import (
	"slices"
	"sync"
)

// DefaultT is the analysis parameter of a new [Engine].
const DefaultT = 0.5

// Frame holds everything derived from the control points at the analysis
// parameter T.
type Frame struct {
	T            float64
	Point        Point
	Velocity     DerivativeVector
	Acceleration DerivativeVector
	Jerk         DerivativeVector
	Curvature    CurvatureSample
	// Circle is the osculating circle as it should be displayed, with its
	// radius clamped.
	Circle Circle
	// Origin is the origin of the weighted vector decomposition.
	Origin  Point
	Weights []float64
	Vectors []Vec2
}

func (f Frame) clone() Frame {
	f.Weights = slices.Clone(f.Weights)
	f.Vectors = slices.Clone(f.Vectors)
	return f
}

// EngineOptions specifies optional settings for [NewEngine].
type EngineOptions struct {
	Constructor ConstructorOptions
	// See [Analyzer].
	MaxDisplayRadius float64
	MinDisplayRadius float64
}

// Engine bundles an [Analyzer] (and thus an [Evaluator]), a [Decomposer] and
// a [Constructor] over one set of control points, and keeps the [Frame] at
// the analysis parameter up to date.
//
// All methods are safe for concurrent use; calls are serialized by a
// single mutex so that construction state is never observed half-updated.
// Results are copies and never alias engine state.
type Engine struct {
	mu sync.Mutex

	points      []Point
	t           float64
	analyzer    Analyzer
	decomposer  Decomposer
	constructor *Constructor

	frame    Frame
	frameErr error
}

// NewEngine returns an engine without control points, with the analysis
// parameter at [DefaultT] and the construction ratio at [DefaultRatio].
func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		t:           DefaultT,
		constructor: NewConstructor(nil, opts.Constructor),
	}
	e.analyzer.MaxDisplayRadius = opts.MaxDisplayRadius
	e.analyzer.MinDisplayRadius = opts.MinDisplayRadius
	e.refresh()
	return e
}

// SetControlPoints replaces the control points with a copy of pts and
// resets the construction.
func (e *Engine) SetControlPoints(pts []Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.points = slices.Clone(pts)
	e.analyzer.SetControlPoints(e.points)
	e.decomposer.SetControlPoints(e.points)
	e.constructor.SetControlPoints(e.points)
	Logger().Debug("control points changed", "count", len(e.points))
	e.refresh()
}

// ControlPoints returns a copy of the control points.
func (e *Engine) ControlPoints() []Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.points)
}

// SetT sets the analysis parameter, clamped to [0, 1], recomputes the
// frame and returns the clamped value.
func (e *Engine) SetT(t float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.t = clampUnit(t)
	e.refresh()
	return e.t
}

// T returns the analysis parameter.
func (e *Engine) T() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t
}

// SetOrigin pins the origin of the vector decomposition.
func (e *Engine) SetOrigin(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decomposer.SetOrigin(p)
	e.refresh()
}

// ResetOrigin makes the decomposition origin follow the centroid of the
// control points.
func (e *Engine) ResetOrigin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decomposer.ResetOrigin()
	e.refresh()
}

// refresh recomputes the frame. e.mu must be held.
func (e *Engine) refresh() {
	f, err := e.computeFrame()
	e.frame, e.frameErr = f, err
}

func (e *Engine) computeFrame() (Frame, error) {
	t := e.t
	a := &e.analyzer
	p, err := a.Point(t)
	if err != nil {
		return Frame{T: t}, err
	}
	f := Frame{T: t, Point: p}
	if f.Velocity, err = a.Velocity(t); err != nil {
		return Frame{T: t}, err
	}
	if f.Acceleration, err = a.Acceleration(t); err != nil {
		return Frame{T: t}, err
	}
	if f.Jerk, err = a.Jerk(t); err != nil {
		return Frame{T: t}, err
	}
	if f.Curvature, err = a.Sample(t); err != nil {
		return Frame{T: t}, err
	}
	if f.Circle, err = a.OsculatingCircle(t); err != nil {
		return Frame{T: t}, err
	}
	f.Origin = e.decomposer.Origin()
	if f.Weights, err = e.decomposer.Weights(t); err != nil {
		return Frame{T: t}, err
	}
	if f.Vectors, err = e.decomposer.Vectors(f.Origin, t); err != nil {
		return Frame{T: t}, err
	}
	return f, nil
}

// Frame returns the quantities at the analysis parameter. It returns an
// error matching [ErrInsufficientPoints] if there are fewer than two
// control points.
func (e *Engine) Frame() (Frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frameErr != nil {
		return Frame{}, e.frameErr
	}
	return e.frame.clone(), nil
}

// Chain returns the head-to-tail vector chain at the analysis parameter;
// see [Decomposer.Chain].
func (e *Engine) Chain() ([]Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.decomposer.Chain(e.decomposer.Origin(), e.t)
}

// Profile samples the curve's kinematics; see [Analyzer.Profile].
func (e *Engine) Profile(steps int) ([]ProfileSample, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analyzer.Profile(steps)
}

// Polyline returns steps+1 evenly spaced points of the whole curve.
func (e *Engine) Polyline(steps int) ([]Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analyzer.Polyline(steps)
}

// Bounds returns the rectangle enclosing the control points and the curve.
// ok is false without control points.
func (e *Engine) Bounds() (r Rect, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok = BoundingRect(e.points)
	if !ok {
		return r, false
	}
	if pts, err := e.analyzer.Polyline(DefaultProfileSteps); err == nil {
		for _, p := range pts {
			r = r.UnionPoint(p)
		}
	}
	return r, true
}

// SetRatio sets the construction ratio; see [Constructor.SetRatio].
func (e *Engine) SetRatio(r float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.SetRatio(r)
}

// Ratio returns the construction ratio.
func (e *Engine) Ratio() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.Ratio()
}

// NextStep advances the construction; see [Constructor.NextStep].
func (e *Engine) NextStep() (StepStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.NextStep()
}

// PrevStep undoes a construction step; see [Constructor.PrevStep].
func (e *Engine) PrevStep() StepStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.PrevStep()
}

// ResetConstruction returns the construction to its initial state.
func (e *Engine) ResetConstruction() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.constructor.Reset()
}

// ConstructionLayers returns a copy of the built construction layers.
func (e *Engine) ConstructionLayers() [][]Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.Layers()
}

// ConstructionStatus returns the constructor's status.
func (e *Engine) ConstructionStatus() ConstructorStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.Status()
}

// FinalPoint returns the constructed point, if construction has completed.
func (e *Engine) FinalPoint() (Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.FinalPoint()
}

// ConstructionLines returns the scaffold of the construction: the segments
// of every built layer, followed by the ratio lines of every layer above
// the control points.
func (e *Engine) ConstructionLines() (segments, ratios []Line) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k := range e.constructor.Level() + 1 {
		segments = slices.AppendSeq(segments, e.constructor.Segments(k))
		ratios = slices.AppendSeq(ratios, e.constructor.RatioLines(k))
	}
	return segments, ratios
}

// PartialCurve returns the curve from 0 to t; see
// [Constructor.PartialCurve].
func (e *Engine) PartialCurve(t float64) ([]Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constructor.PartialCurve(t)
}
