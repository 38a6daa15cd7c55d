package bezier

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

const (
	// RatioEpsilon is the smallest ratio change that [Constructor.SetRatio]
	// acts on. Smaller changes are ignored.
	RatioEpsilon = 1e-3

	// DefaultRatio is the interpolation ratio of a new [Constructor].
	DefaultRatio = 0.5

	// DefaultPartialSteps is the number of intervals sampled by
	// [Constructor.PartialCurve] when [ConstructorOptions.PartialSteps] is
	// zero.
	DefaultPartialSteps = 100

	defaultCacheSize = 256

	// partialQuantum is the resolution at which PartialCurve quantizes its
	// parameter.
	partialQuantum = 1000
)

// State is the state of a [Constructor].
type State uint8

const (
	// StateEmpty means there are fewer than two control points.
	StateEmpty State = iota
	// StateReady means only layer 0, the control points, exists.
	StateReady
	// StateInProgress means some but not all layers have been built.
	StateInProgress
	// StateCompleted means the top layer holds the single final point.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateInProgress:
		return "in progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// StepStatus reports the outcome of [Constructor.NextStep] and
// [Constructor.PrevStep]. Only StepApplied means the state changed; the
// other values are no-ops, not errors.
type StepStatus uint8

const (
	StepApplied StepStatus = iota + 1
	// StepAlreadyCompleted is returned by NextStep once the final point
	// has been reached.
	StepAlreadyCompleted
	// StepNoHistory is returned by PrevStep when there is no step to undo.
	StepNoHistory
)

func (s StepStatus) String() string {
	switch s {
	case StepApplied:
		return "applied"
	case StepAlreadyCompleted:
		return "already completed"
	case StepNoHistory:
		return "no history"
	default:
		return fmt.Sprintf("StepStatus(%d)", uint8(s))
	}
}

// ConstructorOptions specifies optional settings for [NewConstructor].
type ConstructorOptions struct {
	// The number of intervals sampled by PartialCurve. Zero selects
	// DefaultPartialSteps.
	PartialSteps int
	// The maximum number of cached partial curves. Zero selects a default.
	// The cache is emptied when it fills up.
	CacheSize int
}

// ConstructorStatus summarizes the state of a [Constructor].
type ConstructorStatus struct {
	State         State
	ControlPoints int
	CurrentLevel  int
	// TotalLevels is the degree of the curve, the number of steps from
	// StateReady to StateCompleted.
	TotalLevels    int
	RemainingSteps int
	// ConstructionPoints counts the points of all built layers, including
	// the control points.
	ConstructionPoints int
	Ratio              float64
	Completed          bool
	CanPrevStep        bool
}

// snapshot is a complete constructor state. Layer slices are never written
// to after they are built, so snapshots share them instead of copying.
type snapshot struct {
	layers    [][]Point
	level     int
	completed bool
	final     Point
}

// Constructor performs De Casteljau's construction one layer at a time.
//
// Layer 0 holds the control points; layer k+1 holds the points that divide
// each segment of layer k at the ratio. After degree steps the top layer
// holds a single point, which is the curve point at parameter ratio. Every
// step can be undone with [Constructor.PrevStep].
//
// The zero value is an empty constructor with ratio 0. A Constructor is not
// safe for concurrent use; see [Engine] for a serialized wrapper.
type Constructor struct {
	points    []Point
	layers    [][]Point
	level     int
	completed bool
	final     Point
	ratio     float64
	history   []snapshot

	partialSteps int
	cacheSize    int
	cache        map[int][]Point
	scratch      []Point
}

// NewConstructor returns a constructor for a copy of pts, in StateReady
// (or StateEmpty for fewer than two points), with ratio [DefaultRatio].
func NewConstructor(pts []Point, opts ConstructorOptions) *Constructor {
	c := &Constructor{
		ratio:        DefaultRatio,
		partialSteps: opts.PartialSteps,
		cacheSize:    opts.CacheSize,
	}
	c.SetControlPoints(pts)
	return c
}

// SetControlPoints replaces the control points with a copy of pts and
// resets the construction. The ratio is kept.
func (c *Constructor) SetControlPoints(pts []Point) {
	c.points = slices.Clone(pts)
	c.Reset()
}

// Reset discards all layers above layer 0, the history, and cached partial
// curves.
func (c *Constructor) Reset() {
	c.level = 0
	c.completed = false
	c.final = Point{}
	c.history = nil
	c.layers = nil
	clear(c.cache)
	if len(c.points) >= 2 {
		c.layers = [][]Point{slices.Clone(c.points)}
	}
}

// State returns the current state.
func (c *Constructor) State() State {
	switch {
	case len(c.points) < 2:
		return StateEmpty
	case c.completed:
		return StateCompleted
	case c.level == 0:
		return StateReady
	default:
		return StateInProgress
	}
}

// Ratio returns the interpolation ratio.
func (c *Constructor) Ratio() float64 { return c.ratio }

// Level returns the index of the top layer.
func (c *Constructor) Level() int { return c.level }

// Degree returns the degree of the curve, or -1 without control points.
func (c *Constructor) Degree() int { return len(c.points) - 1 }

// Completed reports whether the final point has been constructed.
func (c *Constructor) Completed() bool { return c.completed }

// HistoryLen returns the number of steps that PrevStep can undo.
func (c *Constructor) HistoryLen() int { return len(c.history) }

// FinalPoint returns the constructed curve point, if construction has
// completed.
func (c *Constructor) FinalPoint() (Point, bool) {
	return c.final, c.completed
}

// Layers returns a copy of all built layers, starting with the control
// points.
func (c *Constructor) Layers() [][]Point {
	out := make([][]Point, len(c.layers))
	for i, l := range c.layers {
		out[i] = slices.Clone(l)
	}
	return out
}

// Layer returns a copy of layer k, or nil if it has not been built.
func (c *Constructor) Layer(k int) []Point {
	if k < 0 || k >= len(c.layers) {
		return nil
	}
	return slices.Clone(c.layers[k])
}

func lerpLayer(pts []Point, ratio float64) []Point {
	out := make([]Point, len(pts)-1)
	for i := range out {
		out[i] = pts[i].Lerp(pts[i+1], ratio)
	}
	return out
}

// NextStep builds the next layer at the current ratio.
//
// It returns StepAlreadyCompleted, changing nothing, if the final point has
// already been reached, and an error matching [ErrInsufficientPoints] if
// there are fewer than two control points.
func (c *Constructor) NextStep() (StepStatus, error) {
	if err := needPoints("NextStep", 2, len(c.points)); err != nil {
		return 0, err
	}
	if c.completed {
		return StepAlreadyCompleted, nil
	}
	next := lerpLayer(c.layers[len(c.layers)-1], c.ratio)
	c.history = append(c.history, c.snapshot())
	c.layers = append(c.layers, next)
	c.level++
	if len(next) == 1 {
		c.completed = true
		c.final = next[0]
	}
	Logger().Debug("construction step",
		"level", c.level,
		"points", len(next),
		"completed", c.completed)
	return StepApplied, nil
}

// PrevStep undoes the most recent step. It returns StepNoHistory if there
// is nothing to undo, which is the case in StateReady and right after
// [Constructor.SetRatio] rebuilt the layers.
func (c *Constructor) PrevStep() StepStatus {
	n := len(c.history)
	if n == 0 {
		return StepNoHistory
	}
	s := c.history[n-1]
	c.history[n-1] = snapshot{}
	c.history = c.history[:n-1]
	c.restore(s)
	Logger().Debug("construction undo", "level", c.level, "history", len(c.history))
	return StepApplied
}

func (c *Constructor) snapshot() snapshot {
	return snapshot{
		layers:    c.layers,
		level:     c.level,
		completed: c.completed,
		final:     c.final,
	}
}

func (c *Constructor) restore(s snapshot) {
	c.layers = s.layers
	c.level = s.level
	c.completed = s.completed
	c.final = s.final
}

// SetRatio sets the interpolation ratio, clamped to [0, 1], and reports
// whether it changed. Changes of at most [RatioEpsilon] are ignored.
//
// If layers above layer 0 exist, they are all rebuilt at the new ratio,
// keeping the current level. The history is cleared, because the undone
// states would belong to the old ratio.
func (c *Constructor) SetRatio(r float64) bool {
	r = clampUnit(r)
	if math.Abs(r-c.ratio) <= RatioEpsilon {
		return false
	}
	old := c.ratio
	c.ratio = r
	c.history = nil
	if len(c.layers) <= 1 {
		return true
	}
	layers := make([][]Point, len(c.layers))
	layers[0] = c.layers[0]
	for k := 1; k < len(layers); k++ {
		layers[k] = lerpLayer(layers[k-1], r)
	}
	c.layers = layers
	c.level = len(layers) - 1
	top := layers[c.level]
	c.completed = len(top) == 1
	c.final = Point{}
	if c.completed {
		c.final = top[0]
	}
	Logger().Debug("construction ratio changed",
		"old", old,
		"new", r,
		"level", c.level)
	return true
}

// Segments yields the lines joining adjacent points of layer k. It yields
// nothing for layers that have not been built.
func (c *Constructor) Segments(k int) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if k < 0 || k >= len(c.layers) {
			return
		}
		l := c.layers[k]
		for i := 0; i+1 < len(l); i++ {
			if !yield(Line{P0: l[i], P1: l[i+1]}) {
				return
			}
		}
	}
}

// RatioLines yields, for layer k ≥ 1, the lines from each point of layer
// k−1 to the point of layer k that was interpolated starting from it.
func (c *Constructor) RatioLines(k int) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if k < 1 || k >= len(c.layers) {
			return
		}
		prev, cur := c.layers[k-1], c.layers[k]
		for i, p := range cur {
			if !yield(Line{P0: prev[i], P1: p}) {
				return
			}
		}
	}
}

// Status returns a summary of the constructor's state.
func (c *Constructor) Status() ConstructorStatus {
	total := max(len(c.points)-1, 0)
	var count int
	for _, l := range c.layers {
		count += len(l)
	}
	return ConstructorStatus{
		State:              c.State(),
		ControlPoints:      len(c.points),
		CurrentLevel:       c.level,
		TotalLevels:        total,
		RemainingSteps:     max(total-c.level, 0),
		ConstructionPoints: count,
		Ratio:              c.ratio,
		Completed:          c.completed,
		CanPrevStep:        len(c.history) > 0,
	}
}

// PartialCurve returns points along the curve from parameter 0 to t. It
// computes steps+1 points, the i-th at parameter t·i/steps, each by a full
// De Casteljau construction of its own. It does not depend on or change
// the ratio, the layers or the history.
//
// t is clamped to [0, 1] and quantized to multiples of 0.001; results are
// cached per quantized t until the control points change.
func (c *Constructor) PartialCurve(t float64) ([]Point, error) {
	if err := needPoints("PartialCurve", 2, len(c.points)); err != nil {
		return nil, err
	}
	key := int(math.Round(clampUnit(t) * partialQuantum))
	if pts, ok := c.cache[key]; ok {
		return slices.Clone(pts), nil
	}

	steps := c.partialSteps
	if steps <= 0 {
		steps = DefaultPartialSteps
	}
	tq := float64(key) / partialQuantum
	pts := make([]Point, steps+1)
	for i := range pts {
		pts[i] = c.deCasteljau(tq * float64(i) / float64(steps))
	}

	size := c.cacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	if c.cache == nil {
		c.cache = make(map[int][]Point)
	} else if len(c.cache) >= size {
		clear(c.cache)
	}
	c.cache[key] = pts
	return slices.Clone(pts), nil
}

// deCasteljau evaluates the curve at u by repeated interpolation in a
// scratch buffer.
func (c *Constructor) deCasteljau(u float64) Point {
	c.scratch = append(c.scratch[:0], c.points...)
	tmp := c.scratch
	for n := len(tmp) - 1; n > 0; n-- {
		for j := range n {
			tmp[j] = tmp[j].Lerp(tmp[j+1], u)
		}
	}
	return tmp[0]
}
