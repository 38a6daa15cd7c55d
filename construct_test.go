package bezier

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func runToCompletion(t *testing.T, c *Constructor) int {
	t.Helper()
	steps := 0
	for {
		st, err := c.NextStep()
		if err != nil {
			t.Fatal(err)
		}
		if st == StepAlreadyCompleted {
			return steps
		}
		if st != StepApplied {
			t.Fatalf("got status %v", st)
		}
		steps++
	}
}

func TestConstructorMatchesEvaluator(t *testing.T) {
	rng := newRand(9)
	for n := 2; n <= 9; n++ {
		pts := randomPoints(rng, n)
		ev := NewEvaluator(pts)
		for i := range 21 {
			ts := float64(i) / 20
			c := NewConstructor(pts, ConstructorOptions{})
			c.SetRatio(ts)
			if got := runToCompletion(t, c); got != n-1 {
				t.Fatalf("completed after %d steps, want %d", got, n-1)
			}
			final, ok := c.FinalPoint()
			if !ok {
				t.Fatal("no final point after completion")
			}
			want, _ := ev.Point(ts)
			assertNear(t, final, want, 1e-9)
		}
	}
}

func TestConstructorMatchesEvaluatorHighDegree(t *testing.T) {
	const n = 1500
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Pt(float64(i), math.Sin(float64(i)/50))
	}
	ev := NewEvaluator(pts)
	for _, ts := range []float64{0.1, 0.5, 0.73} {
		c := NewConstructor(pts, ConstructorOptions{})
		c.SetRatio(ts)
		runToCompletion(t, c)
		final, _ := c.FinalPoint()
		got, err := ev.Point(ts)
		if err != nil {
			t.Fatal(err)
		}
		if got.IsNaN() || got.IsInf() {
			t.Fatalf("t=%g: evaluated to %s", ts, got)
		}
		assertNear(t, got, final, 1e-6)
	}

	w, err := NewDecomposer(pts).Weights(0.5)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, wi := range w {
		if math.IsNaN(wi) || math.IsInf(wi, 0) {
			t.Fatalf("got weight %v", wi)
		}
		sum += wi
	}
	assertClose(t, sum, 1, 1e-12)
}

func TestConstructorRoundTrip(t *testing.T) {
	pts := randomPoints(newRand(4), 6)
	c := NewConstructor(pts, ConstructorOptions{})
	if s := c.State(); s != StateReady {
		t.Fatalf("got state %v, want %v", s, StateReady)
	}
	initial := c.Layers()

	for k := 1; k <= 5; k++ {
		st, err := c.NextStep()
		if err != nil || st != StepApplied {
			t.Fatalf("step %d: got (%v, %v)", k, st, err)
		}
		if l := c.Layer(k); len(l) != len(c.Layer(k-1))-1 {
			t.Fatalf("layer %d has %d points, layer %d has %d", k, len(l), k-1, len(c.Layer(k-1)))
		}
		want := StateInProgress
		if k == 5 {
			want = StateCompleted
		}
		if s := c.State(); s != want {
			t.Fatalf("step %d: got state %v, want %v", k, s, want)
		}
	}
	if st, _ := c.NextStep(); st != StepAlreadyCompleted {
		t.Fatalf("got %v, want %v", st, StepAlreadyCompleted)
	}
	if c.HistoryLen() != 5 {
		t.Fatalf("got history of %d, want 5", c.HistoryLen())
	}

	for range 5 {
		if st := c.PrevStep(); st != StepApplied {
			t.Fatalf("got %v, want %v", st, StepApplied)
		}
	}
	if s := c.State(); s != StateReady {
		t.Fatalf("got state %v, want %v", s, StateReady)
	}
	diff(t, initial, c.Layers())
	if _, ok := c.FinalPoint(); ok {
		t.Error("final point survived undo")
	}
	if st := c.PrevStep(); st != StepNoHistory {
		t.Fatalf("got %v, want %v", st, StepNoHistory)
	}
}

func TestConstructorUndoRedo(t *testing.T) {
	pts := randomPoints(newRand(8), 5)
	ref := NewConstructor(pts, ConstructorOptions{})
	runToCompletion(t, ref)

	c := NewConstructor(pts, ConstructorOptions{})
	c.NextStep()
	c.NextStep()
	c.PrevStep()
	c.NextStep()
	c.NextStep()
	c.PrevStep()
	c.PrevStep()
	runToCompletion(t, c)
	diff(t, ref.Layers(), c.Layers())
	diff(t, ref.Status(), c.Status())
}

func TestConstructorSetRatioClearsHistory(t *testing.T) {
	pts := randomPoints(newRand(12), 5)
	c := NewConstructor(pts, ConstructorOptions{})
	c.NextStep()
	c.NextStep()

	if !c.SetRatio(0.25) {
		t.Fatal("SetRatio reported no change")
	}
	if n := c.HistoryLen(); n != 0 {
		t.Fatalf("got history of %d, want 0", n)
	}
	if st := c.PrevStep(); st != StepNoHistory {
		t.Fatalf("got %v, want %v", st, StepNoHistory)
	}
	if c.Level() != 2 {
		t.Fatalf("got level %d, want 2", c.Level())
	}

	ref := NewConstructor(pts, ConstructorOptions{})
	ref.SetRatio(0.25)
	ref.NextStep()
	ref.NextStep()
	diff(t, ref.Layers(), c.Layers())
}

func TestConstructorSetRatioCompleted(t *testing.T) {
	pts := randomPoints(newRand(13), 4)
	c := NewConstructor(pts, ConstructorOptions{})
	runToCompletion(t, c)
	c.SetRatio(0.8)
	if s := c.State(); s != StateCompleted {
		t.Fatalf("got state %v, want %v", s, StateCompleted)
	}
	final, _ := c.FinalPoint()
	want, _ := NewEvaluator(pts).Point(0.8)
	assertNear(t, final, want, 1e-9)
}

func TestConstructorSetRatioThreshold(t *testing.T) {
	c := NewConstructor(quadratic, ConstructorOptions{})
	c.NextStep()
	if c.SetRatio(DefaultRatio + RatioEpsilon/2) {
		t.Error("SetRatio acted on a change below RatioEpsilon")
	}
	if c.HistoryLen() != 1 {
		t.Error("ignored ratio change cleared the history")
	}
	if c.Ratio() != DefaultRatio {
		t.Errorf("got ratio %v, want %v", c.Ratio(), DefaultRatio)
	}

	c.SetRatio(7)
	if c.Ratio() != 1 {
		t.Errorf("got ratio %v, want 1", c.Ratio())
	}
	c.SetRatio(-7)
	if c.Ratio() != 0 {
		t.Errorf("got ratio %v, want 0", c.Ratio())
	}
	// At ratio 0 every layer starts with the first control point.
	diff(t, []Point{quadratic[0], quadratic[1]}, c.Layer(1))
}

func TestConstructorEmpty(t *testing.T) {
	for _, pts := range [][]Point{nil, {Pt(1, 1)}} {
		c := NewConstructor(pts, ConstructorOptions{})
		if s := c.State(); s != StateEmpty {
			t.Errorf("got state %v, want %v", s, StateEmpty)
		}
		if _, err := c.NextStep(); !errors.Is(err, ErrInsufficientPoints) {
			t.Errorf("got error %v, want ErrInsufficientPoints", err)
		}
		if st := c.PrevStep(); st != StepNoHistory {
			t.Errorf("got %v, want %v", st, StepNoHistory)
		}
		if _, err := c.PartialCurve(0.5); !errors.Is(err, ErrInsufficientPoints) {
			t.Errorf("got error %v, want ErrInsufficientPoints", err)
		}
		if l := c.Layers(); len(l) != 0 {
			t.Errorf("got %d layers, want none", len(l))
		}
	}

	var zero Constructor
	if _, err := zero.NextStep(); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("got error %v, want ErrInsufficientPoints", err)
	}
}

func TestConstructorLine(t *testing.T) {
	c := NewConstructor([]Point{Pt(0, 0), Pt(10, 20)}, ConstructorOptions{})
	st, err := c.NextStep()
	if err != nil || st != StepApplied {
		t.Fatalf("got (%v, %v)", st, err)
	}
	final, ok := c.FinalPoint()
	if !ok {
		t.Fatal("line not completed after one step")
	}
	diff(t, Pt(5, 10), final)
}

func TestConstructorReset(t *testing.T) {
	c := NewConstructor(quadratic, ConstructorOptions{})
	runToCompletion(t, c)
	c.PartialCurve(0.5)
	c.Reset()
	diff(t, ConstructorStatus{
		State:              StateReady,
		ControlPoints:      3,
		TotalLevels:        2,
		RemainingSteps:     2,
		ConstructionPoints: 3,
		Ratio:              DefaultRatio,
	}, c.Status())
	if len(c.cache) != 0 {
		t.Error("Reset kept cached partial curves")
	}
}

func TestConstructorStatus(t *testing.T) {
	c := NewConstructor(randomPoints(newRand(1), 4), ConstructorOptions{})
	c.NextStep()
	diff(t, ConstructorStatus{
		State:              StateInProgress,
		ControlPoints:      4,
		CurrentLevel:       1,
		TotalLevels:        3,
		RemainingSteps:     2,
		ConstructionPoints: 7,
		Ratio:              DefaultRatio,
		CanPrevStep:        true,
	}, c.Status())
}

func TestConstructorCopies(t *testing.T) {
	pts := slices.Clone(quadratic)
	c := NewConstructor(pts, ConstructorOptions{})
	pts[0] = Pt(-50, -50)
	diff(t, quadratic[0], c.Layer(0)[0])

	layers := c.Layers()
	layers[0][1] = Pt(999, 999)
	diff(t, quadratic[1], c.Layer(0)[1])
}

func TestConstructorSegments(t *testing.T) {
	c := NewConstructor(quadratic, ConstructorOptions{})
	c.NextStep()
	segs := slices.Collect(c.Segments(0))
	diff(t, []Line{{quadratic[0], quadratic[1]}, {quadratic[1], quadratic[2]}}, segs)

	ratios := slices.Collect(c.RatioLines(1))
	diff(t, []Line{{quadratic[0], Pt(50, 0)}, {quadratic[1], Pt(100, 50)}}, ratios)

	if n := len(slices.Collect(c.Segments(5))); n != 0 {
		t.Errorf("got %d segments for a missing layer", n)
	}
	if n := len(slices.Collect(c.RatioLines(0))); n != 0 {
		t.Errorf("got %d ratio lines for layer 0", n)
	}
}

func TestPartialCurve(t *testing.T) {
	pts := randomPoints(newRand(6), 5)
	c := NewConstructor(pts, ConstructorOptions{PartialSteps: 40})
	c.NextStep()
	before := c.Status()
	layers := c.Layers()

	curve, err := c.PartialCurve(0.25)
	if err != nil {
		t.Fatal(err)
	}
	if len(curve) != 41 {
		t.Fatalf("got %d points, want 41", len(curve))
	}
	ev := NewEvaluator(pts)
	for i, p := range curve {
		want, _ := ev.Point(0.25 * float64(i) / 40)
		assertNear(t, p, want, 1e-9)
	}

	diff(t, before, c.Status())
	diff(t, layers, c.Layers())

	// Cached results are copies.
	curve[0] = Pt(1e6, 1e6)
	again, _ := c.PartialCurve(0.25)
	diff(t, pts[0], again[0])
	if len(c.cache) != 1 {
		t.Fatalf("got %d cache entries, want 1", len(c.cache))
	}

	// Parameters within the same quantum share an entry.
	c.PartialCurve(0.2501)
	if len(c.cache) != 1 {
		t.Fatalf("got %d cache entries, want 1", len(c.cache))
	}

	other := randomPoints(newRand(60), 3)
	c.SetControlPoints(other)
	moved, _ := c.PartialCurve(0.25)
	diff(t, other[0], moved[0])
	want, _ := NewEvaluator(other).Point(0.25)
	assertNear(t, moved[len(moved)-1], want, 1e-9)
}

func TestPartialCurveCacheBound(t *testing.T) {
	c := NewConstructor(quadratic, ConstructorOptions{PartialSteps: 2, CacheSize: 4})
	for i := range 10 {
		c.PartialCurve(float64(i) / 10)
		if len(c.cache) > 4 {
			t.Fatalf("cache grew to %d entries", len(c.cache))
		}
	}
}

func TestStateStrings(t *testing.T) {
	diff(t, "in progress", StateInProgress.String())
	diff(t, "State(9)", State(9).String())
	diff(t, "no history", StepNoHistory.String())
	diff(t, "StepStatus(0)", StepStatus(0).String())
}
