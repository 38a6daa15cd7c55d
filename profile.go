package bezier

// DefaultProfileSteps is the number of intervals used by [Analyzer.Profile]
// when steps is not positive.
const DefaultProfileSteps = 100

// ProfileSample holds the kinematic quantities of a curve at one parameter.
type ProfileSample struct {
	T            float64
	Point        Point
	Velocity     DerivativeVector
	Acceleration DerivativeVector
	Jerk         DerivativeVector
	Curvature    float64
	Radius       float64
}

// Profile samples the curve at t = i/steps for i in 0..steps, for plotting
// how speed, acceleration, jerk and curvature vary along the curve. Like
// the individual queries, acceleration and jerk are zero for curves of too
// low degree.
func (a *Analyzer) Profile(steps int) ([]ProfileSample, error) {
	if err := needPoints("Profile", 2, a.Len()); err != nil {
		return nil, err
	}
	if steps <= 0 {
		steps = DefaultProfileSteps
	}
	out := make([]ProfileSample, steps+1)
	for i := range out {
		t := float64(i) / float64(steps)
		s := ProfileSample{
			T:        t,
			Point:    Point(a.weighted(t, 0)),
			Velocity: newDerivativeVector(a.weighted(t, 1)),
		}
		if a.Len() >= 3 {
			s.Acceleration = newDerivativeVector(a.weighted(t, 2))
		}
		if a.Len() >= 4 {
			s.Jerk = newDerivativeVector(a.weighted(t, 3))
		}
		s.Curvature = a.curvature(t)
		s.Radius = radiusOf(s.Curvature)
		out[i] = s
	}
	return out, nil
}
