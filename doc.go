// Package bezier analyzes 2D Bézier curves of arbitrary degree: it
// evaluates them, differentiates them up to the third order, measures their
// curvature, decomposes their points into weighted control point vectors,
// and performs De Casteljau's construction step by step.
//
// A curve is defined by an ordered sequence of n+1 control points and has
// degree n. It is evaluated at a parameter t ∈ [0, 1]; parameters outside
// that range are clamped.
//
// # Components
//
// [Basis] and [BasisDerivative] are the Bernstein basis polynomials and their
// derivatives. Everything else is built on them, except the construction.
//
// [Evaluator] computes points, velocity, acceleration and jerk. Derivatives
// that a curve's degree cannot support (acceleration of a line, jerk of a
// quadratic) are reported as zero vectors rather than errors.
//
// [Analyzer] adds signed curvature, the radius of curvature and the
// osculating circle. Degenerate values never escape as NaN or infinities:
// zero curvature has radius [RadiusSentinel].
//
// [Decomposer] expresses a curve point as the sum of the vectors from an
// origin to the control points, each scaled by its Bernstein weight.
//
// [Constructor] is a state machine for De Casteljau's construction. Each
// step interpolates the top layer of points at a ratio, and every step can
// be undone. Once completed, its final point equals [Evaluator.Point] at
// the same parameter.
//
// [Engine] combines all of them behind a mutex and tracks the analysis
// parameter.
//
// # Ownership
//
// Every component copies the control points it is given, and every query
// returns fresh slices. Changing a slice after passing it in, or after
// receiving it, never affects a component.
//
// # Errors
//
// Operations that need a curve fail with an error matching
// [ErrInsufficientPoints] when given fewer than two control points.
// Stepping a completed construction or undoing with no history are not
// errors; they return a [StepStatus].
//
// # Coordinates
//
// The package does not assume an orientation of the y axis. Curvature is
// positive where the curve turns from the positive x axis toward the
// positive y axis, which is clockwise on a y-down screen.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
package bezier
