package bezier

import (
	"errors"
	"fmt"
)

// ErrInsufficientPoints is reported when an operation needs more control
// points than it was given, for example evaluating a curve defined by a
// single point. Use errors.Is to test for it; the concrete error is a
// [*PointCountError].
var ErrInsufficientPoints = errors.New("insufficient control points")

// PointCountError describes a failed control point precondition.
type PointCountError struct {
	// Op is the operation that failed, such as "Point" or "NextStep".
	Op   string
	Need int
	Have int
}

func (e *PointCountError) Error() string {
	return fmt.Sprintf("bezier: %s needs at least %d control points, have %d", e.Op, e.Need, e.Have)
}

// Is reports whether target is [ErrInsufficientPoints].
func (e *PointCountError) Is(target error) bool {
	return target == ErrInsufficientPoints
}

func needPoints(op string, need, have int) error {
	if have >= need {
		return nil
	}
	return &PointCountError{Op: op, Need: need, Have: have}
}
