package bezier

import "math"

// Basis returns the Bernstein basis polynomial
//
//	C(n, i) · tⁱ · (1−t)ⁿ⁻ⁱ
//
// which weighs control point i of a degree n Bézier curve at parameter t.
//
// By convention Basis(0, 0, t) is 1. Indices outside [0, n] and negative
// degrees yield 0 rather than an error, which lets the derivative
// recurrence reach past the ends of the index range without special cases.
func Basis(n, i int, t float64) float64 {
	if n < 0 || i < 0 || i > n {
		return 0
	}
	if n == 0 {
		return 1
	}
	if n > maxDirectDegree {
		return logBasis(n, i, t)
	}
	return binomial(n, i) * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
}

// maxDirectDegree is the largest degree for which Basis multiplies the
// binomial coefficient directly. C(n, n/2) overflows float64 from n = 1029
// on.
const maxDirectDegree = 1000

// logBasis evaluates the basis polynomial in log space, for degrees whose
// binomial coefficients don't fit in a float64. Terms too small to
// represent underflow to 0.
func logBasis(n, i int, t float64) float64 {
	switch t {
	case 0:
		if i == 0 {
			return 1
		}
		return 0
	case 1:
		if i == n {
			return 1
		}
		return 0
	}
	ln, _ := math.Lgamma(float64(n + 1))
	li, _ := math.Lgamma(float64(i + 1))
	lk, _ := math.Lgamma(float64(n - i + 1))
	return math.Exp(ln - li - lk + float64(i)*math.Log(t) + float64(n-i)*math.Log1p(-t))
}

// BasisDerivative returns the order-th derivative of [Basis](n, i, t) with
// respect to t.
//
// It uses the recurrence
//
//	d/dt B(n, i) = n · (B(n−1, i−1) − B(n−1, i))
//
// applied order times, which expands to the falling factorial
// n·(n−1)·…·(n−order+1) times an alternating binomial sum of degree
// n−order basis values. Order 0 is Basis itself. The result is 0 when n is
// smaller than order, as a polynomial of degree n has no non-zero
// derivatives beyond the n-th.
//
// BasisDerivative panics if order is negative.
func BasisDerivative(n, i int, t float64, order int) float64 {
	if order < 0 {
		panic("bezier: negative derivative order")
	}
	if order == 0 {
		return Basis(n, i, t)
	}
	if n < order {
		return 0
	}
	return float64(n) * (BasisDerivative(n-1, i-1, t, order-1) - BasisDerivative(n-1, i, t, order-1))
}

// binomial returns C(n, k) as a float64. It is only called with 0 ≤ k ≤ n.
func binomial(n, k int) float64 {
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for j := 1; j <= k; j++ {
		r = r * float64(n-k+j) / float64(j)
	}
	return math.Round(r)
}

// clampUnit clamps t into [0, 1]. NaN is mapped to 0.
func clampUnit(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return min(max(t, 0), 1)
}
