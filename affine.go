package bezier

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// so that (A * B) * v == A * (B * v). Renderers use it to map curve space
// onto pixels.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Mul returns the composition aff * o, which applies o first.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale returns a transform that applies aff, then scales.
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate returns a transform that applies aff, then translates by v.
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// FitRect returns a transform that maps src into dst uniformly, preserving
// the aspect ratio and centering src in dst. A degenerate src (zero width
// or height) is scaled by the other dimension, or by 1 if both are zero.
func FitRect(src, dst Rect) Affine {
	src, dst = src.Abs(), dst.Abs()
	sw, sh := src.Width(), src.Height()
	var s float64
	switch {
	case sw > 0 && sh > 0:
		s = min(dst.Width()/sw, dst.Height()/sh)
	case sw > 0:
		s = dst.Width() / sw
	case sh > 0:
		s = dst.Height() / sh
	default:
		s = 1
	}
	c := src.Center()
	return Translate(Vec2(c).Negate()).
		ThenScale(s, s).
		ThenTranslate(Vec2(dst.Center()))
}
