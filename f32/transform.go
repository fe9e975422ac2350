// SPDX-License-Identifier: Unlicense OR MIT

package f32

// Transform2D is a row-major 2x3 affine transform applied to row
// vectors:
//
//	[X' Y'] = [X Y] * | M11 M12 | + [M31 M32]
//	                  | M21 M22 |
//
// Transform2D{} (the zero value) is not the identity; use Identity.
type Transform2D struct {
	M11, M12 float32
	M21, M22 float32
	M31, M32 float32
}

// Identity is the identity transform.
var Identity = Transform2D{M11: 1, M22: 1}

// FromScale builds a transform that scales by s about the origin.
func FromScale(s Point) Transform2D {
	return Transform2D{M11: s.X, M22: s.Y}
}

// Transform applies t to p.
func (t Transform2D) Transform(p Point) Point {
	return Point{
		X: p.X*t.M11 + p.Y*t.M21 + t.M31,
		Y: p.X*t.M12 + p.Y*t.M22 + t.M32,
	}
}

// PostMul returns the transform that applies t, then other: for every
// point p, other.Transform(t.Transform(p)) == t.PostMul(other).Transform(p).
func (t Transform2D) PostMul(other Transform2D) Transform2D {
	translate := other.Transform(Point{X: t.M31, Y: t.M32})
	return Transform2D{
		M11: t.M11*other.M11 + t.M12*other.M21,
		M12: t.M11*other.M12 + t.M12*other.M22,
		M21: t.M21*other.M11 + t.M22*other.M21,
		M22: t.M21*other.M12 + t.M22*other.M22,
		M31: translate.X,
		M32: translate.Y,
	}
}

// PreMul returns the transform that applies other, then t.
func (t Transform2D) PreMul(other Transform2D) Transform2D {
	return other.PostMul(t)
}
