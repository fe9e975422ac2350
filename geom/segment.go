// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"math"

	"github.com/pbdeuchler/pathfinder/f32"
)

// SegmentKind distinguishes the four shapes a Segment's baseline/ctrl
// pair can describe.
type SegmentKind uint8

const (
	SegmentNone SegmentKind = iota
	SegmentLine
	SegmentQuadratic
	SegmentCubic
)

// SegmentFlags records a segment's position within its subpath.
type SegmentFlags uint8

const (
	FirstInSubpath SegmentFlags = 1 << iota
	ClosesSubpath
)

// Segment is one edge of a path: a baseline from Baseline.From to
// Baseline.To, with Ctrl holding the Bézier control points (unused for
// Line, only Ctrl.From meaningful for Quadratic, both meaningful for
// Cubic).
type Segment struct {
	Baseline LineSegment
	Ctrl     LineSegment
	Kind     SegmentKind
	Flags    SegmentFlags
}

// NewLineSegment builds a Line segment from two endpoints.
func NewLineSegment(from, to f32.Point) Segment {
	return Segment{Baseline: LineSegment{From: from, To: to}, Kind: SegmentLine}
}

// NewQuadraticSegment builds a Quadratic segment. Unlike some tilers'
// internal representations, the kind here is the honest Quadratic, not
// a pre-elevated Cubic: callers that need the cubic form call ToCubic.
func NewQuadraticSegment(from, ctrl, to f32.Point) Segment {
	return Segment{
		Baseline: LineSegment{From: from, To: to},
		Ctrl:     LineSegment{From: ctrl},
		Kind:     SegmentQuadratic,
	}
}

// NewCubicSegment builds a Cubic segment from its baseline and both
// control points.
func NewCubicSegment(from, ctrl0, ctrl1, to f32.Point) Segment {
	return Segment{
		Baseline: LineSegment{From: from, To: to},
		Ctrl:     LineSegment{From: ctrl0, To: ctrl1},
		Kind:     SegmentCubic,
	}
}

func (s Segment) IsNone() bool      { return s.Kind == SegmentNone }
func (s Segment) IsLine() bool      { return s.Kind == SegmentLine }
func (s Segment) IsQuadratic() bool { return s.Kind == SegmentQuadratic }
func (s Segment) IsCubic() bool     { return s.Kind == SegmentCubic }

// ToCubic returns s with its control points elevated to cubic degree.
// Lines and cubics pass through unchanged.
func (s Segment) ToCubic() Segment {
	if !s.IsQuadratic() {
		return s
	}
	p0, p1, p2 := s.Baseline.From, s.Ctrl.From, s.Baseline.To
	ctrl0 := p0.Add(p1.Sub(p0).Mul(2.0 / 3.0))
	ctrl1 := p2.Add(p1.Sub(p2).Mul(2.0 / 3.0))
	out := s
	out.Ctrl = LineSegment{From: ctrl0, To: ctrl1}
	out.Kind = SegmentCubic
	return out
}

// Reversed returns s with its baseline and control points reversed in
// traversal order.
func (s Segment) Reversed() Segment {
	out := s
	out.Baseline = s.Baseline.Reversed()
	if s.IsCubic() {
		out.Ctrl = s.Ctrl.Reversed()
	} else if s.IsQuadratic() {
		out.Ctrl = s.Ctrl
	}
	return out
}

// Orient returns s unchanged if w >= 0, else s.Reversed().
func (s Segment) Orient(w int) Segment {
	if w >= 0 {
		return s
	}
	return s.Reversed()
}

const (
	flattenTolerance = 0.1
	flattenEpsilon   = 0.005
	extremaEpsilon   = 1e-3
)

// lerp returns the point t of the way from a to b.
func lerp(a, b f32.Point, t float32) f32.Point {
	return f32.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Split divides a Cubic segment at parameter t into a left and right
// piece using the de Casteljau construction. FirstInSubpath carries
// onto the left piece only, ClosesSubpath onto the right piece only.
func (s Segment) Split(t float32) (left, right Segment) {
	p0, p1, p2, p3 := s.Baseline.From, s.Ctrl.From, s.Ctrl.To, s.Baseline.To

	p01 := lerp(p0, p1, t)
	p12 := lerp(p1, p2, t)
	p23 := lerp(p2, p3, t)
	p012 := lerp(p01, p12, t)
	p123 := lerp(p12, p23, t)
	p0123 := lerp(p012, p123, t)

	left = Segment{
		Baseline: LineSegment{From: p0, To: p0123},
		Ctrl:     LineSegment{From: p01, To: p012},
		Kind:     SegmentCubic,
		Flags:    s.Flags &^ ClosesSubpath,
	}
	right = Segment{
		Baseline: LineSegment{From: p0123, To: p3},
		Ctrl:     LineSegment{From: p123, To: p23},
		Kind:     SegmentCubic,
		Flags:    s.Flags &^ FirstInSubpath,
	}
	return left, right
}

// YExtrema returns the roots, in ascending order, of dy/dt = 0 for a
// Cubic segment's y-component that lie inside the open interval
// (extremaEpsilon, 1-extremaEpsilon); roots outside it are dropped.
// Returns zero, one, or two values.
func (s Segment) YExtrema() []float32 {
	y0, y1, y2, y3 := s.Baseline.From.Y, s.Ctrl.From.Y, s.Ctrl.To.Y, s.Baseline.To.Y

	// dy/dt of a cubic Bézier is a quadratic in t:
	// a*t^2 + b*t + c, with
	a := -y0 + 3*y1 - 3*y2 + y3
	b := 2 * (y0 - 2*y1 + y2)
	c := -y0 + y1

	var roots []float32
	const eps = 1e-6
	switch {
	case math.Abs(float64(a)) < eps:
		if math.Abs(float64(b)) >= eps {
			roots = append(roots, -c/b)
		}
	default:
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := float32(math.Sqrt(float64(disc)))
			roots = append(roots, (-b-sq)/(2*a), (-b+sq)/(2*a))
		}
	}

	out := roots[:0]
	for _, t := range roots {
		if t > extremaEpsilon && t < 1-extremaEpsilon {
			out = append(out, t)
		}
	}
	if len(out) == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// FlattenOnce tests whether a Cubic segment is flat enough, within
// flattenTolerance, to be treated as a single line from its baseline
// endpoints. If so it returns ok=false and the caller should stop
// subdividing. Otherwise it splits the segment at the estimated next
// flattening parameter and returns the right half, leaving the caller
// to continue with that remainder.
func (s Segment) FlattenOnce() (remainder Segment, ok bool) {
	p0, p1, p2 := s.Baseline.From, s.Ctrl.From, s.Ctrl.To

	v01 := p1.Sub(p0)
	v02 := p2.Sub(p0)
	det := v01.X*v02.Y - v01.Y*v02.X
	if det == 0 {
		return Segment{}, false
	}

	normV01 := v01.X*v01.X + v01.Y*v01.Y
	s2inv := float32(math.Sqrt(float64(normV01))) / det

	t := 2 * float32(math.Sqrt(float64(flattenTolerance/3*math.Abs(float64(s2inv)))))
	if t == 0 || t >= 1-flattenEpsilon {
		return Segment{}, false
	}

	_, right := s.Split(t)
	return right, true
}
