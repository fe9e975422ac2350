// SPDX-License-Identifier: Unlicense OR MIT

// Package geom holds the float32 geometry the tiler sweeps over:
// line segments, cubic/quadratic Bézier segments, and the Outline/
// Contour model they assemble into. It also hosts the lazy segment
// producer chain (path events -> segments -> transform -> Y-monotone
// split) and the small sorted-vector container the sweep uses for its
// endpoint queue and active-edge set.
package geom

import (
	"math"

	"github.com/pbdeuchler/pathfinder/f32"
)

// Tile dimensions in pixels. QuantizeSegment's packed format stores a
// 4-bit integer tile-local coordinate (clamped at quantizeMax), which
// also assumes 16.
const (
	TileWidth  = 16
	TileHeight = 16
)

// LineSegment is an ordered pair of points.
type LineSegment struct {
	From, To f32.Point
}

// MinY returns the lesser of the two endpoint Y coordinates.
func (l LineSegment) MinY() float32 {
	if l.From.Y < l.To.Y {
		return l.From.Y
	}
	return l.To.Y
}

// MaxY returns the greater of the two endpoint Y coordinates.
func (l LineSegment) MaxY() float32 {
	if l.From.Y > l.To.Y {
		return l.From.Y
	}
	return l.To.Y
}

// UpperPoint returns the endpoint with the lower Y coordinate, the point
// the sweep encounters first. Ties favor To, matching the tiebreak the
// sweep uses when initializing an active edge's crossing point.
func (l LineSegment) UpperPoint() f32.Point {
	if l.From.Y < l.To.Y {
		return l.From
	}
	return l.To
}

// YWinding returns +1 if the segment runs downward (From.Y < To.Y), else -1.
func (l LineSegment) YWinding() int {
	if l.From.Y < l.To.Y {
		return 1
	}
	return -1
}

// SolveYForX returns the Y coordinate at which the line crosses the
// given X, by linear interpolation. The line must not be vertical.
func (l LineSegment) SolveYForX(x float32) float32 {
	dx := l.To.X - l.From.X
	if dx == 0 {
		return l.From.Y
	}
	t := (x - l.From.X) / dx
	return l.From.Y + t*(l.To.Y-l.From.Y)
}

// SplitAtY splits the segment at the given Y, returning the upper piece
// (From to the split point) and the lower piece (the split point to To).
// Precondition: From.Y <= To.Y <= y is not required, but From.Y <= To.Y
// must hold (the sweep only calls this on edges already oriented downward).
func (l LineSegment) SplitAtY(y float32) (upper, lower LineSegment) {
	dy := l.To.Y - l.From.Y
	var t float32
	if dy != 0 {
		t = (y - l.From.Y) / dy
	}
	mid := f32.Point{
		X: l.From.X + t*(l.To.X-l.From.X),
		Y: y,
	}
	return LineSegment{From: l.From, To: mid}, LineSegment{From: mid, To: l.To}
}

// Reversed returns the segment with its endpoints swapped.
func (l LineSegment) Reversed() LineSegment {
	return LineSegment{From: l.To, To: l.From}
}

// Orient returns l unchanged if w >= 0, else l.Reversed(). Calling it
// twice with the same sign is idempotent; with opposite signs it
// undoes the prior orientation.
func (l LineSegment) Orient(w int) LineSegment {
	if w >= 0 {
		return l
	}
	return l.Reversed()
}

// quantizeMax is the inclusive upper clamp applied to quantized fill
// coordinates: 15 + 255/256 in 4.8 fixed point.
const quantizeMax = 0x0fff

// QuantizeSegment converts a tile-local float32 segment into the packed
// fixed-point representation consumed by the wire format: each endpoint
// becomes a 4-bit integer part (packed into px) and an 8-bit fractional
// part (packed into subpx), after scaling by 256 and subtracting the
// tile's pixel origin. Only the upper bound is clamped; this mirrors the
// source tiler's behavior (see spec §4.3 and §9) — negative results are
// preserved and wrap around when interpreted as unsigned.
func QuantizeSegment(seg LineSegment, tileX, tileY int16) (px uint16, subpx uint32) {
	originX := float32(int32(tileX) * TileWidth * 256)
	originY := float32(int32(tileY) * TileHeight * 256)

	fx0 := clampMax(round(seg.From.X*256) - originX)
	fy0 := clampMax(round(seg.From.Y*256) - originY)
	fx1 := clampMax(round(seg.To.X*256) - originX)
	fy1 := clampMax(round(seg.To.Y*256) - originY)

	x0, y0, x1, y1 := uint32(int32(fx0)), uint32(int32(fy0)), uint32(int32(fx1)), uint32(int32(fy1))

	px = uint16(x0>>8&0xf) | uint16(y0>>8&0xf)<<4 | uint16(x1>>8&0xf)<<8 | uint16(y1>>8&0xf)<<12
	subpx = (x0 & 0xff) | (y0&0xff)<<8 | (x1&0xff)<<16 | (y1&0xff)<<24
	return px, subpx
}

func clampMax(v float32) float32 {
	if v > quantizeMax {
		return quantizeMax
	}
	return v
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
