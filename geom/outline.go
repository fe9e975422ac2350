// SPDX-License-Identifier: Unlicense OR MIT

package geom

import "github.com/pbdeuchler/pathfinder/f32"

// PointFlags tags a stored Contour point as a control point. A point
// with neither bit set is an endpoint.
type PointFlags uint8

const (
	ControlPoint0 PointFlags = 1 << iota
	ControlPoint1
)

// Contour is a cyclic sequence of points: endpoints and the control
// points between them, interleaved in traversal order. The segment
// joining the last endpoint back to the first is stored like any
// other, so Contour needs no separate "closing" representation.
type Contour struct {
	Points []f32.Point
	Flags  []PointFlags
}

// Push appends a point with the given flags.
func (c *Contour) Push(p f32.Point, flags PointFlags) {
	c.Points = append(c.Points, p)
	c.Flags = append(c.Flags, flags)
}

// Len returns the number of stored points (endpoints and controls).
func (c *Contour) Len() int { return len(c.Points) }

// IsEndpoint reports whether the point at i carries no control flags.
func (c *Contour) IsEndpoint(i int) bool { return c.Flags[i] == 0 }

// NextEndpointIndex returns the index of the next endpoint after i,
// wrapping cyclically. i must itself be an endpoint index.
func (c *Contour) NextEndpointIndex(i int) int {
	n := c.Len()
	j := (i + 1) % n
	for !c.IsEndpoint(j) {
		j = (j + 1) % n
	}
	return j
}

// PrevEndpointIndex returns the index of the endpoint before i,
// wrapping cyclically. i must itself be an endpoint index.
func (c *Contour) PrevEndpointIndex(i int) int {
	n := c.Len()
	j := (i - 1 + n) % n
	for !c.IsEndpoint(j) {
		j = (j - 1 + n) % n
	}
	return j
}

// SegmentAfter builds the Segment from the endpoint at i to the next
// endpoint, inferring Line/Quadratic/Cubic from however many control
// points lie between them.
func (c *Contour) SegmentAfter(i int) Segment {
	n := c.Len()
	from := c.Points[i]
	var ctrl [2]f32.Point
	nctrl := 0
	j := (i + 1) % n
	for !c.IsEndpoint(j) {
		if nctrl < 2 {
			ctrl[nctrl] = c.Points[j]
		}
		nctrl++
		j = (j + 1) % n
	}
	to := c.Points[j]
	switch nctrl {
	case 0:
		return NewLineSegment(from, to)
	case 1:
		return NewQuadraticSegment(from, ctrl[0], to)
	case 2:
		return NewCubicSegment(from, ctrl[0], ctrl[1], to)
	default:
		panic("geom: more than two control points between endpoints")
	}
}

// SegmentBefore builds the Segment from the endpoint before i to i.
func (c *Contour) SegmentBefore(i int) Segment {
	return c.SegmentAfter(c.PrevEndpointIndex(i))
}

// Outline is an ordered list of Contours plus their combined bounds.
type Outline struct {
	Contours []Contour
	Bounds   f32.Rectangle

	hasBounds bool
}

// PushContour appends a contour and folds its points into Bounds.
func (o *Outline) PushContour(c Contour) {
	for _, p := range c.Points {
		o.extend(p)
	}
	o.Contours = append(o.Contours, c)
}

func (o *Outline) extend(p f32.Point) {
	if !o.hasBounds {
		o.Bounds = f32.Rectangle{Min: p, Max: p}
		o.hasBounds = true
		return
	}
	o.Bounds.Min = o.Bounds.Min.Min(p)
	o.Bounds.Max = o.Bounds.Max.Max(p)
}

// PointIndex packs a (contour, point) pair into 12 and 20 bits
// respectively. Plain numeric ordering on PointIndex matches the
// lexicographic order on (contour, point), which is what the
// endpoint queue's ordering relies on.
type PointIndex uint32

// NewPointIndex packs contour and point indices into a PointIndex. It
// panics if either index does not fit its field.
func NewPointIndex(contour, point int) PointIndex {
	if contour < 0 || contour > 0xfff || point < 0 || point > 0xfffff {
		panic("geom: point index overflow")
	}
	return PointIndex(uint32(contour&0xfff)<<20 | uint32(point&0xfffff))
}

// Contour returns the contour index packed into p.
func (p PointIndex) Contour() int { return int(p >> 20) }

// Point returns the point index packed into p.
func (p PointIndex) Point() int { return int(p & 0xfffff) }
