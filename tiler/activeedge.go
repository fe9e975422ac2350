// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// ActiveEdge is a Y-monotone segment currently crossing, or about to
// cross, the sweep's current strip. Segment is always oriented so its
// baseline runs top to bottom (From.Y <= To.Y); Winding separately
// records the sign of the segment's original (pre-orientation)
// direction, which is what the nonzero winding rule accumulates.
type ActiveEdge struct {
	Segment  geom.Segment
	Winding  int
	Crossing f32.Point
}

func queuedEndpointLess(a, b queuedEndpoint) bool {
	if a.Y != b.Y {
		return a.Y > b.Y
	}
	return a.PointIndex > b.PointIndex
}

func activeEdgeLess(a, b ActiveEdge) bool {
	return a.Crossing.X < b.Crossing.X
}

// queuedEndpoint is one entry in the endpoint queue: a contour point
// plus its y, so the queue can order purely on (y, PointIndex) without
// re-deriving y from the outline on every comparison.
type queuedEndpoint struct {
	PointIndex geom.PointIndex
	Y          float32
}

// above reports whether point a is "logically above" point b: a is
// swept before b, using strictly-lower-y-or-equal-y-lower-index as a
// deterministic tiebreak.
func above(aIdx geom.PointIndex, aY float32, bIdx geom.PointIndex, bY float32) bool {
	if aY != bY {
		return aY < bY
	}
	return aIdx < bIdx
}
