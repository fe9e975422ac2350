// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"math"
	"sort"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// Tiler runs the per-object sweep over one Outline, producing a
// BuiltObject. It owns the endpoint priority queue and active-edge
// set described in the sweep's component design; both are backed by
// geom.SortedVector so they can be recycled across objects by a pool.
type Tiler struct {
	outline *geom.Outline
	built   *BuiltObject

	queue  *geom.SortedVector[queuedEndpoint]
	active *geom.SortedVector[ActiveEdge]
}

// NewTiler builds a Tiler over outline, scoped to bounds, tagged with
// shader. The endpoint queue is seeded immediately.
func NewTiler(outline *geom.Outline, bounds f32.Rectangle, shader uint16) *Tiler {
	rect := ComputeTileRect(bounds)
	t := &Tiler{
		outline: outline,
		built:   NewBuiltObject(bounds, rect, shader),
		queue:   geom.NewSortedVector(queuedEndpointLess),
		active:  geom.NewSortedVector(activeEdgeLess),
	}
	t.initQueue()
	return t
}

// Reset rebinds the Tiler to a new outline without reallocating its
// queue/active-edge backing slices, for use from a pooled tiler.
func (t *Tiler) Reset(outline *geom.Outline, bounds f32.Rectangle, shader uint16) {
	rect := ComputeTileRect(bounds)
	t.outline = outline
	t.built = NewBuiltObject(bounds, rect, shader)
	t.queue.Clear()
	t.active.Clear()
	t.initQueue()
}

// initQueue enqueues every endpoint that is a local Y-minimum: the
// point where the sweep must spawn downward-running active edges.
func (t *Tiler) initQueue() {
	for ci := range t.outline.Contours {
		c := &t.outline.Contours[ci]
		for i := 0; i < c.Len(); i++ {
			if !c.IsEndpoint(i) {
				continue
			}
			prev := c.PrevEndpointIndex(i)
			next := c.NextEndpointIndex(i)
			pi := geom.NewPointIndex(ci, i)
			prevIdx := geom.NewPointIndex(ci, prev)
			nextIdx := geom.NewPointIndex(ci, next)
			y := c.Points[i].Y
			if above(pi, y, prevIdx, c.Points[prev].Y) && above(pi, y, nextIdx, c.Points[next].Y) {
				t.queue.Push(queuedEndpoint{PointIndex: pi, Y: y})
			}
		}
	}
}

// Build runs the sweep strip by strip and returns the finished
// BuiltObject. zbuf and objectIndex are used only for the final
// culling pass that records this object's opaque solid tiles.
func (t *Tiler) Build(objectIndex int, zbuf *ZBuffer) *BuiltObject {
	rect := t.built.TileRect
	for stripY := rect.MinY; stripY < rect.MaxY; stripY++ {
		t.runStrip(stripY)
	}
	t.cull(objectIndex, zbuf)
	return t.built
}

// runStrip processes every edge live in this strip — both edges
// carried over from the previous strip and new ones spawned from the
// endpoint queue — in a single ascending-x pass, so backdrop
// accumulation sees every edge crossing the strip together.
func (t *Tiler) runStrip(stripY int16) {
	edges := t.active.Drain()
	edges = append(edges, t.spawnEdgesForStrip(stripY)...)
	sort.Slice(edges, func(i, j int) bool { return edges[i].Crossing.X < edges[j].Crossing.X })

	strip := &stripState{tileX: t.built.TileRect.MinX}
	for i := range edges {
		remainder, continues := t.processEdgeGeometry(&edges[i], stripY, strip)
		if continues {
			t.active.Push(remainder)
		}
	}
}

// spawnEdgesForStrip pops every endpoint queue entry whose y lies
// within this strip, creates an active edge for each below-neighbor,
// and enqueues the far endpoint of each.
func (t *Tiler) spawnEdgesForStrip(stripY int16) []ActiveEdge {
	limit := float32(stripY+1) * geom.TileHeight
	var spawned []ActiveEdge
	for {
		top, ok := t.queue.Peek()
		if !ok || top.Y >= limit {
			return spawned
		}
		t.queue.Pop()

		ci := top.PointIndex.Contour()
		pi := top.PointIndex.Point()
		c := &t.outline.Contours[ci]

		prev := c.PrevEndpointIndex(pi)
		next := c.NextEndpointIndex(pi)
		prevIdx := geom.NewPointIndex(ci, prev)
		nextIdx := geom.NewPointIndex(ci, next)

		if above(top.PointIndex, top.Y, prevIdx, c.Points[prev].Y) {
			seg := c.SegmentBefore(pi)
			spawned = append(spawned, t.newActiveEdge(seg))
			t.queue.Push(queuedEndpoint{PointIndex: prevIdx, Y: c.Points[prev].Y})
		}
		if above(top.PointIndex, top.Y, nextIdx, c.Points[next].Y) {
			seg := c.SegmentAfter(pi)
			spawned = append(spawned, t.newActiveEdge(seg))
			t.queue.Push(queuedEndpoint{PointIndex: nextIdx, Y: c.Points[next].Y})
		}
	}
}

func (t *Tiler) newActiveEdge(seg geom.Segment) ActiveEdge {
	w := seg.Baseline.YWinding()
	oriented := seg.Orient(w)
	return ActiveEdge{Segment: oriented, Winding: w, Crossing: oriented.Baseline.From}
}

// stripState is the x-order backdrop accumulator described in the
// component design: as edges are visited left to right, it tracks how
// far it has walked (tileX/subtileX) and the running winding number,
// emitting active fills or whole-tile backdrops for the gap before
// each edge.
type stripState struct {
	tileX    int16
	subtileX float32
	winding  int
}

// advanceTo folds in the gap between the accumulator's current
// position and the next edge crossing at absolute x, then adds w to
// the running winding.
func (s *stripState) advanceTo(b *BuiltObject, rect TileRect, tileY int16, x float32, w int) {
	segTileX := int16(math.Floor(float64(x) / geom.TileWidth))

	for s.tileX < segTileX {
		tileRightX := float32(s.tileX+1) * geom.TileWidth
		if s.winding != 0 && rect.Contains(s.tileX, tileY) {
			curX := float32(s.tileX)*geom.TileWidth + s.subtileX
			if s.subtileX > 0 {
				b.AddActiveFill(curX, tileRightX, s.winding, s.tileX, tileY)
			} else {
				b.GetTile(s.tileX, tileY).Backdrop = int16(s.winding)
			}
		}
		s.tileX++
		s.subtileX = 0
	}

	if s.winding != 0 && rect.Contains(segTileX, tileY) {
		left := float32(segTileX)*geom.TileWidth + s.subtileX
		if left != x {
			b.AddActiveFill(left, x, s.winding, segTileX, tileY)
		}
	}
	s.tileX = segTileX
	s.subtileX = x - float32(segTileX)*geom.TileWidth
	s.winding += w
}

// processEdgeGeometry runs one edge's backdrop contribution for this
// strip, then rasterizes the edge itself (process_line_segment for
// lines, iterated flatten_once for cubics), returning the edge's
// remainder if it continues past this strip.
func (t *Tiler) processEdgeGeometry(ae *ActiveEdge, stripY int16, strip *stripState) (ActiveEdge, bool) {
	strip.advanceTo(t.built, t.built.TileRect, stripY, ae.Crossing.X, ae.Winding)

	if ae.Segment.IsLine() {
		line := geom.LineSegment{From: ae.Crossing, To: ae.Segment.Baseline.To}
		rem, continues := t.processLineSegment(line, stripY)
		if !continues {
			return ActiveEdge{}, false
		}
		return ActiveEdge{Segment: geom.NewLineSegment(rem.From, rem.To), Winding: ae.Winding, Crossing: rem.From}, true
	}

	cur := ae.Segment.ToCubic()
	if ae.Crossing.Y < cur.Baseline.From.Y {
		lead := geom.LineSegment{From: ae.Crossing, To: cur.Baseline.From}
		rem, continues := t.processLineSegment(lead, stripY)
		if continues {
			return ActiveEdge{Segment: cur, Winding: ae.Winding, Crossing: rem.From}, true
		}
	}

	for {
		remainder, ok := cur.FlattenOnce()
		if !ok {
			line := geom.LineSegment{From: cur.Baseline.From, To: cur.Baseline.To}
			rem, continues := t.processLineSegment(line, stripY)
			if continues {
				return ActiveEdge{Segment: geom.NewLineSegment(rem.From, cur.Baseline.To), Winding: ae.Winding, Crossing: rem.From}, true
			}
			return ActiveEdge{}, false
		}
		chord := geom.LineSegment{From: cur.Baseline.From, To: remainder.Baseline.From}
		rem, continues := t.processLineSegment(chord, stripY)
		if continues {
			return ActiveEdge{Segment: remainder, Winding: ae.Winding, Crossing: rem.From}, true
		}
		cur = remainder
	}
}

// processLineSegment implements process_line_segment: if line lies
// wholly within this strip, it is walked column by column and
// consumed (returns ok=false); otherwise it is split at the strip's
// bottom edge, the upper part is emitted now, and the lower part is
// returned for the caller to continue with next strip.
func (t *Tiler) processLineSegment(line geom.LineSegment, stripY int16) (geom.LineSegment, bool) {
	stripBottom := float32(stripY+1) * geom.TileHeight
	if line.MaxY() <= stripBottom {
		t.emitLineFills(line, stripY)
		return geom.LineSegment{}, false
	}
	upper, lower := line.SplitAtY(stripBottom)
	t.emitLineFills(upper, stripY)
	return lower, true
}

// emitLineFills walks the tile columns line crosses, in traversal
// order, clipping at each vertical tile boundary via SolveYForX, and
// records one fill per column.
func (t *Tiler) emitLineFills(line geom.LineSegment, stripY int16) {
	if line.From == line.To {
		return
	}
	cur := line
	for {
		if cur.From.X == cur.To.X {
			tileX := int16(math.Floor(float64(cur.From.X) / geom.TileWidth))
			t.built.AddFill(cur, tileX, stripY)
			return
		}
		tileX := int16(math.Floor(float64(cur.From.X) / geom.TileWidth))
		increasing := cur.To.X > cur.From.X
		var boundary float32
		if increasing {
			boundary = float32(tileX+1) * geom.TileWidth
			if boundary >= cur.To.X {
				t.built.AddFill(cur, tileX, stripY)
				return
			}
		} else {
			// A leftward line starting exactly on a tile's left edge
			// belongs to the tile on the other side of that edge.
			if float32(tileX)*geom.TileWidth == cur.From.X {
				tileX--
			}
			boundary = float32(tileX) * geom.TileWidth
			if boundary <= cur.To.X {
				t.built.AddFill(cur, tileX, stripY)
				return
			}
		}
		y := cur.SolveYForX(boundary)
		split := f32.Pt(boundary, y)
		t.built.AddFill(geom.LineSegment{From: cur.From, To: split}, tileX, stripY)
		cur = geom.LineSegment{From: split, To: cur.To}
	}
}

// cull folds this object's opaque solid tiles into zbuf. A solid tile
// with zero backdrop is an empty interior and never becomes opaque.
func (t *Tiler) cull(objectIndex int, zbuf *ZBuffer) {
	t.built.SolidTiles.Iterate(func(i int) {
		tile := t.built.Tiles[i]
		if tile.Backdrop != 0 {
			zbuf.Update(tile.TileX, tile.TileY, objectIndex)
		}
	})
}
