// SPDX-License-Identifier: Unlicense OR MIT

package geom

import "github.com/pbdeuchler/pathfinder/f32"

// PathEventKind is the shape of one PathEvent.
type PathEventKind uint8

const (
	MoveTo PathEventKind = iota
	LineTo
	QuadraticTo
	CubicTo
	Close
)

// PathEvent is one step of an external path description: a MoveTo/
// LineTo/QuadraticTo/CubicTo/Close, as produced by an SVG-style path
// builder. To is unused for Close; Ctrl0 is unused except for
// QuadraticTo and CubicTo; Ctrl1 is unused except for CubicTo.
type PathEvent struct {
	Kind         PathEventKind
	Ctrl0, Ctrl1 f32.Point
	To           f32.Point
}

// PathEventSource yields PathEvents one at a time.
type PathEventSource interface {
	Next() (PathEvent, bool)
}

// SegmentSource yields Segments one at a time. It is the common
// interface threaded through the preprocessing pipeline: each stage
// (events-to-segments, transform, Y-monotone split) both consumes and
// produces a SegmentSource, so stages compose by wrapping.
type SegmentSource interface {
	Next() (Segment, bool)
}

// segmentIter turns a PathEventSource into a SegmentSource, carrying
// subpath state across MoveTo/Close the way spec'd: MoveTo emits no
// segment itself, FIRST_IN_SUBPATH is set on the first segment after
// it, and Close synthesizes a line back to the subpath's start.
type segmentIter struct {
	src PathEventSource

	current      f32.Point
	subpathStart f32.Point
	firstPending bool
}

// EventsToSegments adapts a PathEventSource into a SegmentSource.
func EventsToSegments(src PathEventSource) SegmentSource {
	return &segmentIter{src: src}
}

func (it *segmentIter) Next() (Segment, bool) {
	for {
		ev, ok := it.src.Next()
		if !ok {
			return Segment{}, false
		}
		switch ev.Kind {
		case MoveTo:
			it.current = ev.To
			it.subpathStart = ev.To
			it.firstPending = true
		case LineTo:
			seg := it.tag(NewLineSegment(it.current, ev.To))
			it.current = ev.To
			return seg, true
		case QuadraticTo:
			seg := it.tag(NewQuadraticSegment(it.current, ev.Ctrl0, ev.To))
			it.current = ev.To
			return seg, true
		case CubicTo:
			seg := it.tag(NewCubicSegment(it.current, ev.Ctrl0, ev.Ctrl1, ev.To))
			it.current = ev.To
			return seg, true
		case Close:
			seg := it.tag(NewLineSegment(it.current, it.subpathStart))
			seg.Flags |= ClosesSubpath
			it.current = it.subpathStart
			return seg, true
		}
	}
}

func (it *segmentIter) tag(seg Segment) Segment {
	if it.firstPending {
		seg.Flags |= FirstInSubpath
		it.firstPending = false
	}
	return seg
}

// transformIter applies an affine transform to every meaningful point
// of each segment it passes through.
type transformIter struct {
	src SegmentSource
	t   f32.Transform2D
}

// TransformSegments wraps src, applying t to every segment's baseline
// and (where the segment's kind requires them) control points.
func TransformSegments(src SegmentSource, t f32.Transform2D) SegmentSource {
	return &transformIter{src: src, t: t}
}

func (it *transformIter) Next() (Segment, bool) {
	seg, ok := it.src.Next()
	if !ok {
		return Segment{}, false
	}
	seg.Baseline.From = it.t.Transform(seg.Baseline.From)
	seg.Baseline.To = it.t.Transform(seg.Baseline.To)
	if seg.IsQuadratic() || seg.IsCubic() {
		seg.Ctrl.From = it.t.Transform(seg.Ctrl.From)
	}
	if seg.IsCubic() {
		seg.Ctrl.To = it.t.Transform(seg.Ctrl.To)
	}
	return seg, true
}

// monotonicIter elevates Quadratics to Cubic and splits any Cubic at
// its Y-extrema so every emitted segment is Y-monotone.
type monotonicIter struct {
	src     SegmentSource
	pending []Segment
}

// MonotonicSegments wraps src, splitting curved segments so that every
// segment it yields is Y-monotone. Lines pass through unchanged.
func MonotonicSegments(src SegmentSource) SegmentSource {
	return &monotonicIter{src: src}
}

func (it *monotonicIter) Next() (Segment, bool) {
	for len(it.pending) == 0 {
		seg, ok := it.src.Next()
		if !ok {
			return Segment{}, false
		}
		it.pending = splitMonotone(seg)
	}
	seg := it.pending[0]
	it.pending = it.pending[1:]
	return seg, true
}

// splitMonotone returns seg's Y-monotone pieces, left to right in t.
func splitMonotone(seg Segment) []Segment {
	if seg.IsLine() {
		return []Segment{seg}
	}
	cubic := seg
	if seg.IsQuadratic() {
		cubic = seg.ToCubic()
	}
	roots := cubic.YExtrema()
	switch len(roots) {
	case 0:
		return []Segment{cubic}
	case 1:
		left, right := cubic.Split(roots[0])
		return []Segment{left, right}
	case 2:
		t0, t1 := roots[0], roots[1]
		leftAll, right := cubic.Split(t1)
		leftLeft, leftRight := leftAll.Split(t0 / t1)
		return []Segment{leftLeft, leftRight, right}
	default:
		panic("geom: more than two y-extrema for a cubic")
	}
}

// SegmentsToOutline consumes src to completion and assembles an
// Outline: a new Contour starts on FIRST_IN_SUBPATH and the current
// one closes on CLOSES_SUBPATH. The closing segment's destination is
// never re-appended as a point; it is always the contour's first
// point, recovered implicitly by Contour's cyclic indexing.
func SegmentsToOutline(src SegmentSource) Outline {
	var out Outline
	var cur Contour
	open := false

	flush := func() {
		if open && cur.Len() > 0 {
			out.PushContour(cur)
		}
		cur = Contour{}
		open = false
	}

	for {
		seg, ok := src.Next()
		if !ok {
			break
		}
		if seg.Flags&FirstInSubpath != 0 {
			flush()
			cur.Push(seg.Baseline.From, 0)
			open = true
		}
		if seg.IsQuadratic() {
			cur.Push(seg.Ctrl.From, ControlPoint0)
		} else if seg.IsCubic() {
			cur.Push(seg.Ctrl.From, ControlPoint0)
			cur.Push(seg.Ctrl.To, ControlPoint1)
		}
		closes := seg.Flags&ClosesSubpath != 0
		if !closes {
			cur.Push(seg.Baseline.To, 0)
		}
		if closes {
			flush()
		}
	}
	flush()
	return out
}
