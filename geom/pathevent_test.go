// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"testing"

	"github.com/pbdeuchler/pathfinder/f32"
)

// sliceEventSource replays a fixed slice of PathEvents.
type sliceEventSource struct {
	events []PathEvent
	i      int
}

func (s *sliceEventSource) Next() (PathEvent, bool) {
	if s.i >= len(s.events) {
		return PathEvent{}, false
	}
	ev := s.events[s.i]
	s.i++
	return ev, true
}

func squareEvents() *sliceEventSource {
	return &sliceEventSource{events: []PathEvent{
		{Kind: MoveTo, To: f32.Pt(0, 0)},
		{Kind: LineTo, To: f32.Pt(10, 0)},
		{Kind: LineTo, To: f32.Pt(10, 10)},
		{Kind: LineTo, To: f32.Pt(0, 10)},
		{Kind: Close},
	}}
}

func drainSegments(src SegmentSource) []Segment {
	var out []Segment
	for {
		seg, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, seg)
	}
}

func TestEventsToSegmentsTagsFirstAndCloses(t *testing.T) {
	segs := drainSegments(EventsToSegments(squareEvents()))
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	if segs[0].Flags&FirstInSubpath == 0 {
		t.Error("first segment should carry FirstInSubpath")
	}
	for _, s := range segs[1:3] {
		if s.Flags != 0 {
			t.Errorf("middle segment should carry no flags, got %v", s.Flags)
		}
	}
	last := segs[3]
	if last.Flags&ClosesSubpath == 0 {
		t.Error("closing segment should carry ClosesSubpath")
	}
	if last.Baseline.From != f32.Pt(0, 10) || last.Baseline.To != f32.Pt(0, 0) {
		t.Errorf("closing segment should run back to the subpath start, got %+v", last.Baseline)
	}
}

func TestEventsToSegmentsMoveToEmitsNothing(t *testing.T) {
	src := &sliceEventSource{events: []PathEvent{{Kind: MoveTo, To: f32.Pt(1, 1)}}}
	if _, ok := EventsToSegments(src).Next(); ok {
		t.Error("a lone MoveTo should not emit a segment")
	}
}

func TestTransformSegmentsAppliesToBaselineAndControls(t *testing.T) {
	src := &sliceEventSource{events: []PathEvent{
		{Kind: MoveTo, To: f32.Pt(0, 0)},
		{Kind: CubicTo, Ctrl0: f32.Pt(1, 1), Ctrl1: f32.Pt(2, 1), To: f32.Pt(3, 0)},
	}}
	segs := drainSegments(EventsToSegments(src))
	transformed := drainSegments(TransformSegments(&fixedSegmentSource{segs}, f32.FromScale(f32.Pt(2, 2))))
	if len(transformed) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(transformed))
	}
	seg := transformed[0]
	if seg.Baseline.To != f32.Pt(6, 0) {
		t.Errorf("baseline.to not scaled: %v", seg.Baseline.To)
	}
	if seg.Ctrl.From != f32.Pt(2, 2) || seg.Ctrl.To != f32.Pt(4, 2) {
		t.Errorf("control points not scaled: %+v", seg.Ctrl)
	}
}

// fixedSegmentSource replays a fixed slice of Segments.
type fixedSegmentSource struct {
	segs []Segment
}

func (f *fixedSegmentSource) Next() (Segment, bool) {
	if len(f.segs) == 0 {
		return Segment{}, false
	}
	seg := f.segs[0]
	f.segs = f.segs[1:]
	return seg, true
}

func TestMonotonicSegmentsPassesLinesThrough(t *testing.T) {
	segs := []Segment{NewLineSegment(f32.Pt(0, 0), f32.Pt(1, 1))}
	out := drainSegments(MonotonicSegments(&fixedSegmentSource{segs}))
	if len(out) != 1 || !out[0].IsLine() {
		t.Fatalf("expected the line to pass through unchanged, got %+v", out)
	}
}

func TestMonotonicSegmentsSplitsSingleHump(t *testing.T) {
	segs := []Segment{NewCubicSegment(f32.Pt(0, 0), f32.Pt(0, 1), f32.Pt(1, 1), f32.Pt(1, 0))}
	out := drainSegments(MonotonicSegments(&fixedSegmentSource{segs}))
	if len(out) != 2 {
		t.Fatalf("expected 2 monotone pieces, got %d", len(out))
	}
	if out[0].Baseline.From != f32.Pt(0, 0) {
		t.Errorf("first piece should start at the original start: %v", out[0].Baseline.From)
	}
	if out[1].Baseline.To != f32.Pt(1, 0) {
		t.Errorf("last piece should end at the original end: %v", out[1].Baseline.To)
	}
	if out[0].Baseline.To != out[1].Baseline.From {
		t.Errorf("pieces should join: %v vs %v", out[0].Baseline.To, out[1].Baseline.From)
	}
}

func TestMonotonicSegmentsElevatesQuadratic(t *testing.T) {
	segs := []Segment{NewQuadraticSegment(f32.Pt(0, 0), f32.Pt(1, 1), f32.Pt(2, 0))}
	out := drainSegments(MonotonicSegments(&fixedSegmentSource{segs}))
	for _, seg := range out {
		if seg.IsQuadratic() {
			t.Error("quadratic should have been elevated to cubic before splitting")
		}
	}
}

func TestSegmentsToOutlineBuildsClosedSquare(t *testing.T) {
	segs := drainSegments(EventsToSegments(squareEvents()))
	outline := SegmentsToOutline(&fixedSegmentSource{segs})
	if len(outline.Contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(outline.Contours))
	}
	c := outline.Contours[0]
	if c.Len() != 4 {
		t.Fatalf("expected 4 stored points (no duplicated closing point), got %d", c.Len())
	}
	want := f32.Rectangle{Min: f32.Pt(0, 0), Max: f32.Pt(10, 10)}
	if outline.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", outline.Bounds, want)
	}
	// The implicit closing segment should still be recoverable via
	// cyclic indexing: the edge after the last stored endpoint must
	// run back to the first.
	closing := c.SegmentAfter(3)
	if closing.Baseline.To != f32.Pt(0, 0) {
		t.Errorf("closing segment should return to the contour start, got %v", closing.Baseline.To)
	}
}

func TestSegmentsToOutlineMultipleSubpaths(t *testing.T) {
	src := &sliceEventSource{events: []PathEvent{
		{Kind: MoveTo, To: f32.Pt(0, 0)},
		{Kind: LineTo, To: f32.Pt(1, 0)},
		{Kind: LineTo, To: f32.Pt(1, 1)},
		{Kind: Close},
		{Kind: MoveTo, To: f32.Pt(5, 5)},
		{Kind: LineTo, To: f32.Pt(6, 5)},
		{Kind: LineTo, To: f32.Pt(6, 6)},
		{Kind: Close},
	}}
	segs := drainSegments(EventsToSegments(src))
	outline := SegmentsToOutline(&fixedSegmentSource{segs})
	if len(outline.Contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(outline.Contours))
	}
}
