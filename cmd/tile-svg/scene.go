// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
	"github.com/pbdeuchler/pathfinder/tiler"
)

// Paint is the per-object styling; solid fill color only, per this
// core's Non-goals (no gradients or patterns).
type Paint struct {
	Color tiler.ColorU
}

// PathObject is one path in paint order: its outline-producing event
// source, its bounds, and which Paint it is filled with.
type PathObject struct {
	Events geom.PathEventSource
	Bounds f32.Rectangle
	Paint  int
}

// Scene is a flat object list plus a deduplicated paint table, mirroring
// the original driver's Scene/paint_cache split so PushPaint can be
// called repeatedly with the same color across many objects without
// growing the shader table.
type Scene struct {
	ViewBox f32.Rectangle
	Objects []PathObject
	Paints  []Paint

	paintIndex map[tiler.ColorU]int
}

// NewScene creates an empty Scene scoped to viewBox.
func NewScene(viewBox f32.Rectangle) *Scene {
	return &Scene{ViewBox: viewBox, paintIndex: make(map[tiler.ColorU]int)}
}

// PushPaint returns the index of a Paint for color, reusing an
// existing entry if one with the same color already exists.
func (s *Scene) PushPaint(color tiler.ColorU) int {
	if i, ok := s.paintIndex[color]; ok {
		return i
	}
	i := len(s.Paints)
	s.Paints = append(s.Paints, Paint{Color: color})
	s.paintIndex[color] = i
	return i
}

// PushObject appends a path to the scene, filled with the paint at
// paintIndex (as returned by PushPaint).
func (s *Scene) PushObject(events geom.PathEventSource, bounds f32.Rectangle, paintIndex int) {
	s.Objects = append(s.Objects, PathObject{Events: events, Bounds: bounds, Paint: paintIndex})
}

// shaders returns the scene's Paint table as tiler.ObjectShaders, in
// the same order, ready to index by PathObject.Paint.
func (s *Scene) shaders() []tiler.ObjectShader {
	out := make([]tiler.ObjectShader, len(s.Paints))
	for i, p := range s.Paints {
		out[i] = tiler.ObjectShader{FillColor: p.Color}
	}
	return out
}

// buildInputs runs every object's events through the standard
// segment-preprocessing pipeline (events → segments → Y-monotone
// split → Outline) and returns tiler.ObjectInputs ready for
// BuildSequential/BuildParallel. Each object's tiling bounds are its
// own outline bounds intersected with the scene's view box; an object
// whose outline has no contours uses obj.Bounds instead.
func (s *Scene) buildInputs() ([]tiler.ObjectInput, []*geom.Outline) {
	inputs := make([]tiler.ObjectInput, len(s.Objects))
	outlines := make([]*geom.Outline, len(s.Objects))
	for i, obj := range s.Objects {
		segs := geom.MonotonicSegments(geom.EventsToSegments(obj.Events))
		outline := geom.SegmentsToOutline(segs)
		outlines[i] = &outline

		bounds := obj.Bounds
		if len(outline.Contours) > 0 {
			bounds = outline.Bounds.Intersect(s.ViewBox)
		}
		inputs[i] = tiler.ObjectInput{
			Outline: &outline,
			Bounds:  bounds,
			Shader:  uint16(obj.Paint),
		}
	}
	return inputs, outlines
}
