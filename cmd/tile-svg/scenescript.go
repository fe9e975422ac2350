// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
	"github.com/pbdeuchler/pathfinder/tiler"
)

// ParseScript reads a "scene script": a small, line-oriented stand-in
// for an SVG document. spec.md's SVG input parser is an external
// collaborator out of scope for this core; no SVG parsing library
// exists anywhere in the retrieved example pack. This format exists
// only to drive cmd/tile-svg end to end and to exercise the same
// PathEventSource interface a real parser would produce.
//
// Grammar, one directive per line, blank lines and lines starting with
// "#" ignored:
//
//	viewbox <minx> <miny> <maxx> <maxy>
//	paint <r> <g> <b>
//	object <paint-index>
//	  move <x> <y>
//	  line <x> <y>
//	  quad <cx> <cy> <x> <y>
//	  cube <c1x> <c1y> <c2x> <c2y> <x> <y>
//	  close
//
// "object" starts a new path filled with the paint at paint-index in
// the scene's deduplicated paint table (a "paint" directive repeating
// an earlier color adds no entry); every move/line/quad/cube/close
// line until the next "object" (or EOF) belongs to it.
func ParseScript(r io.Reader) (*Scene, error) {
	scanner := bufio.NewScanner(r)
	var scene *Scene
	var events []geom.PathEvent
	var cur *PathObject
	lineNo := 0

	flush := func() {
		if cur != nil {
			cur.Events = &staticEvents{events: events}
			events = nil
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "viewbox":
			vals, err := parseFloats(fields[1:], 4)
			if err != nil {
				return nil, fmt.Errorf("scene script line %d: viewbox: %w", lineNo, err)
			}
			scene = NewScene(f32.Rectangle{Min: f32.Pt(vals[0], vals[1]), Max: f32.Pt(vals[2], vals[3])})
		case "paint":
			if scene == nil {
				return nil, fmt.Errorf("scene script line %d: paint before viewbox", lineNo)
			}
			vals, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("scene script line %d: paint: %w", lineNo, err)
			}
			scene.PushPaint(tiler.ColorU{R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2]), A: 255})
		case "object":
			if scene == nil {
				return nil, fmt.Errorf("scene script line %d: object before viewbox", lineNo)
			}
			flush()
			paintIdx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("scene script line %d: object paint index: %w", lineNo, err)
			}
			scene.Objects = append(scene.Objects, PathObject{Bounds: scene.ViewBox, Paint: paintIdx})
			cur = &scene.Objects[len(scene.Objects)-1]
			events = nil
		case "move", "line":
			if cur == nil {
				return nil, fmt.Errorf("scene script line %d: %s outside an object", lineNo, fields[0])
			}
			vals, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("scene script line %d: %s: %w", lineNo, fields[0], err)
			}
			kind := geom.LineTo
			if fields[0] == "move" {
				kind = geom.MoveTo
			}
			events = append(events, geom.PathEvent{Kind: kind, To: f32.Pt(vals[0], vals[1])})
		case "quad":
			if cur == nil {
				return nil, fmt.Errorf("scene script line %d: quad outside an object", lineNo)
			}
			vals, err := parseFloats(fields[1:], 4)
			if err != nil {
				return nil, fmt.Errorf("scene script line %d: quad: %w", lineNo, err)
			}
			events = append(events, geom.PathEvent{
				Kind:  geom.QuadraticTo,
				Ctrl0: f32.Pt(vals[0], vals[1]),
				To:    f32.Pt(vals[2], vals[3]),
			})
		case "cube":
			if cur == nil {
				return nil, fmt.Errorf("scene script line %d: cube outside an object", lineNo)
			}
			vals, err := parseFloats(fields[1:], 6)
			if err != nil {
				return nil, fmt.Errorf("scene script line %d: cube: %w", lineNo, err)
			}
			events = append(events, geom.PathEvent{
				Kind:  geom.CubicTo,
				Ctrl0: f32.Pt(vals[0], vals[1]),
				Ctrl1: f32.Pt(vals[2], vals[3]),
				To:    f32.Pt(vals[4], vals[5]),
			})
		case "close":
			if cur == nil {
				return nil, fmt.Errorf("scene script line %d: close outside an object", lineNo)
			}
			events = append(events, geom.PathEvent{Kind: geom.Close})
		default:
			return nil, fmt.Errorf("scene script line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	if scene == nil {
		return nil, fmt.Errorf("scene script: missing viewbox directive")
	}
	return scene, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// staticEvents is a geom.PathEventSource over a fixed, already-parsed
// slice of events.
type staticEvents struct {
	events []geom.PathEvent
	i      int
}

func (s *staticEvents) Next() (geom.PathEvent, bool) {
	if s.i >= len(s.events) {
		return geom.PathEvent{}, false
	}
	ev := s.events[s.i]
	s.i++
	return ev, true
}
