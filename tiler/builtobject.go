// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// BuiltObject is the per-path output of the tiler: every tile the
// object's bounds touch, every fill segment within those tiles, and a
// bitset marking which tiles remain solid (no sub-tile coverage
// variation recorded).
type BuiltObject struct {
	Bounds   f32.Rectangle
	TileRect TileRect
	Tiles    []TileObjectPrimitive
	Fills    []FillObjectPrimitive

	SolidTiles *Bitset
	Shader     uint16
}

// NewBuiltObject allocates a BuiltObject for the given bounds and
// tile rect. Every tile starts solid; add_fill clears a tile's bit as
// soon as it records sub-tile coverage for it.
func NewBuiltObject(bounds f32.Rectangle, rect TileRect, shader uint16) *BuiltObject {
	n := rect.Width() * rect.Height()
	tiles := make([]TileObjectPrimitive, n)
	for i := range tiles {
		tiles[i] = TileObjectPrimitive{
			TileX: rect.MinX + int16(i%rect.Width()),
			TileY: rect.MinY + int16(i/rect.Width()),
		}
	}
	return &BuiltObject{
		Bounds:     bounds,
		TileRect:   rect,
		Tiles:      tiles,
		SolidTiles: NewBitset(n, true),
		Shader:     shader,
	}
}

func (b *BuiltObject) tileIndex(tileX, tileY int16) int {
	return int(tileY-b.TileRect.MinY)*b.TileRect.Width() + int(tileX-b.TileRect.MinX)
}

// GetTile returns a mutable pointer to the tile at (tileX, tileY).
func (b *BuiltObject) GetTile(tileX, tileY int16) *TileObjectPrimitive {
	return &b.Tiles[b.tileIndex(tileX, tileY)]
}

// AddFill quantizes seg against (tileX, tileY)'s origin, appends it to
// Fills, and clears the tile's solid bit.
func (b *BuiltObject) AddFill(seg geom.LineSegment, tileX, tileY int16) {
	if !b.TileRect.Contains(tileX, tileY) {
		return
	}
	px, subpx := geom.QuantizeSegment(seg, tileX, tileY)
	b.Fills = append(b.Fills, FillObjectPrimitive{Px: px, Subpx: subpx, TileX: tileX, TileY: tileY})
	b.SolidTiles.Clear(b.tileIndex(tileX, tileY))
}

// AddActiveFill emits |winding| coincident horizontal fill segments on
// the tile's top row between left and right, oriented left-to-right
// if winding is negative and right-to-left otherwise.
func (b *BuiltObject) AddActiveFill(left, right float32, winding int, tileX, tileY int16) {
	n := winding
	if n < 0 {
		n = -n
	}
	y := float32(tileY) * geom.TileHeight
	for i := 0; i < n; i++ {
		var seg geom.LineSegment
		if winding < 0 {
			seg = geom.LineSegment{From: f32.Pt(left, y), To: f32.Pt(right, y)}
		} else {
			seg = geom.LineSegment{From: f32.Pt(right, y), To: f32.Pt(left, y)}
		}
		b.AddFill(seg, tileX, tileY)
	}
}
