// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import "sync/atomic"

// ZBuffer is the only state shared (mutably) across the parallel
// per-object tiling phase: one atomic cell per scene tile, holding
// object_index+1 of the highest-indexed opaque object known to cover
// it, or 0 if none does yet.
type ZBuffer struct {
	cells []atomic.Uint32
	rect  TileRect
}

// NewZBuffer allocates a ZBuffer covering rect.
func NewZBuffer(rect TileRect) *ZBuffer {
	return &ZBuffer{
		cells: make([]atomic.Uint32, rect.Width()*rect.Height()),
		rect:  rect,
	}
}

func (z *ZBuffer) index(tileX, tileY int16) int {
	return int(tileY-z.rect.MinY)*z.rect.Width() + int(tileX-z.rect.MinX)
}

// Update performs a monotonic CAS loop: if objectIndex+1 is greater
// than the cell's current value, it replaces it, retrying on conflict.
// Safe to call concurrently for any set of tiles and object indices.
func (z *ZBuffer) Update(tileX, tileY int16, objectIndex int) {
	if !z.rect.Contains(tileX, tileY) {
		return
	}
	cell := &z.cells[z.index(tileX, tileY)]
	want := uint32(objectIndex + 1)
	for {
		cur := cell.Load()
		if want <= cur {
			return
		}
		if cell.CompareAndSwap(cur, want) {
			return
		}
	}
}

// Test reports whether objectIndex is not occluded by a later opaque
// tile at (tileX, tileY): true iff cell < objectIndex+1. A cell holding
// objectIndex's own opaque tile (cell == objectIndex+1) reports false.
func (z *ZBuffer) Test(tileX, tileY int16, objectIndex int) bool {
	if !z.rect.Contains(tileX, tileY) {
		return true
	}
	return z.cells[z.index(tileX, tileY)].Load() < uint32(objectIndex+1)
}

// At returns the raw cell value (0 means empty, else object_index+1).
func (z *ZBuffer) At(tileX, tileY int16) uint32 {
	return z.cells[z.index(tileX, tileY)].Load()
}

// BuildSolidTiles walks the Z-buffer in row-major order, emitting one
// SolidTileScenePrimitive per non-zero cell. shaderOf maps an object
// index to its shader id.
func (z *ZBuffer) BuildSolidTiles(shaderOf func(objectIndex int) uint16) []SolidTileScenePrimitive {
	var out []SolidTileScenePrimitive
	for ty := z.rect.MinY; ty < z.rect.MaxY; ty++ {
		for tx := z.rect.MinX; tx < z.rect.MaxX; tx++ {
			v := z.At(tx, ty)
			if v == 0 {
				continue
			}
			out = append(out, SolidTileScenePrimitive{TileX: tx, TileY: ty, Shader: shaderOf(int(v) - 1)})
		}
	}
	return out
}
