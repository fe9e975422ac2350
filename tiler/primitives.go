// SPDX-License-Identifier: Unlicense OR MIT

// Package tiler implements the per-object sweep-line tiler and the
// scene-level Z-buffer and batching that turn Outlines into a
// GPU-ready draw list.
package tiler

import (
	"math"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// TileRect is a half-open rectangle of integer tile coordinates.
type TileRect struct {
	MinX, MinY, MaxX, MaxY int16
}

// Width returns the number of tile columns.
func (r TileRect) Width() int { return int(r.MaxX - r.MinX) }

// Height returns the number of tile rows.
func (r TileRect) Height() int { return int(r.MaxY - r.MinY) }

// Contains reports whether (x, y) lies within the rect.
func (r TileRect) Contains(x, y int16) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// ComputeTileRect returns the smallest TileRect covering bounds.
func ComputeTileRect(bounds f32.Rectangle) TileRect {
	return TileRect{
		MinX: int16(math.Floor(float64(bounds.Min.X) / geom.TileWidth)),
		MinY: int16(math.Floor(float64(bounds.Min.Y) / geom.TileHeight)),
		MaxX: int16(math.Ceil(float64(bounds.Max.X) / geom.TileWidth)),
		MaxY: int16(math.Ceil(float64(bounds.Max.Y) / geom.TileHeight)),
	}
}

// TileObjectPrimitive describes one tile of a single object: its
// position and the winding backdrop carried into it from the left.
type TileObjectPrimitive struct {
	TileX, TileY int16
	Backdrop     int16
}

// FillObjectPrimitive is one quantized oriented fill segment within a
// tile, scoped to a single object.
type FillObjectPrimitive struct {
	Px       uint16
	Subpx    uint32
	TileX    int16
	TileY    int16
}

// SolidTileScenePrimitive is an opaque tile surviving Z-buffer culling.
type SolidTileScenePrimitive struct {
	TileX, TileY int16
	Shader       uint16
}

// MaskTileBatchPrimitive is one tile rendered from its fills.
type MaskTileBatchPrimitive struct {
	Tile   TileObjectPrimitive
	Shader uint16
}

// FillBatchPrimitive is one fill segment scoped to a batch's mask
// tile index rather than an object's own tile index.
type FillBatchPrimitive struct {
	Px            uint16
	Subpx         uint32
	MaskTileIndex uint16
}

// ObjectShader is the paint attached to one object (a solid fill
// color; gradients and patterns are out of scope).
type ObjectShader struct {
	FillColor ColorU
}

// ColorU is a non-premultiplied 8-bit-per-channel RGBA color.
type ColorU struct {
	R, G, B, A uint8
}
