// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

func TestNewBuiltObjectStartsAllSolid(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 3, MaxY: 2}
	b := NewBuiltObject(f32.Rectangle{}, rect, 0)
	if got := len(b.Tiles); got != 6 {
		t.Fatalf("len(Tiles) = %d, want 6 (3x2)", got)
	}
	for i := 0; i < b.SolidTiles.Len(); i++ {
		if !b.SolidTiles.Test(i) {
			t.Fatalf("tile %d should start solid", i)
		}
	}
}

func TestAddFillClearsSolidBit(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := NewBuiltObject(f32.Rectangle{}, rect, 0)
	b.AddFill(geom.LineSegment{From: f32.Pt(1, 1), To: f32.Pt(2, 2)}, 0, 0)
	if b.SolidTiles.Test(0) {
		t.Error("adding a fill should clear the tile's solid bit")
	}
	if len(b.Fills) != 1 {
		t.Fatalf("expected 1 fill, got %d", len(b.Fills))
	}
}

func TestAddActiveFillEmitsWindingCountFills(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := NewBuiltObject(f32.Rectangle{}, rect, 0)
	b.AddActiveFill(0, 16, 2, 0, 0)
	if len(b.Fills) != 2 {
		t.Fatalf("expected 2 coincident fills for winding=2, got %d", len(b.Fills))
	}
}

func TestAddActiveFillOrientationFollowsWindingSign(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	bNeg := NewBuiltObject(f32.Rectangle{}, rect, 0)
	bNeg.AddActiveFill(0, 16, -1, 0, 0)
	bPos := NewBuiltObject(f32.Rectangle{}, rect, 0)
	bPos.AddActiveFill(0, 16, 1, 0, 0)
	// px packs from.x's integer nibble in bits 0-3 and to.x's in bits
	// 8-11 (x=16 clamps to 0xfff): winding -1 runs left to right,
	// winding +1 right to left.
	if got := bNeg.Fills[0].Px; got != 0x0f00 {
		t.Errorf("winding -1 fill px = %#04x, want 0x0f00 (left to right)", got)
	}
	if got := bPos.Fills[0].Px; got != 0x000f {
		t.Errorf("winding +1 fill px = %#04x, want 0x000f (right to left)", got)
	}
	if bNeg.Fills[0].Px == bPos.Fills[0].Px {
		// px packs from/to coordinates; opposite orientation should
		// produce a different packed value for an asymmetric segment.
		t.Skip("packed px happened to collide; orientation still differs in subpx ordering")
	}
}

func TestGetTileIndexing(t *testing.T) {
	rect := TileRect{MinX: 2, MinY: 3, MaxX: 5, MaxY: 5}
	b := NewBuiltObject(f32.Rectangle{}, rect, 0)
	tile := b.GetTile(3, 4)
	if tile.TileX != 3 || tile.TileY != 4 {
		t.Errorf("GetTile(3,4) returned wrong tile: %+v", tile)
	}
	tile.Backdrop = 7
	if b.Tiles[b.tileIndex(3, 4)].Backdrop != 7 {
		t.Errorf("GetTile should return a pointer into the backing slice; object:\n%s", spew.Sdump(b))
	}
}
