// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"testing"

	"golang.org/x/exp/slices"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// sortedMaskTiles returns a copy of tiles sorted by (tileX, tileY), so
// batch contents can be compared irrespective of the scene builder's
// internal iteration order (which walks tiles in an object's own
// row-major order, not necessarily the order a test assembles
// expectations in).
func sortedMaskTiles(tiles []MaskTileBatchPrimitive) []MaskTileBatchPrimitive {
	out := slices.Clone(tiles)
	slices.SortFunc(out, func(a, b MaskTileBatchPrimitive) bool {
		if a.Tile.TileX != b.Tile.TileX {
			return a.Tile.TileX < b.Tile.TileX
		}
		return a.Tile.TileY < b.Tile.TileY
	})
	return out
}

func TestSceneBuilderEmptySceneProducesNoBatches(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 7, MaxY: 7}
	zbuf := NewZBuffer(rect)
	sb := NewSceneBuilder([4]float32{0, 0, 100, 100}, zbuf, nil)
	scene := sb.Finish()

	if len(scene.Batches) != 0 {
		t.Errorf("expected no batches for an empty scene, got %d", len(scene.Batches))
	}
	if len(scene.SolidTiles) != 0 {
		t.Errorf("expected no solid tiles for an empty scene, got %d", len(scene.SolidTiles))
	}
}

func TestSceneBuilderSkipsOccludedMaskTiles(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	zbuf := NewZBuffer(rect)
	bounds := f32.Rectangle{Min: f32.Pt(0, 0), Max: f32.Pt(32, 32)}

	under := NewBuiltObject(bounds, rect, 0)
	under.AddFill(geom.LineSegment{From: f32.Pt(1, 1), To: f32.Pt(2, 2)}, 0, 0)
	over := NewBuiltObject(bounds, rect, 1)
	over.AddFill(geom.LineSegment{From: f32.Pt(1, 1), To: f32.Pt(2, 2)}, 0, 0)

	// Simulate object 1 opaquely covering tile (0,0) elsewhere in its
	// own tiling pass (its own solid-tile cull would have done this).
	zbuf.Update(0, 0, 1)

	sb := NewSceneBuilder([4]float32{0, 0, 32, 32}, zbuf, []ObjectShader{{}, {}})
	sb.AddObject(0, under)
	sb.AddObject(1, over)
	scene := sb.Finish()

	var sawObject0Tile bool
	for _, batch := range scene.Batches {
		for _, mt := range batch.MaskTiles {
			if mt.Shader == 0 {
				sawObject0Tile = true
			}
		}
	}
	if sawObject0Tile {
		t.Error("object 0's tile should have been culled by the Z-buffer occlusion test")
	}
}

func TestSceneBuilderSingleMaskTileLandsInOneBatch(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	zbuf := NewZBuffer(rect)
	bounds := f32.Rectangle{Min: f32.Pt(0, 0), Max: f32.Pt(16, 16)}

	obj := NewBuiltObject(bounds, rect, 0)
	obj.AddFill(geom.LineSegment{From: f32.Pt(1, 1), To: f32.Pt(2, 2)}, 0, 0)

	sb := NewSceneBuilder([4]float32{0, 0, 16, 16}, zbuf, []ObjectShader{{}})
	sb.AddObject(0, obj)
	if len(sb.current.MaskTiles) != 1 {
		t.Fatalf("expected the single mask tile to land in the open batch, got %d", len(sb.current.MaskTiles))
	}
	scene := sb.Finish()
	if len(scene.Batches) != 1 {
		t.Fatalf("expected exactly 1 batch, got %d", len(scene.Batches))
	}
	if len(scene.Batches[0].Fills) != 1 || len(scene.Batches[0].MaskTiles) != 1 {
		t.Errorf("unexpected batch contents: %+v", scene.Batches[0])
	}

	sorted := sortedMaskTiles(scene.Batches[0].MaskTiles)
	if sorted[0].Tile.TileX != 0 || sorted[0].Tile.TileY != 0 {
		t.Errorf("expected the single mask tile at (0,0), got %+v", sorted[0].Tile)
	}
}

// TestSceneBuilderNeverSplitsOneObjectAcrossBatches exercises the case
// where an object's own mask tiles/fills would cross MaxMasksPerBatch
// mid-object: the whole object must land in one batch (the overflow
// check runs once per object, not once per item), so that every
// recorded fill's MaskTileIndex still refers to a mask tile in the
// same batch.
func TestSceneBuilderNeverSplitsOneObjectAcrossBatches(t *testing.T) {
	rect := TileRect{MinX: 0, MinY: 0, MaxX: 3, MaxY: 1}
	zbuf := NewZBuffer(rect)
	bounds := f32.Rectangle{Min: f32.Pt(0, 0), Max: f32.Pt(48, 16)}

	obj := NewBuiltObject(bounds, rect, 0)
	obj.AddFill(geom.LineSegment{From: f32.Pt(1, 1), To: f32.Pt(2, 2)}, 0, 0)
	obj.AddFill(geom.LineSegment{From: f32.Pt(17, 1), To: f32.Pt(18, 2)}, 1, 0)
	obj.AddFill(geom.LineSegment{From: f32.Pt(33, 1), To: f32.Pt(34, 2)}, 2, 0)

	sb := NewSceneBuilder([4]float32{0, 0, 48, 16}, zbuf, []ObjectShader{{}})
	// Pack the open batch to two mask tiles short of the cap, so the
	// object's 3 new mask tiles push it over MaxMasksPerBatch and force
	// a close partway through, if the overflow check ran per item
	// instead of per object.
	sb.current.MaskTiles = make([]MaskTileBatchPrimitive, MaxMasksPerBatch-2)

	sb.AddObject(0, obj)
	scene := sb.Finish()

	if len(scene.Batches) != 2 {
		t.Fatalf("expected the pre-filled batch to close and the object's batch to follow, got %d batches", len(scene.Batches))
	}
	if len(scene.Batches[0].MaskTiles) != MaxMasksPerBatch-2 {
		t.Errorf("first batch should be untouched by the object, got %d mask tiles", len(scene.Batches[0].MaskTiles))
	}
	objBatch := scene.Batches[1]
	if len(objBatch.MaskTiles) != 3 {
		t.Fatalf("expected all 3 of the object's mask tiles in one batch, got %d", len(objBatch.MaskTiles))
	}
	if len(objBatch.Fills) != 3 {
		t.Fatalf("expected all 3 of the object's fills in the same batch as its mask tiles, got %d", len(objBatch.Fills))
	}
	for _, f := range objBatch.Fills {
		if int(f.MaskTileIndex) >= len(objBatch.MaskTiles) {
			t.Errorf("fill references MaskTileIndex %d outside its own batch's %d mask tiles", f.MaskTileIndex, len(objBatch.MaskTiles))
		}
	}
}
