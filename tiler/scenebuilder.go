// SPDX-License-Identifier: Unlicense OR MIT

package tiler

const (
	// MaxFillsPerBatch bounds how many fill primitives a single Batch
	// may hold before it is closed and a new one started.
	MaxFillsPerBatch = 131072
	// MaxMasksPerBatch bounds how many mask tiles a single Batch may
	// hold; mask_tile_index is a u16, so this is also a hard ceiling.
	MaxMasksPerBatch = 65535
)

// Batch groups the fills and mask tiles the downstream rasterizer
// consumes together in one draw.
type Batch struct {
	Fills     []FillBatchPrimitive
	MaskTiles []MaskTileBatchPrimitive
}

func (b *Batch) empty() bool { return len(b.MaskTiles) == 0 }

// BuiltScene is the fully assembled, GPU-ready draw list for one
// scene: the solid tiles that needed no masking, the batches that
// did, and the shader table both reference by index.
type BuiltScene struct {
	ViewBox    [4]float32
	Batches    []Batch
	SolidTiles []SolidTileScenePrimitive
	Shaders    []ObjectShader
}

// SceneBuilder consumes BuiltObjects in paint order, already tiled
// against a shared ZBuffer, and assembles them into a BuiltScene.
type SceneBuilder struct {
	viewBox [4]float32
	zbuf    *ZBuffer
	shaders []ObjectShader

	batches      []Batch
	current      Batch
	objectShader map[int]uint16
}

// NewSceneBuilder creates a SceneBuilder for the given view box and
// Z-buffer. shaders is the scene's deduplicated paint table; each
// BuiltObject's Shader field indexes into it.
func NewSceneBuilder(viewBox [4]float32, zbuf *ZBuffer, shaders []ObjectShader) *SceneBuilder {
	return &SceneBuilder{viewBox: viewBox, zbuf: zbuf, shaders: shaders, objectShader: make(map[int]uint16)}
}

// AddObject folds one object's tiles and fills into the scene's
// batches, in paint order. objectIndex must match the index the
// object's tiling pass used against the shared ZBuffer.
//
// The overflow check runs once per object, up front, against the
// object's total new mask-tile and fill counts — not once per item —
// so an object's fills and mask tiles always land in the same batch.
// Splitting them across a batch boundary mid-object would leave
// earlier-recorded remap entries pointing at mask tiles in a batch
// that's already been closed out from under them.
func (sb *SceneBuilder) AddObject(objectIndex int, obj *BuiltObject) {
	sb.objectShader[objectIndex] = obj.Shader

	visible := make(map[int]bool, len(obj.Tiles))
	newMasks := 0
	for i, tile := range obj.Tiles {
		if obj.SolidTiles.Test(i) {
			continue
		}
		if !sb.zbuf.Test(tile.TileX, tile.TileY, objectIndex) {
			continue
		}
		visible[i] = true
		newMasks++
	}

	newFills := 0
	for _, fill := range obj.Fills {
		if visible[obj.tileIndex(fill.TileX, fill.TileY)] {
			newFills++
		}
	}

	sb.ensureRoom(newMasks, newFills)

	remap := make(map[int]uint16, newMasks)
	for i, tile := range obj.Tiles {
		if !visible[i] {
			continue
		}
		remap[i] = uint16(len(sb.current.MaskTiles))
		sb.current.MaskTiles = append(sb.current.MaskTiles, MaskTileBatchPrimitive{
			Tile:   tile,
			Shader: obj.Shader,
		})
	}

	for _, fill := range obj.Fills {
		idx := obj.tileIndex(fill.TileX, fill.TileY)
		maskIdx, ok := remap[idx]
		if !ok {
			continue
		}
		sb.current.Fills = append(sb.current.Fills, FillBatchPrimitive{
			Px:            fill.Px,
			Subpx:         fill.Subpx,
			MaskTileIndex: maskIdx,
		})
	}
}

// ensureRoom closes the current batch and starts a fresh one if
// adding addMasks mask tiles or addFills fills would overflow it.
func (sb *SceneBuilder) ensureRoom(addMasks, addFills int) {
	if len(sb.current.MaskTiles)+addMasks > MaxMasksPerBatch ||
		len(sb.current.Fills)+addFills > MaxFillsPerBatch {
		sb.closeBatch()
	}
}

func (sb *SceneBuilder) closeBatch() {
	if !sb.current.empty() {
		sb.batches = append(sb.batches, sb.current)
	}
	sb.current = Batch{}
}

// Finish closes any open batch and returns the assembled scene.
func (sb *SceneBuilder) Finish() BuiltScene {
	sb.closeBatch()
	return BuiltScene{
		ViewBox: sb.viewBox,
		Batches: sb.batches,
		SolidTiles: sb.zbuf.BuildSolidTiles(func(objectIndex int) uint16 {
			return sb.objectShader[objectIndex]
		}),
		Shaders: sb.shaders,
	}
}
