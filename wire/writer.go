// SPDX-License-Identifier: Unlicense OR MIT

// Package wire emits a BuiltScene as a little-endian, RIFF-style
// chunked binary stream for a downstream GPU rasterizer to consume.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pbdeuchler/pathfinder/tiler"
)

const wireVersion = 0

// Write emits scene to w in the RIFF-style layout: an outer
// "RIFF"/size/"PF3S" wrapper around "head", "shad", "soli" chunks and
// one "batc" chunk per batch (itself wrapping "fill" and "mask").
func Write(w io.Writer, scene tiler.BuiltScene) error {
	body, err := encodeBody(scene)
	if err != nil {
		return err
	}

	var riff []byte
	riff = append(riff, "RIFF"...)
	riff = appendU32(riff, uint32(len(body)+4))
	riff = append(riff, "PF3S"...)
	riff = append(riff, body...)

	_, err = w.Write(riff)
	return err
}

func encodeBody(scene tiler.BuiltScene) ([]byte, error) {
	var buf []byte

	buf = appendChunk(buf, "head", encodeHead(scene))
	buf = appendChunk(buf, "shad", encodeShaders(scene.Shaders))
	buf = appendChunk(buf, "soli", encodeSolidTiles(scene.SolidTiles))

	for _, batch := range scene.Batches {
		var batchBody []byte
		batchBody = appendChunk(batchBody, "fill", encodeFills(batch.Fills))
		batchBody = appendChunk(batchBody, "mask", encodeMasks(batch.MaskTiles))
		buf = appendChunk(buf, "batc", batchBody)
	}

	if len(buf) == 0 {
		return nil, fmt.Errorf("wire: empty scene body")
	}
	return buf, nil
}

func encodeHead(scene tiler.BuiltScene) []byte {
	var b []byte
	b = appendU32(b, wireVersion)
	b = appendU32(b, uint32(len(scene.Batches)))
	for _, v := range scene.ViewBox {
		b = appendF32(b, v)
	}
	return b
}

func encodeShaders(shaders []tiler.ObjectShader) []byte {
	var b []byte
	for _, s := range shaders {
		b = append(b, s.FillColor.R, s.FillColor.G, s.FillColor.B, s.FillColor.A)
	}
	return b
}

func encodeSolidTiles(tiles []tiler.SolidTileScenePrimitive) []byte {
	var b []byte
	for _, t := range tiles {
		b = appendI16(b, t.TileX)
		b = appendI16(b, t.TileY)
		b = appendU16(b, t.Shader)
	}
	return b
}

func encodeFills(fills []tiler.FillBatchPrimitive) []byte {
	var b []byte
	for _, f := range fills {
		b = appendU16(b, f.Px)
		b = appendU32(b, f.Subpx)
		b = appendU16(b, f.MaskTileIndex)
	}
	return b
}

func encodeMasks(masks []tiler.MaskTileBatchPrimitive) []byte {
	var b []byte
	for _, m := range masks {
		b = appendI16(b, m.Tile.TileX)
		b = appendI16(b, m.Tile.TileY)
		b = appendI16(b, m.Tile.Backdrop)
		b = appendU16(b, m.Shader)
	}
	return b
}

func appendChunk(dst []byte, id string, body []byte) []byte {
	dst = append(dst, id...)
	dst = appendU32(dst, uint32(len(body)))
	return append(dst, body...)
}

func appendU16(dst []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(dst, tmp[:]...)
}

func appendI16(dst []byte, v int16) []byte {
	return appendU16(dst, uint16(v))
}

func appendU32(dst []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(dst, tmp[:]...)
}

func appendF32(dst []byte, v float32) []byte {
	return appendU32(dst, math.Float32bits(v))
}
