// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// ObjectInput is one path ready for tiling: its preprocessed Outline,
// its bounds, and the shader id its fills should be tagged with.
type ObjectInput struct {
	Outline *geom.Outline
	Bounds  f32.Rectangle
	Shader  uint16
}

// BuildSequential tiles every input in order on the calling
// goroutine. Used for small scenes and as the correctness baseline
// the parallel path is measured against.
func BuildSequential(inputs []ObjectInput, zbuf *ZBuffer) []*BuiltObject {
	out := make([]*BuiltObject, len(inputs))
	for i, in := range inputs {
		out[i] = NewTiler(in.Outline, in.Bounds, in.Shader).Build(i, zbuf)
	}
	return out
}

// BuildParallel tiles every input across a worker pool, bounded by
// jobs concurrent goroutines (0 means errgroup's default, unbounded).
// Every object is an independent producer reading only its own
// Outline and bounds; the only shared mutable state is zbuf, which is
// safe for concurrent use. Results are returned indexed by input
// order regardless of completion order. If pool is non-nil, each
// worker borrows its sweep scratch buffers from it instead of
// allocating fresh ones.
func BuildParallel(ctx context.Context, inputs []ObjectInput, zbuf *ZBuffer, jobs int, pool *ScratchPool) ([]*BuiltObject, error) {
	results := make([]*BuiltObject, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			var t *Tiler
			if pool != nil {
				s, err := pool.Borrow(ctx)
				if err != nil {
					return err
				}
				defer pool.Return(ctx, s)
				t = NewTilerFromScratch(s, in.Outline, in.Bounds, in.Shader)
			} else {
				t = NewTiler(in.Outline, in.Bounds, in.Shader)
			}
			results[i] = t.Build(i, zbuf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
