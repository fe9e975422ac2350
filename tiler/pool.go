// SPDX-License-Identifier: Unlicense OR MIT

package tiler

import (
	"context"

	commonspool "github.com/jolestar/go-commons-pool"

	"github.com/pbdeuchler/pathfinder/f32"
	"github.com/pbdeuchler/pathfinder/geom"
)

// scratch holds a Tiler's two SortedVectors without the Tiler itself,
// so their backing arrays can be recycled across objects instead of
// reallocated per object in the parallel tiling phase.
type scratch struct {
	queue  *geom.SortedVector[queuedEndpoint]
	active *geom.SortedVector[ActiveEdge]
}

func newScratch() *scratch {
	return &scratch{
		queue:  geom.NewSortedVector(queuedEndpointLess),
		active: geom.NewSortedVector(activeEdgeLess),
	}
}

// ScratchPool recycles Tiler scratch buffers across objects in the
// worker pool, avoiding a queue/active-edge allocation per object.
type ScratchPool struct {
	pool *commonspool.ObjectPool
}

// NewScratchPool constructs a ScratchPool with go-commons-pool's
// default configuration.
func NewScratchPool(ctx context.Context) *ScratchPool {
	factory := commonspool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newScratch(), nil
		},
	)
	return &ScratchPool{pool: commonspool.NewObjectPoolWithDefaultConfig(ctx, factory)}
}

// Borrow checks out a scratch buffer, allocating a new one if the
// pool is empty.
func (p *ScratchPool) Borrow(ctx context.Context) (*scratch, error) {
	obj, err := p.pool.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	return obj.(*scratch), nil
}

// Return clears s and hands it back to the pool.
func (p *ScratchPool) Return(ctx context.Context, s *scratch) error {
	s.queue.Clear()
	s.active.Clear()
	return p.pool.ReturnObject(ctx, s)
}

// NewTilerFromScratch builds a Tiler reusing s's backing vectors
// instead of allocating fresh ones.
func NewTilerFromScratch(s *scratch, outline *geom.Outline, bounds f32.Rectangle, shader uint16) *Tiler {
	rect := ComputeTileRect(bounds)
	t := &Tiler{
		outline: outline,
		built:   NewBuiltObject(bounds, rect, shader),
		queue:   s.queue,
		active:  s.active,
	}
	t.initQueue()
	return t
}
