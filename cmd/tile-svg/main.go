// SPDX-License-Identifier: Unlicense OR MIT

// Command tile-svg reads a scene script (see ParseScript), tiles it,
// and writes the resulting BuiltScene to a RIFF-style binary stream.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/pbdeuchler/pathfinder/tiler"
	"github.com/pbdeuchler/pathfinder/wire"
)

func main() {
	input := flag.String("input", "", "path to a scene script (default: stdin)")
	output := flag.String("output", "", "path to write the binary scene (default: stdout)")
	runs := flag.Int("runs", 1, "number of times to repeat the build pipeline, reporting mean phase timings")
	jobs := flag.Int("jobs", 0, "worker-pool size for per-object tiling (1 = sequential, 0 = unbounded)")
	flag.Parse()

	if err := run(*input, *output, *runs, *jobs); err != nil {
		log.Fatalf("tile-svg: %v", err)
	}
}

func run(inputPath, outputPath string, runs, jobs int) error {
	in := os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	scene, err := ParseScript(in)
	if err != nil {
		return err
	}
	log.Printf("parsed scene: %d objects, %d paints, view box %v", len(scene.Objects), len(scene.Paints), scene.ViewBox)

	inputs, _ := scene.buildInputs()
	rect := tiler.ComputeTileRect(scene.ViewBox)

	var pool *tiler.ScratchPool
	if jobs != 1 {
		pool = tiler.NewScratchPool(context.Background())
	}

	var elapsedObjectBuildTime, elapsedSceneBuildTime time.Duration
	var built *tiler.BuiltScene
	for run := 0; run < runs; run++ {
		zbuf := tiler.NewZBuffer(rect)

		objStart := time.Now()
		objects, err := buildObjects(inputs, zbuf, jobs, pool)
		if err != nil {
			return err
		}
		elapsedObjectBuildTime += time.Since(objStart)

		sceneStart := time.Now()
		sb := tiler.NewSceneBuilder(viewBoxArray(scene), zbuf, scene.shaders())
		for i, obj := range objects {
			sb.AddObject(i, obj)
		}
		result := sb.Finish()
		built = &result
		elapsedSceneBuildTime += time.Since(sceneStart)
	}

	log.Printf("mean object build time: %v", elapsedObjectBuildTime/time.Duration(runs))
	log.Printf("mean scene build time: %v", elapsedSceneBuildTime/time.Duration(runs))
	log.Printf("batches: %d, solid tiles: %d, shaders: %d", len(built.Batches), len(built.SolidTiles), len(built.Shaders))

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return wire.Write(out, *built)
}

// buildObjects runs the per-object tiling phase, degrading to a
// single synchronous pass when jobs == 1 (useful for deterministic
// debugging and for measuring the overhead of the parallel path).
func buildObjects(inputs []tiler.ObjectInput, zbuf *tiler.ZBuffer, jobs int, pool *tiler.ScratchPool) ([]*tiler.BuiltObject, error) {
	if jobs == 1 {
		return tiler.BuildSequential(inputs, zbuf), nil
	}
	return tiler.BuildParallel(context.Background(), inputs, zbuf, jobs, pool)
}

func viewBoxArray(s *Scene) [4]float32 {
	return [4]float32{s.ViewBox.Min.X, s.ViewBox.Min.Y, s.ViewBox.Dx(), s.ViewBox.Dy()}
}
