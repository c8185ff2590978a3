// Package pkg provides the core libraries for curveplot.
//
// # Overview
//
// Curveplot rasterizes mathematical curves onto RGB canvases. The pkg
// directory is organized into four main areas:
//
//  1. Geometry and curves: [geom] (intervals, bounds, coordinate mapping)
//     and [curve] (parametric and implicit curves, relations, converters)
//  2. Rasterization: [canvas] (pixel buffer, axis/grid overlay, drawing)
//     and [sink] (PNG, raw RGB, braille text, resizing)
//  3. Colour: [color] (RGB, HSL and HSV spaces) and [gradient] (per-frame
//     colour ramps with easing)
//  4. Orchestration: [scene] (YAML/TOML/JSON scene files with expressions),
//     [pipeline] (load → draw → encode, animations) and [cache]
//
// # Architecture
//
// The typical data flow:
//
//	scene file (yaml/toml/json)
//	         ↓
//	    [scene] package (decode + compile expressions)
//	         ↓
//	    [curve] package (curves at parameter p)
//	         ↓
//	    [canvas] package (rasterize)
//	         ↓
//	    [sink] package (PNG, RGB, braille)
//
// # Quick Start
//
//	s, err := scene.Load("rose.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := s.Items(s.Param)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, err := canvas.New(s.Image)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := c.Render(ctx, items, s.Render); err != nil {
//	    log.Fatal(err)
//	}
//	f, _ := os.Create("rose.png")
//	defer f.Close()
//	sink.EncodePNG(f, c)
//
// For cached rendering and animations use [pipeline.Runner].
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/geom
// [curve]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/curve
// [canvas]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/canvas
// [sink]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/sink
// [color]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/color
// [gradient]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/gradient
// [scene]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/curveplot/pkg/cache
package pkg
