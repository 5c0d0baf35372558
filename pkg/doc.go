// Package pkg provides the core libraries for anchorage, an anchor-based 2D
// layout solver.
//
// # Overview
//
// Anchorage positions rectangles relative to their parent and siblings.
// Each item can bind its edges (left, right, horizontal center, top,
// bottom, vertical center, baseline) to an edge of another item, fill
// another item, or center itself in one. Whenever a target moves or
// resizes, the bound items recompute their geometry. The pkg directory is
// organized into four areas:
//
//  1. [anchors], [item], [geom] - The solver and the item tree it runs on
//  2. [scene] - Declarative scene documents (TOML, YAML, JSON)
//  3. [render] - Output formats (JSON, SVG, text, anchor graph)
//  4. [pipeline] - Orchestration (load → solve → render) with caching
//
// # Architecture
//
// The typical data flow through anchorage:
//
//	Scene document (TOML/YAML/JSON)
//	         ↓
//	    [scene] package (parse + build the item tree, bind anchors)
//	         ↓
//	    [anchors] package (solve geometry as bindings settle)
//	         ↓
//	    [render] package (snapshot → artifacts)
//	         ↓
//	    SVG/PDF/PNG/JSON/text/DOT output
//
// # Quick Start
//
// Build a tree by hand and anchor a child to its parent:
//
//	import (
//	    "github.com/matzehuels/anchorage/pkg/anchors"
//	    "github.com/matzehuels/anchorage/pkg/geom"
//	    "github.com/matzehuels/anchorage/pkg/item"
//	)
//
//	root := item.New("card", geom.NewRect(0, 0, 300, 200))
//	title := item.New("title", geom.NewRect(0, 0, 0, 30))
//	if err := root.AddChild(title); err != nil {
//	    return err
//	}
//	a := title.Anchors()
//	_ = a.SetLeft(anchors.Line{Item: root, Edge: anchors.Left})
//	_ = a.SetRight(anchors.Line{Item: root, Edge: anchors.Right})
//	a.SetMargins(10)
//
//	root.SetWidth(500) // title.Width() is now 480
//
// Or load a scene and render it:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), cache.DefaultKeyer{}, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "card.toml",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Solver
//
// [geom] - Integer-valued rectangles and the truncation used for edge
// positions.
//
// [anchors] - Anchor bindings, validation and the update engine. Rejected
// bindings are reported as diagnostics through a [anchors.Reporter] rather
// than aborting the solve.
//
// [item] - The item tree: geometry, parent/child links, change listeners
// and the configuration bracket that defers solving while a tree is built.
//
// ## Scenes and Output
//
// [scene] - Scene documents, the builder that turns them into a bound item
// tree, scripted steps, snapshots and the binding list.
//
// [render] - JSON, SVG (svgo) and text renderers plus PDF/PNG conversion.
//
// [render/nodelink] - The anchor dependency graph as DOT, rendered to SVG
// with Graphviz.
//
// ## Infrastructure
//
// [pipeline] - The load → solve → render pipeline used by the CLI and the
// HTTP API. Ensures consistent behavior across both entry points.
//
// [cache] - Content-addressed caching of solved scenes and artifacts.
// FileCache for the CLI, RedisCache for shared servers, NullCache to
// disable.
//
// [store] - Persistence of solved layouts behind stable ids (memory, file
// and MongoDB backends).
//
// [httputil] - JSON responses, error-to-status mapping and request
// middleware for the API server.
//
// [observability] - Hooks for solver, pipeline and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/anchors/...        # Specific package
//	go test -run Example ./pkg/...   # Examples only
//
// [anchors]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/anchors
// [anchors.Reporter]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/anchors#Reporter
// [item]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/item
// [geom]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/store
// [httputil]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/errors
package pkg
