// Package render turns solved scenes into output artifacts.
//
// # Overview
//
// The renderers consume a [scene.Snapshot], the pre-order list of solved
// item frames, and produce:
//
//   - [JSON]: the snapshot as an indented JSON document
//   - [SVG]: nested rectangles with item labels, drawn with svgo
//   - [Text]: a terminal preview grid plus a geometry table (lipgloss)
//   - [ToPDF] and [ToPNG]: conversions of any SVG via rsvg-convert
//
// The anchor dependency graph is rendered by the [nodelink] subpackage with
// Graphviz.
//
//	snap := sc.Snapshot()
//	svg := render.SVG(snap)
//	pdf, err := render.ToPDF(ctx, svg)
//	fmt.Println(render.Text(snap, 60, 20))
//
// [nodelink]: github.com/matzehuels/anchorage/pkg/render/nodelink
package render
