// Package nodelink renders the anchor dependency graph of a scene as a
// node-link diagram.
//
// Nodes are items; each binding becomes an arrow from the anchored item to
// the item it follows, labelled with the bound property and target edge,
// for example "top → bottom". Parent containment can be drawn as dashed
// grey edges.
//
//	dot := nodelink.ToDOT(snap, sc.Bindings(), nodelink.Options{Hierarchy: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
