// Package scene builds anchored layouts from declarative documents.
//
// A document declares a root item with nested children. Each node carries
// its initial geometry and an optional anchors table whose values reference
// other items by id:
//
//	[root]
//	id = "page"
//	width = 400.0
//	height = 300.0
//
//	[[root.children]]
//	id = "header"
//	height = 40.0
//
//	[root.children.anchors]
//	left = "parent.left"
//	right = "parent.right"
//	top = "parent.top"
//
// Fill and center_in take "parent" or a sibling id; line anchors take
// "<ref>.<edge>". [Build] creates the item tree inside one configuration
// bracket, so every anchor set computes once all bindings are in place.
// Rejected bindings are kept as diagnostics on the [Scene] unless
// [Options.Strict] is set.
package scene
