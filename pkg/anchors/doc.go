// Package anchors implements an anchor-based layout solver.
//
// Every visual item that uses anchoring owns one [Anchors] set. The set binds
// the owner's edges (left, right, top, bottom, horizontal and vertical
// center, baseline) to edges of the owner's parent or of a sibling, or binds
// the whole rectangle at once with fill and center-in. Whenever a target's
// geometry changes the set recomputes the owner's position and size.
//
// # Host Items
//
// The solver does not own the item tree. It consumes it through the [Item]
// interface: geometry getters and setters, the intrinsic baseline offset,
// the parent reference, and a listener registry for geometry changes. The
// host must call [Anchors.OwnerGeometryChanged] whenever the owner's own
// geometry changes, and deliver [Listener] callbacks synchronously.
//
// # Propagation
//
// All recomputation is synchronous and re-entrant. A single geometry write
// on one item propagates depth-first through every dependent set before the
// write returns. Each recomputation kind (fill, center-in, horizontal lines,
// vertical lines) carries a depth guard that allows exactly one nested
// re-entry; the next one is treated as an anchor loop, reported through the
// [Reporter], and abandoned.
//
// # Usage
//
//	a := anchors.New(owner, anchors.WithReporter(anchors.LogReporter(logger)))
//	_ = a.BeginConfiguration()
//	_ = a.SetLeft(anchors.Line{Item: sidebar, Edge: anchors.Right})
//	_ = a.SetRight(anchors.Line{Item: parent, Edge: anchors.Right})
//	a.SetMargins(8)
//	a.EndConfiguration() // runs the first full update pass
//
// Invalid bindings (self anchors, non-sibling targets, axis mismatches and
// over-constrained axes) are rejected before any state changes. The setter
// returns a structured error and the same message is sent to the Reporter.
package anchors
