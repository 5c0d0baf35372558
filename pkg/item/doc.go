// Package item provides the host item tree the anchor solver lays out.
//
// An [Item] stores its rectangle in its parent's coordinate space, an
// intrinsic baseline offset, its parent and its ordered children. It keeps an
// explicit observer registry: listeners subscribe with a change kind and
// receive opaque [anchors.Subscription] handles. Geometry writes notify the
// item's own anchor set first, then every geometry listener, synchronously and
// over a snapshot so that listeners may unsubscribe during dispatch.
//
// A [Tree] indexes items by id and brackets batch construction:
//
//	t, _ := item.NewTree(root, anchors.WithReporter(collector))
//	_ = t.BeginConfiguration()
//	_ = root.AddChild(label)
//	_ = label.Anchors().SetFill(root)
//	t.EndConfiguration() // completes every anchor set, in pre-order
//
// Outside a bracket, [Item.Anchors] completes a new anchor set immediately.
package item
