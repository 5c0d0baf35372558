package item

import (
	"errors"
	"slices"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/geom"
)

var (
	// ErrInvalidID is returned by [Item.AddChild] and [NewTree] when an item
	// has an empty identifier.
	ErrInvalidID = errors.New("item ID must not be empty")

	// ErrDuplicateID is returned by [Item.AddChild] and [NewTree] when an
	// item with the same ID is already part of the tree.
	ErrDuplicateID = errors.New("duplicate item ID")

	// ErrCycle is returned by [Item.AddChild] when the child is an ancestor
	// of the receiver (or the receiver itself).
	ErrCycle = errors.New("item cannot be its own ancestor")

	// ErrDestroyed is returned when operating on a destroyed item.
	ErrDestroyed = errors.New("item destroyed")
)

// Item is a rectangular visual item: geometry, an intrinsic baseline, a
// parent and ordered children. It implements [anchors.Item].
//
// Geometry setters notify synchronously, first the item's own anchor set
// and then every subscribed listener. Item is not safe for concurrent use.
type Item struct {
	id       string
	rect     geom.Rect
	baseline float64

	parent   *Item
	children []*Item
	tree     *Tree

	anchors   *anchors.Anchors
	subs      []subscription
	nextSub   anchors.Subscription
	destroyed bool
}

type subscription struct {
	id    anchors.Subscription
	l     anchors.Listener
	kinds anchors.ChangeKind
}

// New creates a detached item with the given geometry.
func New(id string, r geom.Rect) *Item {
	return &Item{id: id, rect: r}
}

// ID returns the item identifier.
func (it *Item) ID() string { return it.id }

func (it *Item) X() float64      { return it.rect.X }
func (it *Item) Y() float64      { return it.rect.Y }
func (it *Item) Width() float64  { return it.rect.Width }
func (it *Item) Height() float64 { return it.rect.Height }

// Rect returns the item's rectangle in its parent's coordinate space.
func (it *Item) Rect() geom.Rect { return it.rect }

// AbsoluteRect returns the item's rectangle in the root's coordinate space.
func (it *Item) AbsoluteRect() geom.Rect {
	r := it.rect
	for p := it.parent; p != nil; p = p.parent {
		r = r.Translate(p.rect.X, p.rect.Y)
	}
	return r
}

// BaselineOffset returns the distance from the top edge to the text baseline.
func (it *Item) BaselineOffset() float64 { return it.baseline }

// SetBaselineOffset changes the intrinsic baseline. The item's own anchors
// are re-run since a baseline anchor positions by it, then every
// ChangeBaseline subscriber that implements [anchors.BaselineListener] is
// notified.
func (it *Item) SetBaselineOffset(v float64) {
	if it.baseline == v || it.destroyed {
		return
	}
	it.baseline = v
	if it.anchors != nil {
		it.anchors.OwnerGeometryChanged()
	}
	it.notify(anchors.ChangeBaseline, func(l anchors.Listener) {
		if bl, ok := l.(anchors.BaselineListener); ok {
			bl.ItemBaselineChanged(it)
		}
	})
}

func (it *Item) SetX(x float64) {
	r := it.rect
	r.X = x
	it.SetRect(r)
}

func (it *Item) SetY(y float64) {
	r := it.rect
	r.Y = y
	it.SetRect(r)
}

// SetPos moves the item with a single change notification.
func (it *Item) SetPos(x, y float64) {
	r := it.rect
	r.X, r.Y = x, y
	it.SetRect(r)
}

func (it *Item) SetWidth(w float64) {
	r := it.rect
	r.Width = w
	it.SetRect(r)
}

func (it *Item) SetHeight(h float64) {
	r := it.rect
	r.Height = h
	it.SetRect(r)
}

// SetRect replaces the whole rectangle. Nothing is notified when r equals
// the current rectangle.
func (it *Item) SetRect(r geom.Rect) {
	old := it.rect
	if r == old || it.destroyed {
		return
	}
	it.rect = r
	if it.anchors != nil {
		it.anchors.OwnerGeometryChanged()
	}
	it.notify(anchors.ChangeGeometry, func(l anchors.Listener) {
		l.ItemGeometryChanged(it, r, old)
	})
}

// ParentItem implements [anchors.Item]. It returns a nil interface for roots.
func (it *Item) ParentItem() anchors.Item {
	if it.parent == nil {
		return nil
	}
	return it.parent
}

// Parent returns the parent item, or nil.
func (it *Item) Parent() *Item { return it.parent }

// Children returns a copy of the child list in insertion order.
func (it *Item) Children() []*Item { return slices.Clone(it.children) }

// Tree returns the tree the item belongs to, or nil when detached.
func (it *Item) Tree() *Tree { return it.tree }

// Destroyed reports whether Destroy has been called.
func (it *Item) Destroyed() bool { return it.destroyed }

// Subscribe implements [anchors.Item].
func (it *Item) Subscribe(l anchors.Listener, kinds anchors.ChangeKind) anchors.Subscription {
	it.nextSub++
	it.subs = append(it.subs, subscription{id: it.nextSub, l: l, kinds: kinds})
	return it.nextSub
}

// Unsubscribe implements [anchors.Item].
func (it *Item) Unsubscribe(s anchors.Subscription) {
	it.subs = slices.DeleteFunc(it.subs, func(sub subscription) bool { return sub.id == s })
}

// Listeners returns the number of active subscriptions.
func (it *Item) Listeners() int { return len(it.subs) }

// notify dispatches to a snapshot of the subscriptions. A subscription
// removed during dispatch is skipped.
func (it *Item) notify(kind anchors.ChangeKind, fn func(anchors.Listener)) {
	if len(it.subs) == 0 {
		return
	}
	snapshot := slices.Clone(it.subs)
	for _, s := range snapshot {
		if !s.kinds.Has(kind) || !it.subscribed(s.id) {
			continue
		}
		fn(s.l)
	}
}

func (it *Item) subscribed(id anchors.Subscription) bool {
	return slices.ContainsFunc(it.subs, func(s subscription) bool { return s.id == id })
}

// Anchors returns the item's anchor set, creating it on first use. Outside
// a configuration bracket the new set is completed immediately.
func (it *Item) Anchors() *anchors.Anchors {
	if it.anchors != nil {
		return it.anchors
	}
	var opts []anchors.Option
	if it.tree != nil {
		opts = it.tree.anchorOpts
	}
	it.anchors = anchors.New(it, opts...)
	if it.tree == nil || !it.tree.configuring {
		it.anchors.EndConfiguration()
	}
	return it.anchors
}

// HasAnchors reports whether the anchor set has been created.
func (it *Item) HasAnchors() bool { return it.anchors != nil }

// AddChild appends c to the receiver's children, detaching it from its
// previous parent first. When the receiver belongs to a tree, c and its
// descendants join it.
func (it *Item) AddChild(c *Item) error {
	switch {
	case c == nil || c.id == "":
		return ErrInvalidID
	case it.destroyed || c.destroyed:
		return ErrDestroyed
	}
	for p := it; p != nil; p = p.parent {
		if p == c {
			return ErrCycle
		}
	}
	if it.tree != nil && c.tree != it.tree {
		if err := it.tree.checkIDs(c); err != nil {
			return err
		}
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = it
	it.children = append(it.children, c)
	if it.tree != nil {
		it.tree.attach(c)
	}
	return nil
}

// RemoveChild detaches c. The removed subtree leaves the tree index but is
// not destroyed.
func (it *Item) RemoveChild(c *Item) {
	i := slices.Index(it.children, c)
	if i < 0 {
		return
	}
	it.children = slices.Delete(it.children, i, i+1)
	c.parent = nil
	if it.tree != nil {
		it.tree.detach(c)
	}
}

// Walk visits the item and its descendants in pre-order. Returning false
// from fn skips the visited item's children.
func (it *Item) Walk(fn func(*Item) bool) {
	if !fn(it) {
		return
	}
	for _, c := range it.children {
		c.Walk(fn)
	}
}

// Destroy destroys the children, releases the item's anchor set, tells
// every ChangeDestroyed listener, and finally detaches from the parent.
func (it *Item) Destroy() {
	if it.destroyed {
		return
	}
	for _, c := range slices.Clone(it.children) {
		c.Destroy()
	}
	if it.anchors != nil {
		it.anchors.Release()
	}
	it.notify(anchors.ChangeDestroyed, func(l anchors.Listener) {
		l.ItemDestroyed(it)
	})
	it.destroyed = true
	it.subs = nil
	if it.parent != nil {
		it.parent.RemoveChild(it)
	}
}

var _ anchors.Item = (*Item)(nil)
