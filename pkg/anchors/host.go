package anchors

import "github.com/matzehuels/anchorage/pkg/geom"

// Item is the host item abstraction the solver lays out and anchors to.
//
// Implementations must return a nil interface (not a typed nil pointer) from
// ParentItem when the item has no parent, and must compare equal by identity.
type Item interface {
	// ID returns a stable identifier used in diagnostics.
	ID() string

	X() float64
	Y() float64
	Width() float64
	Height() float64

	SetX(x float64)
	SetY(y float64)
	SetPos(x, y float64)
	SetWidth(w float64)
	SetHeight(h float64)

	// BaselineOffset returns the distance from the item's top to its text
	// baseline. It is intrinsic to the item's content.
	BaselineOffset() float64

	// ParentItem returns the parent item, or nil for a root.
	ParentItem() Item

	// Subscribe registers l for the given change kinds and returns a handle
	// that identifies this registration.
	Subscribe(l Listener, kinds ChangeKind) Subscription

	// Unsubscribe removes a registration. Unknown handles are ignored.
	Unsubscribe(s Subscription)
}

// Listener receives change notifications from items it is subscribed to.
// Callbacks are delivered synchronously on the goroutine that changed the item.
type Listener interface {
	// ItemGeometryChanged is called after it's x, y, width or height changed.
	ItemGeometryChanged(it Item, newGeom, oldGeom geom.Rect)

	// ItemDestroyed is called when it is being destroyed. Listeners must drop
	// every reference to it.
	ItemDestroyed(it Item)
}

// BaselineListener is implemented by listeners that also follow baseline
// changes. Hosts deliver ItemBaselineChanged to subscriptions holding
// ChangeBaseline whose listener implements it.
type BaselineListener interface {
	// ItemBaselineChanged is called after it's baseline offset changed.
	ItemBaselineChanged(it Item)
}

// ChangeKind selects which notifications a subscription receives.
type ChangeKind uint8

// Change kinds.
const (
	ChangeGeometry ChangeKind = 1 << iota
	ChangeDestroyed
	ChangeBaseline
)

// Has reports whether k includes every bit of other.
func (k ChangeKind) Has(other ChangeKind) bool { return k&other == other }

// Subscription is an opaque handle for one listener registration.
// The zero value means "not subscribed".
type Subscription uint64
