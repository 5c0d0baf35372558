package anchors

import (
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/observability"
)

// maxReentry is the depth at which a recomputation is considered looping.
// One nested recomputation of the same kind is allowed.
const maxReentry = 2

// Recomputation kinds, as passed to observability hooks.
const (
	kindFill       = "fill"
	kindCenterIn   = "centerIn"
	kindHorizontal = "horizontal"
	kindVertical   = "vertical"
)

var loopMessages = map[string]string{
	kindFill:       "possible anchor loop detected on fill",
	kindCenterIn:   "possible anchor loop detected on centerIn",
	kindHorizontal: "possible anchor loop detected on horizontal anchor",
	kindVertical:   "possible anchor loop detected on vertical anchor",
}

// guard counts nested entries into one kind of recomputation.
type guard struct{ depth int }

func (g *guard) leave() { g.depth-- }

// enter takes g, or reports a loop and returns false when the nesting limit
// is reached.
func (a *Anchors) enter(g *guard, kind string) bool {
	if g.depth < maxReentry {
		g.depth++
		return true
	}
	id := a.owner.ID()
	a.reporter.Report(Diagnostic{ItemID: id, Code: errors.ErrCodeAnchorLoop, Message: loopMessages[kind]})
	a.solverHooks().OnAnchorLoop(id, kind)
	return false
}

func (a *Anchors) solverHooks() observability.SolverHooks {
	if a.hooks != nil {
		return a.hooks
	}
	return observability.Solver()
}

// writeOwner runs fn with the self-write token held. The owner's synchronous
// change notification for that write consumes the token in
// OwnerGeometryChanged; the token never outlives fn.
func (a *Anchors) writeOwner(fn func()) {
	a.selfWrite = true
	defer func() { a.selfWrite = false }()
	fn()
}

func (a *Anchors) setOwnerX(v float64)      { a.writeOwner(func() { a.owner.SetX(v) }) }
func (a *Anchors) setOwnerY(v float64)      { a.writeOwner(func() { a.owner.SetY(v) }) }
func (a *Anchors) setOwnerWidth(v float64)  { a.writeOwner(func() { a.owner.SetWidth(v) }) }
func (a *Anchors) setOwnerHeight(v float64) { a.writeOwner(func() { a.owner.SetHeight(v) }) }
func (a *Anchors) setOwnerPos(x, y float64) { a.writeOwner(func() { a.owner.SetPos(x, y) }) }

// update runs a full pass: fill, center-in, horizontal lines, vertical lines.
func (a *Anchors) update() {
	a.fillChanged()
	a.centerInChanged()
	a.updateHorizontalAnchors()
	a.updateVerticalAnchors()
}

func (a *Anchors) fillChanged() {
	fill := a.fill
	if fill == nil || !a.complete() {
		return
	}
	if !a.enter(&a.updatingFill, kindFill) {
		return
	}
	defer a.updatingFill.leave()

	parent := a.owner.ParentItem()
	switch {
	case fill == parent:
		a.setOwnerPos(a.leftMargin, a.topMargin)
	case fill.ParentItem() == parent:
		a.setOwnerPos(fill.X()+a.leftMargin, fill.Y()+a.topMargin)
	}
	a.setOwnerWidth(fill.Width() - a.leftMargin - a.rightMargin)
	a.setOwnerHeight(fill.Height() - a.topMargin - a.bottomMargin)
	a.solverHooks().OnRecompute(a.owner.ID(), kindFill)
}

func (a *Anchors) centerInChanged() {
	c := a.centerIn
	if c == nil || a.fill != nil || !a.complete() {
		return
	}
	if !a.enter(&a.updatingCenterIn, kindCenterIn) {
		return
	}
	defer a.updatingCenterIn.leave()

	parent := a.owner.ParentItem()
	switch {
	case c == parent:
		a.setOwnerPos(
			(c.Width()-a.owner.Width())/2+a.hCenterOffset,
			(c.Height()-a.owner.Height())/2+a.vCenterOffset,
		)
	case c.ParentItem() == parent:
		a.setOwnerPos(
			c.X()+(c.Width()-a.owner.Width())/2+a.hCenterOffset,
			c.Y()+(c.Height()-a.owner.Height())/2+a.vCenterOffset,
		)
	default:
		return
	}
	a.solverHooks().OnRecompute(a.owner.ID(), kindCenterIn)
}

func (a *Anchors) updateHorizontalAnchors() {
	if a.fill != nil || a.centerIn != nil || !a.complete() {
		return
	}
	if !a.enter(&a.updatingHorizontal, kindHorizontal) {
		return
	}
	defer a.updatingHorizontal.leave()

	// Lines are copied up front: writes below may re-enter and rebind them.
	left, right, hCenter := a.left, a.right, a.hCenter
	mode := a.HorizontalMode()
	if mode.Kind != ModeEdges {
		return
	}
	if mode.Stretches {
		var width int
		var ok bool
		switch mode.Primary {
		case Left:
			if mode.Stretch == Right {
				width, ok = a.stretch(left, right, int(a.leftMargin), int(-a.rightMargin), Left)
			} else {
				width, ok = a.stretch(left, hCenter, int(a.leftMargin), int(a.hCenterOffset), Left)
				width *= 2
			}
		case Right:
			width, ok = a.stretch(hCenter, right, int(a.hCenterOffset), int(-a.rightMargin), Left)
			width *= 2
		}
		if ok {
			a.setOwnerWidth(float64(width))
		}
	}

	switch mode.Primary {
	case Left:
		if p, ok := a.targetEdge(left); ok {
			a.setOwnerX(p + a.leftMargin)
		}
	case Right:
		if p, ok := a.targetEdge(right); ok {
			a.setOwnerX(p - a.owner.Width() - a.rightMargin)
		}
	case HCenter:
		if p, ok := a.targetEdge(hCenter); ok {
			a.setOwnerX(p - a.owner.Width()/2 + a.hCenterOffset)
		}
	}
	a.solverHooks().OnRecompute(a.owner.ID(), kindHorizontal)
}

func (a *Anchors) updateVerticalAnchors() {
	if a.fill != nil || a.centerIn != nil || !a.complete() {
		return
	}
	if !a.enter(&a.updatingVertical, kindVertical) {
		return
	}
	defer a.updatingVertical.leave()

	top, bottom, vCenter, baseline := a.top, a.bottom, a.vCenter, a.baseline
	mode := a.VerticalMode()
	if mode.Kind != ModeEdges {
		return
	}
	if mode.Stretches {
		var height int
		var ok bool
		switch mode.Primary {
		case Top:
			if mode.Stretch == Bottom {
				height, ok = a.stretch(top, bottom, int(a.topMargin), int(-a.bottomMargin), Top)
			} else {
				height, ok = a.stretch(top, vCenter, int(a.topMargin), int(a.vCenterOffset), Top)
				height *= 2
			}
		case Bottom:
			height, ok = a.stretch(vCenter, bottom, int(a.vCenterOffset), int(-a.bottomMargin), Top)
			height *= 2
		}
		if ok {
			a.setOwnerHeight(float64(height))
		}
	}

	switch mode.Primary {
	case Top:
		if p, ok := a.targetEdge(top); ok {
			a.setOwnerY(p + a.topMargin)
		}
	case Bottom:
		if p, ok := a.targetEdge(bottom); ok {
			a.setOwnerY(p - a.owner.Height() - a.bottomMargin)
		}
	case VCenter:
		if p, ok := a.targetEdge(vCenter); ok {
			a.setOwnerY(p - a.owner.Height()/2 + a.vCenterOffset)
		}
	case Baseline:
		if p, ok := a.targetEdge(baseline); ok {
			a.setOwnerY(p - a.owner.BaselineOffset() + a.baselineOffset)
		}
	}
	a.solverHooks().OnRecompute(a.owner.ID(), kindVertical)
}

// targetEdge resolves l to a coordinate in the owner's parent space. A parent
// target is measured from its own origin (truncated); a sibling target uses
// its absolute position.
func (a *Anchors) targetEdge(l Line) (float64, bool) {
	parent := a.owner.ParentItem()
	switch {
	case l.Item == nil || parent == nil:
		return 0, false
	case l.Item == parent:
		return float64(adjustedPosition(l.Item, l.Edge)), true
	case l.Item.ParentItem() == parent:
		return position(l.Item, l.Edge), true
	}
	return 0, false
}

// stretch returns (edge2 + offset2) - (edge1 + offset1) in whole units.
// When exactly one endpoint is the parent, the sibling endpoint is shifted
// into the parent's frame using the parent's base edge (left or top) so both
// are measured in the same space. ok is false when an endpoint is neither
// parent nor sibling of the owner.
func (a *Anchors) stretch(e1, e2 Line, offset1, offset2 int, base Edge) (v int, ok bool) {
	parent := a.owner.ParentItem()
	if e1.Item == nil || e2.Item == nil || parent == nil {
		return 0, false
	}
	e1Parent, e2Parent := e1.Item == parent, e2.Item == parent
	e1Sibling, e2Sibling := e1.Item.ParentItem() == parent, e2.Item.ParentItem() == parent

	p1 := int(position(e1.Item, e1.Edge))
	p2 := int(position(e2.Item, e2.Edge))
	switch {
	case (e1Parent && e2Parent) || (e1Sibling && e2Sibling):
		return (p2 + offset2) - (p1 + offset1), true
	case e2Parent && e1Sibling:
		return (p2 + offset2) - (int(position(parent, base)) + p1 + offset1), true
	case e2Sibling && e1Parent:
		return (int(position(parent, base)) + p2 + offset2) - (p1 + offset1), true
	}
	return 0, false
}
