package anchors

import (
	"github.com/matzehuels/anchorage/pkg/errors"
)

// Validation messages, reported verbatim through the Reporter.
const (
	msgNullItem         = "cannot anchor to a null item"
	msgSelf             = "cannot anchor item to self"
	msgNotParentSibling = "cannot anchor to an item that isn't a parent or sibling"
	msgHorizontalAxis   = "cannot anchor a horizontal edge to a vertical edge"
	msgVerticalAxis     = "cannot anchor a vertical edge to a horizontal edge"
	msgHorizontalTriple = "cannot specify left, right, and hcenter anchors"
	msgVerticalTriple   = "cannot specify top, bottom, and vcenter anchors"
	msgBaseline         = "baseline anchor cannot be used in conjunction with top, bottom, or vcenter anchors"
)

// SetFill anchors all four edges of the owner to target, inset by the
// margins. A nil target clears the binding, like ResetFill. Binding
// mutators do nothing once the set is released.
func (a *Anchors) SetFill(target Item) error {
	if a.released {
		return nil
	}
	if target == nil {
		a.ResetFill()
		return nil
	}
	if target == a.fill {
		return nil
	}
	if err := a.checkTarget(PropFill, target); err != nil {
		return err
	}
	a.remDepend(PropFill)
	a.fill = target
	a.addDepend(PropFill, target)
	a.emit(PropFill)
	a.fillChanged()
	return nil
}

// ResetFill clears the fill binding. Line anchors and center-in take over
// again immediately.
func (a *Anchors) ResetFill() {
	if a.fill == nil {
		return
	}
	a.remDepend(PropFill)
	a.fill = nil
	a.emit(PropFill)
	a.update()
}

// SetCenterIn centers the owner in target, shifted by the center offsets.
// It has no effect on geometry while fill is set. A nil target clears the
// binding, like ResetCenterIn.
func (a *Anchors) SetCenterIn(target Item) error {
	if a.released {
		return nil
	}
	if target == nil {
		a.ResetCenterIn()
		return nil
	}
	if target == a.centerIn {
		return nil
	}
	if err := a.checkTarget(PropCenterIn, target); err != nil {
		return err
	}
	a.remDepend(PropCenterIn)
	a.centerIn = target
	a.addDepend(PropCenterIn, target)
	a.emit(PropCenterIn)
	a.centerInChanged()
	return nil
}

// ResetCenterIn clears the center-in binding.
func (a *Anchors) ResetCenterIn() {
	if a.centerIn == nil {
		return
	}
	a.remDepend(PropCenterIn)
	a.centerIn = nil
	a.emit(PropCenterIn)
	a.update()
}

// SetLeft binds the owner's left edge to l.
func (a *Anchors) SetLeft(l Line) error { return a.setLine(PropLeft, l) }

// ResetLeft clears the left anchor.
func (a *Anchors) ResetLeft() { a.resetLine(PropLeft) }

// SetRight binds the owner's right edge to l.
func (a *Anchors) SetRight(l Line) error { return a.setLine(PropRight, l) }

// ResetRight clears the right anchor.
func (a *Anchors) ResetRight() { a.resetLine(PropRight) }

// SetHorizontalCenter binds the owner's horizontal center to l.
func (a *Anchors) SetHorizontalCenter(l Line) error { return a.setLine(PropHorizontalCenter, l) }

// ResetHorizontalCenter clears the horizontal center anchor.
func (a *Anchors) ResetHorizontalCenter() { a.resetLine(PropHorizontalCenter) }

// SetTop binds the owner's top edge to l.
func (a *Anchors) SetTop(l Line) error { return a.setLine(PropTop, l) }

// ResetTop clears the top anchor.
func (a *Anchors) ResetTop() { a.resetLine(PropTop) }

// SetBottom binds the owner's bottom edge to l.
func (a *Anchors) SetBottom(l Line) error { return a.setLine(PropBottom, l) }

// ResetBottom clears the bottom anchor.
func (a *Anchors) ResetBottom() { a.resetLine(PropBottom) }

// SetVerticalCenter binds the owner's vertical center to l.
func (a *Anchors) SetVerticalCenter(l Line) error { return a.setLine(PropVerticalCenter, l) }

// ResetVerticalCenter clears the vertical center anchor.
func (a *Anchors) ResetVerticalCenter() { a.resetLine(PropVerticalCenter) }

// SetBaseline binds the owner's baseline to l.
func (a *Anchors) SetBaseline(l Line) error { return a.setLine(PropBaseline, l) }

// ResetBaseline clears the baseline anchor.
func (a *Anchors) ResetBaseline() { a.resetLine(PropBaseline) }

// SetLine binds the line property p. It is the generic form of SetLeft,
// SetTop and friends, used by declarative loaders.
func (a *Anchors) SetLine(p Property, l Line) error {
	if !p.isLine() {
		return errors.New(errors.ErrCodeInvalidInput, "%s is not a line anchor", p)
	}
	return a.setLine(p, l)
}

// ResetLine clears the line property p. Non-line properties are ignored.
func (a *Anchors) ResetLine(p Property) {
	if p.isLine() {
		a.resetLine(p)
	}
}

func (a *Anchors) setLine(p Property, l Line) error {
	if a.released {
		return nil
	}
	if err := a.checkLine(p, l); err != nil {
		return err
	}
	cur := a.linePtr(p)
	if *cur == l {
		return nil
	}
	if err := a.checkExclusive(p, a.used|p.used()); err != nil {
		return err
	}
	a.remDepend(p)
	*cur = l
	a.used |= p.used()
	a.addDepend(p, l.Item)
	a.emit(p)
	a.updateAxis(p)
	return nil
}

func (a *Anchors) resetLine(p Property) {
	cur := a.linePtr(p)
	if !cur.IsSet() {
		return
	}
	a.remDepend(p)
	*cur = Line{}
	a.used &^= p.used()
	a.emit(p)
	a.updateAxis(p)
}

func (a *Anchors) updateAxis(p Property) {
	if p.horizontal() {
		a.updateHorizontalAnchors()
		return
	}
	a.updateVerticalAnchors()
}

// isParentOrSibling reports whether target is the owner's parent or shares it.
// A root owner has neither.
func (a *Anchors) isParentOrSibling(target Item) bool {
	parent := a.owner.ParentItem()
	if parent == nil {
		return false
	}
	return target == parent || target.ParentItem() == parent
}

func (a *Anchors) checkTarget(p Property, target Item) error {
	switch {
	case target == nil:
		return a.reject(p, errors.ErrCodeNullTarget, msgNullItem)
	case !a.isParentOrSibling(target):
		return a.reject(p, errors.ErrCodeNotParentOrSibling, msgNotParentSibling)
	case target == a.owner:
		return a.reject(p, errors.ErrCodeSelfAnchor, msgSelf)
	}
	return nil
}

func (a *Anchors) checkLine(p Property, l Line) error {
	if l.Item == nil {
		return a.reject(p, errors.ErrCodeNullTarget, msgNullItem)
	}
	if p.horizontal() {
		if !l.Edge.Horizontal() {
			return a.reject(p, errors.ErrCodeAxisMismatch, msgHorizontalAxis)
		}
	} else if !l.Edge.Vertical() {
		return a.reject(p, errors.ErrCodeAxisMismatch, msgVerticalAxis)
	}
	return a.checkTarget(p, l.Item)
}

// checkExclusive validates the used set u that binding p would produce.
func (a *Anchors) checkExclusive(p Property, u Used) error {
	if p.horizontal() {
		if u.Has(HorizontalMask) {
			return a.reject(p, errors.ErrCodeConflictingAnchors, msgHorizontalTriple)
		}
		return nil
	}
	const lines = HasTop | HasBottom | HasVCenter
	switch {
	case u.Has(lines):
		return a.reject(p, errors.ErrCodeConflictingAnchors, msgVerticalTriple)
	case u.Has(HasBaseline) && u&lines != 0:
		return a.reject(p, errors.ErrCodeBaselineConflict, msgBaseline)
	}
	return nil
}

// reject reports a refused binding and returns it as an error.
func (a *Anchors) reject(p Property, code errors.Code, msg string) error {
	id := a.owner.ID()
	a.reporter.Report(Diagnostic{ItemID: id, Code: code, Message: msg})
	a.solverHooks().OnBindingRejected(id, p.String(), string(code))
	return errors.New(code, "%s: anchors.%s: %s", id, p, msg)
}
