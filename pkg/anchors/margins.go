package anchors

// SetLeftMargin sets the distance between the owner's left edge and its
// anchor (or the fill target's left edge).
func (a *Anchors) SetLeftMargin(v float64) {
	if a.leftMargin == v {
		return
	}
	a.leftMargin = v
	a.emit(PropLeftMargin)
	a.marginChanged(true)
}

// SetRightMargin sets the right margin.
func (a *Anchors) SetRightMargin(v float64) {
	if a.rightMargin == v {
		return
	}
	a.rightMargin = v
	a.emit(PropRightMargin)
	a.marginChanged(true)
}

// SetTopMargin sets the top margin.
func (a *Anchors) SetTopMargin(v float64) {
	if a.topMargin == v {
		return
	}
	a.topMargin = v
	a.emit(PropTopMargin)
	a.marginChanged(false)
}

// SetBottomMargin sets the bottom margin.
func (a *Anchors) SetBottomMargin(v float64) {
	if a.bottomMargin == v {
		return
	}
	a.bottomMargin = v
	a.emit(PropBottomMargin)
	a.marginChanged(false)
}

// SetMargins sets the aggregate margin. Each edge margin follows it while
// that margin is zero or still equal to the previous aggregate; an edge
// margin set explicitly to anything else keeps its value.
func (a *Anchors) SetMargins(v float64) {
	if a.margins == v {
		return
	}
	prev := a.margins
	if a.leftMargin == 0 || a.leftMargin == prev {
		a.SetLeftMargin(v)
	}
	if a.rightMargin == 0 || a.rightMargin == prev {
		a.SetRightMargin(v)
	}
	if a.topMargin == 0 || a.topMargin == prev {
		a.SetTopMargin(v)
	}
	if a.bottomMargin == 0 || a.bottomMargin == prev {
		a.SetBottomMargin(v)
	}
	a.margins = v
	a.emit(PropMargins)
}

// SetHorizontalCenterOffset sets the horizontal shift applied by center-in
// and the horizontal center anchor.
func (a *Anchors) SetHorizontalCenterOffset(v float64) {
	if a.hCenterOffset == v {
		return
	}
	a.hCenterOffset = v
	a.emit(PropHorizontalCenterOffset)
	a.offsetChanged(true)
}

// SetVerticalCenterOffset sets the vertical shift applied by center-in and
// the vertical center anchor.
func (a *Anchors) SetVerticalCenterOffset(v float64) {
	if a.vCenterOffset == v {
		return
	}
	a.vCenterOffset = v
	a.emit(PropVerticalCenterOffset)
	a.offsetChanged(false)
}

// SetBaselineOffset sets the shift applied by the baseline anchor.
func (a *Anchors) SetBaselineOffset(v float64) {
	if a.baselineOffset == v {
		return
	}
	a.baselineOffset = v
	a.emit(PropBaselineOffset)
	a.updateVerticalAnchors()
}

func (a *Anchors) marginChanged(horizontal bool) {
	switch {
	case a.fill != nil:
		a.fillChanged()
	case horizontal:
		a.updateHorizontalAnchors()
	default:
		a.updateVerticalAnchors()
	}
}

func (a *Anchors) offsetChanged(horizontal bool) {
	switch {
	case a.centerIn != nil:
		a.centerInChanged()
	case horizontal:
		a.updateHorizontalAnchors()
	default:
		a.updateVerticalAnchors()
	}
}
