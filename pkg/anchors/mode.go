package anchors

// ModeKind says what drives an axis.
type ModeKind uint8

// Axis drive modes. Fill and CenterIn override line anchors on both axes.
const (
	ModeUnbound ModeKind = iota
	ModeFill
	ModeCenterIn
	ModeEdges
)

func (k ModeKind) String() string {
	switch k {
	case ModeFill:
		return "fill"
	case ModeCenterIn:
		return "centerIn"
	case ModeEdges:
		return "edges"
	}
	return "unbound"
}

// AxisMode is the drive mode of one axis. For ModeEdges, Primary is the owner
// edge that determines position, and Stretch (when Stretches is true) is the
// lower-priority edge consulted only for sizing.
type AxisMode struct {
	Kind      ModeKind
	Primary   Edge
	Stretch   Edge
	Stretches bool
}

func (m AxisMode) String() string {
	switch {
	case m.Kind != ModeEdges:
		return m.Kind.String()
	case m.Stretches:
		return m.Primary.String() + "+" + m.Stretch.String()
	}
	return m.Primary.String()
}

// HorizontalMode returns the current drive mode of the x axis.
func (a *Anchors) HorizontalMode() AxisMode {
	if m, ok := a.overrideMode(); ok {
		return m
	}
	u := a.used
	switch {
	case u.Has(HasLeft):
		switch {
		case u.Has(HasRight):
			return AxisMode{Kind: ModeEdges, Primary: Left, Stretch: Right, Stretches: true}
		case u.Has(HasHCenter):
			return AxisMode{Kind: ModeEdges, Primary: Left, Stretch: HCenter, Stretches: true}
		}
		return AxisMode{Kind: ModeEdges, Primary: Left}
	case u.Has(HasRight):
		if u.Has(HasHCenter) {
			return AxisMode{Kind: ModeEdges, Primary: Right, Stretch: HCenter, Stretches: true}
		}
		return AxisMode{Kind: ModeEdges, Primary: Right}
	case u.Has(HasHCenter):
		return AxisMode{Kind: ModeEdges, Primary: HCenter}
	}
	return AxisMode{}
}

// VerticalMode returns the current drive mode of the y axis.
// Baseline never participates in stretching.
func (a *Anchors) VerticalMode() AxisMode {
	if m, ok := a.overrideMode(); ok {
		return m
	}
	u := a.used
	switch {
	case u.Has(HasTop):
		switch {
		case u.Has(HasBottom):
			return AxisMode{Kind: ModeEdges, Primary: Top, Stretch: Bottom, Stretches: true}
		case u.Has(HasVCenter):
			return AxisMode{Kind: ModeEdges, Primary: Top, Stretch: VCenter, Stretches: true}
		}
		return AxisMode{Kind: ModeEdges, Primary: Top}
	case u.Has(HasBottom):
		if u.Has(HasVCenter) {
			return AxisMode{Kind: ModeEdges, Primary: Bottom, Stretch: VCenter, Stretches: true}
		}
		return AxisMode{Kind: ModeEdges, Primary: Bottom}
	case u.Has(HasVCenter):
		return AxisMode{Kind: ModeEdges, Primary: VCenter}
	case u.Has(HasBaseline):
		return AxisMode{Kind: ModeEdges, Primary: Baseline}
	}
	return AxisMode{}
}

func (a *Anchors) overrideMode() (AxisMode, bool) {
	switch {
	case a.fill != nil:
		return AxisMode{Kind: ModeFill}, true
	case a.centerIn != nil:
		return AxisMode{Kind: ModeCenterIn}, true
	}
	return AxisMode{}, false
}
