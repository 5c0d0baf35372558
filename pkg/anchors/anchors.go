package anchors

import (
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/observability"
)

// State is the configuration state of an anchor set.
type State uint8

// States. The transition Building -> Complete happens once.
const (
	Building State = iota
	Complete
)

func (s State) String() string {
	if s == Complete {
		return "complete"
	}
	return "building"
}

// Anchors is the anchor set owned by one item. It is not safe for concurrent
// use; like the item tree it belongs to, it is driven from one goroutine.
type Anchors struct {
	owner    Item
	reporter Reporter
	hooks    observability.SolverHooks

	fill     Item
	centerIn Item

	left, right, hCenter           Line
	top, bottom, vCenter, baseline Line
	used                           Used
	subs                           [propCount]Subscription

	leftMargin, rightMargin float64
	topMargin, bottomMargin float64
	margins                 float64
	hCenterOffset           float64
	vCenterOffset           float64
	baselineOffset          float64

	updatingFill       guard
	updatingCenterIn   guard
	updatingHorizontal guard
	updatingVertical   guard
	selfWrite          bool

	state    State
	released bool

	observers    []observer
	nextObserver int
}

type observer struct {
	id int
	fn func(Property)
}

// Option configures an Anchors.
type Option func(*Anchors)

// WithReporter sets the diagnostic sink. The default logs through
// charmbracelet/log's default logger.
func WithReporter(r Reporter) Option {
	return func(a *Anchors) {
		if r != nil {
			a.reporter = r
		}
	}
}

// WithHooks sets the solver hooks. The default is the globally registered
// [observability.Solver], looked up on every event.
func WithHooks(h observability.SolverHooks) Option {
	return func(a *Anchors) { a.hooks = h }
}

// New creates the anchor set for owner. The set starts in the Building
// state: nothing is recomputed until [Anchors.EndConfiguration].
func New(owner Item, opts ...Option) *Anchors {
	a := &Anchors{owner: owner}
	for _, opt := range opts {
		opt(a)
	}
	if a.reporter == nil {
		a.reporter = LogReporter(nil)
	}
	return a
}

// Owner returns the item this set lays out.
func (a *Anchors) Owner() Item { return a.owner }

// State returns the configuration state.
func (a *Anchors) State() State { return a.state }

// BeginConfiguration marks the start of batch construction. Recomputation is
// suppressed until EndConfiguration. It fails once the set is complete,
// because completion cannot be undone.
func (a *Anchors) BeginConfiguration() error {
	if a.state == Complete {
		return errors.New(errors.ErrCodeInvalidState, "anchors of %s are already complete", a.owner.ID())
	}
	return nil
}

// EndConfiguration completes the set and runs one full update pass.
// Later calls do nothing.
func (a *Anchors) EndConfiguration() {
	if a.state == Complete {
		return
	}
	a.state = Complete
	a.update()
}

func (a *Anchors) complete() bool { return a.state == Complete && !a.released }

// Release unregisters from every referenced target. The host calls it when
// the owner is destroyed. The set stops recomputing afterwards and ignores
// new bindings.
func (a *Anchors) Release() {
	if a.released {
		return
	}
	for p := PropFill; p <= PropBaseline; p++ {
		a.remDepend(p)
	}
	a.released = true
}

// OnChanged registers fn to be called after a property changes. It returns
// a function that removes the registration.
func (a *Anchors) OnChanged(fn func(Property)) (unbind func()) {
	a.nextObserver++
	id := a.nextObserver
	a.observers = append(a.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range a.observers {
			if o.id == id {
				a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
				return
			}
		}
	}
}

func (a *Anchors) emit(p Property) {
	if len(a.observers) == 0 {
		return
	}
	snapshot := make([]observer, len(a.observers))
	copy(snapshot, a.observers)
	for _, o := range snapshot {
		o.fn(p)
	}
}

// Fill returns the fill target, or nil.
func (a *Anchors) Fill() Item { return a.fill }

// CenterIn returns the center-in target, or nil.
func (a *Anchors) CenterIn() Item { return a.centerIn }

// Left returns the left anchor line.
func (a *Anchors) Left() Line { return a.left }

// Right returns the right anchor line.
func (a *Anchors) Right() Line { return a.right }

// HorizontalCenter returns the horizontal center anchor line.
func (a *Anchors) HorizontalCenter() Line { return a.hCenter }

// Top returns the top anchor line.
func (a *Anchors) Top() Line { return a.top }

// Bottom returns the bottom anchor line.
func (a *Anchors) Bottom() Line { return a.bottom }

// VerticalCenter returns the vertical center anchor line.
func (a *Anchors) VerticalCenter() Line { return a.vCenter }

// Baseline returns the baseline anchor line.
func (a *Anchors) Baseline() Line { return a.baseline }

// UsedAnchors returns the active line anchors. Fill and center-in are not
// included.
func (a *Anchors) UsedAnchors() Used { return a.used }

// LeftMargin returns the left margin.
func (a *Anchors) LeftMargin() float64 { return a.leftMargin }

// RightMargin returns the right margin.
func (a *Anchors) RightMargin() float64 { return a.rightMargin }

// TopMargin returns the top margin.
func (a *Anchors) TopMargin() float64 { return a.topMargin }

// BottomMargin returns the bottom margin.
func (a *Anchors) BottomMargin() float64 { return a.bottomMargin }

// Margins returns the aggregate margin.
func (a *Anchors) Margins() float64 { return a.margins }

// HorizontalCenterOffset returns the horizontal center offset.
func (a *Anchors) HorizontalCenterOffset() float64 { return a.hCenterOffset }

// VerticalCenterOffset returns the vertical center offset.
func (a *Anchors) VerticalCenterOffset() float64 { return a.vCenterOffset }

// BaselineOffset returns the configured baseline offset.
func (a *Anchors) BaselineOffset() float64 { return a.baselineOffset }

// Targets returns every item currently referenced by the set, one entry per
// bound property, keyed by property.
func (a *Anchors) Targets() map[Property]Line {
	out := make(map[Property]Line)
	if a.fill != nil {
		out[PropFill] = Line{Item: a.fill}
	}
	if a.centerIn != nil {
		out[PropCenterIn] = Line{Item: a.centerIn}
	}
	for _, p := range lineProps {
		if l := *a.linePtr(p); l.IsSet() {
			out[p] = l
		}
	}
	return out
}

func (a *Anchors) linePtr(p Property) *Line {
	switch p {
	case PropLeft:
		return &a.left
	case PropRight:
		return &a.right
	case PropHorizontalCenter:
		return &a.hCenter
	case PropTop:
		return &a.top
	case PropBottom:
		return &a.bottom
	case PropVerticalCenter:
		return &a.vCenter
	case PropBaseline:
		return &a.baseline
	}
	panic("anchors: not a line property: " + p.String())
}

// addDepend subscribes to target's geometry on behalf of property p.
func (a *Anchors) addDepend(p Property, target Item) {
	if target == nil {
		return
	}
	a.subs[p] = target.Subscribe(a, ChangeGeometry|ChangeDestroyed|ChangeBaseline)
}

// remDepend drops the subscription held for property p.
func (a *Anchors) remDepend(p Property) {
	s := a.subs[p]
	if s == 0 {
		return
	}
	a.subs[p] = 0
	if target := a.target(p); target != nil {
		target.Unsubscribe(s)
	}
}

func (a *Anchors) target(p Property) Item {
	switch p {
	case PropFill:
		return a.fill
	case PropCenterIn:
		return a.centerIn
	}
	if p.isLine() {
		return a.linePtr(p).Item
	}
	return nil
}

// ItemDestroyed implements [Listener]. Every binding that references it is
// cleared and its used flag dropped. Geometry is left as it is.
func (a *Anchors) ItemDestroyed(it Item) {
	if it == nil {
		return
	}
	var cleared []Property
	if a.fill == it {
		a.remDepend(PropFill)
		a.fill = nil
		cleared = append(cleared, PropFill)
	}
	if a.centerIn == it {
		a.remDepend(PropCenterIn)
		a.centerIn = nil
		cleared = append(cleared, PropCenterIn)
	}
	for _, p := range lineProps {
		l := a.linePtr(p)
		if l.Item != it {
			continue
		}
		a.remDepend(p)
		*l = Line{}
		a.used &^= p.used()
		cleared = append(cleared, p)
	}
	for _, p := range cleared {
		a.emit(p)
	}
}

// ItemGeometryChanged implements [Listener]. Fill and center-in are always
// recomputed; line anchors only for the axis whose geometry moved.
func (a *Anchors) ItemGeometryChanged(_ Item, newGeom, oldGeom geom.Rect) {
	a.fillChanged()
	a.centerInChanged()
	if newGeom.HorizontalChanged(oldGeom) {
		a.updateHorizontalAnchors()
	}
	if newGeom.VerticalChanged(oldGeom) {
		a.updateVerticalAnchors()
	}
}

// ItemBaselineChanged implements [BaselineListener]. The rect of it is
// unchanged, so only the vertical lines are recomputed.
func (a *Anchors) ItemBaselineChanged(Item) {
	a.updateVerticalAnchors()
}

// OwnerGeometryChanged must be called by the host after the owner's own
// geometry changed. Changes written by this set are ignored once.
func (a *Anchors) OwnerGeometryChanged() {
	if a.selfWrite {
		a.selfWrite = false
		return
	}
	a.update()
}

var (
	_ Listener         = (*Anchors)(nil)
	_ BaselineListener = (*Anchors)(nil)
)
