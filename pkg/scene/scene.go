package scene

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/item"
)

// Scene is a built, live layout. Geometry writes through Apply propagate
// along the anchor bindings immediately.
type Scene struct {
	name     string
	tree     *item.Tree
	steps    []Step
	diags    *anchors.Collector
	reporter anchors.Reporter
	logger   *log.Logger
}

// Name returns the document name.
func (s *Scene) Name() string { return s.name }

// Tree returns the underlying item tree.
func (s *Scene) Tree() *item.Tree { return s.tree }

// Root returns the root item.
func (s *Scene) Root() *item.Item { return s.tree.Root() }

// Lookup returns the item with the given id.
func (s *Scene) Lookup(id string) (*item.Item, bool) { return s.tree.Lookup(id) }

// Steps returns the steps declared by the document.
func (s *Scene) Steps() []Step { return s.steps }

// Diagnostics returns every diagnostic reported since the build started,
// in arrival order.
func (s *Scene) Diagnostics() []anchors.Diagnostic { return s.diags.Diagnostics() }

// Apply writes the geometry fields set in step to its target item.
// When both x and y are set they are written in one move.
func (s *Scene) Apply(step Step) error {
	it, ok := s.tree.Lookup(step.Target)
	if !ok {
		return errors.New(errors.ErrCodeItemNotFound, "step target %q not found", step.Target)
	}

	switch {
	case step.X != nil && step.Y != nil:
		it.SetPos(*step.X, *step.Y)
	case step.X != nil:
		it.SetX(*step.X)
	case step.Y != nil:
		it.SetY(*step.Y)
	}
	if step.Width != nil {
		it.SetWidth(*step.Width)
	}
	if step.Height != nil {
		it.SetHeight(*step.Height)
	}
	if step.Baseline != nil {
		it.SetBaselineOffset(*step.Baseline)
	}

	s.logger.Debug("step applied", "target", step.Target, "rect", it.Rect())
	return nil
}

// ApplySteps applies the document's steps in order, stopping at the first
// unknown target.
func (s *Scene) ApplySteps() error {
	for i, step := range s.steps {
		if err := s.Apply(step); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "step %d", i)
		}
	}
	return nil
}

// Snapshot is the solved state of a scene.
type Snapshot struct {
	Name        string               `json:"name,omitempty"`
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	Frames      []item.Frame         `json:"frames"`
	Diagnostics []anchors.Diagnostic `json:"diagnostics"`
}

// Snapshot captures the current geometry of every item in pre-order. The
// frame size is the root's size.
func (s *Scene) Snapshot() Snapshot {
	root := s.tree.Root()
	diags := s.Diagnostics()
	if diags == nil {
		diags = []anchors.Diagnostic{}
	}
	return Snapshot{
		Name:        s.name,
		Width:       root.Width(),
		Height:      root.Height(),
		Frames:      s.tree.Snapshot(),
		Diagnostics: diags,
	}
}

// Binding is one live anchor binding: Item's Property follows Target.
// Edge is empty for fill and centerIn.
type Binding struct {
	Item     string `json:"item"`
	Property string `json:"property"`
	Target   string `json:"target"`
	Edge     string `json:"edge,omitempty"`
}

// Bindings lists the current bindings of every item, in item pre-order and
// property order.
func (s *Scene) Bindings() []Binding {
	var out []Binding
	s.tree.Root().Walk(func(it *item.Item) bool {
		if !it.HasAnchors() {
			return true
		}
		targets := it.Anchors().Targets()
		props := make([]anchors.Property, 0, len(targets))
		for p := range targets {
			props = append(props, p)
		}
		sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
		for _, p := range props {
			l := targets[p]
			b := Binding{Item: it.ID(), Property: p.String(), Target: l.Item.ID()}
			if p != anchors.PropFill && p != anchors.PropCenterIn {
				b.Edge = l.Edge.String()
			}
			out = append(out, b)
		}
		return true
	})
	return out
}
