package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/item"
	"github.com/matzehuels/anchorage/pkg/observability"
)

// ParentRef is the reference that names an item's parent.
const ParentRef = "parent"

// Options configures Build.
type Options struct {
	// Strict turns rejected bindings and unresolved references into a build error.
	Strict bool

	// Reporter receives every diagnostic in addition to the scene's own collector.
	Reporter anchors.Reporter

	// Logger, when set, logs diagnostics at warn level and build progress at debug level.
	Logger *log.Logger

	// Hooks overrides the global solver hooks for this scene.
	Hooks observability.SolverHooks
}

// Build constructs the item tree described by doc, binds every declared
// anchor inside one configuration bracket and runs the first layout pass.
//
// Items without an id get a generated one. Duplicate or invalid ids abort
// the build. Rejected bindings and unresolved references are recorded as
// diagnostics; they only fail the build in Strict mode.
func Build(doc *Document, opts Options) (*Scene, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "nil document")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := assignIDs(&doc.Root, make(map[string]bool)); err != nil {
		return nil, err
	}

	s := &Scene{name: doc.Name, steps: doc.Steps, logger: logger, diags: &anchors.Collector{}}
	reporters := []anchors.Reporter{s.diags, opts.Reporter}
	if opts.Logger != nil {
		reporters = append(reporters, anchors.LogReporter(opts.Logger))
	}
	s.reporter = anchors.Tee(reporters...)

	anchorOpts := []anchors.Option{anchors.WithReporter(s.reporter)}
	if opts.Hooks != nil {
		anchorOpts = append(anchorOpts, anchors.WithHooks(opts.Hooks))
	}

	root := newItem(&doc.Root)
	tree, err := item.NewTree(root, anchorOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "create tree")
	}
	s.tree = tree

	if err := tree.BeginConfiguration(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "begin configuration")
	}
	if err := addChildren(root, &doc.Root); err != nil {
		tree.EndConfiguration()
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "build tree")
	}

	var bindErr error
	walkNodes(&doc.Root, func(n *Node) {
		if n.Anchors == nil {
			return
		}
		it, _ := tree.Lookup(n.ID)
		bindErr = multierr.Append(bindErr, s.bind(it, n.Anchors))
	})
	tree.EndConfiguration()

	logger.Debug("scene built", "name", s.name, "items", tree.Len(), "diagnostics", s.diags.Len())

	if opts.Strict && bindErr != nil {
		return nil, bindErr
	}
	return s, nil
}

func assignIDs(n *Node, seen map[string]bool) error {
	if n.ID == "" {
		n.ID = "item-" + uuid.NewString()
	} else if err := errors.ValidateItemID(n.ID); err != nil {
		return err
	}
	if seen[n.ID] {
		return errors.New(errors.ErrCodeDuplicateID, "duplicate item id %q", n.ID)
	}
	seen[n.ID] = true
	for i := range n.Children {
		if err := assignIDs(&n.Children[i], seen); err != nil {
			return err
		}
	}
	return nil
}

func newItem(n *Node) *item.Item {
	it := item.New(n.ID, geom.NewRect(n.X, n.Y, n.Width, n.Height))
	it.SetBaselineOffset(n.Baseline)
	return it
}

func addChildren(parent *item.Item, n *Node) error {
	for i := range n.Children {
		cn := &n.Children[i]
		c := newItem(cn)
		if err := parent.AddChild(c); err != nil {
			return err
		}
		if err := addChildren(c, cn); err != nil {
			return err
		}
	}
	return nil
}

func walkNodes(n *Node, fn func(*Node)) {
	fn(n)
	for i := range n.Children {
		walkNodes(&n.Children[i], fn)
	}
}

// bind applies one node's anchor declarations. Bindings go first so that
// margins and offsets land on an already bound set.
func (s *Scene) bind(it *item.Item, decl *Anchors) error {
	a := it.Anchors()
	var err error

	if decl.Fill != "" {
		err = multierr.Append(err, s.bindItem(it, anchors.PropFill, decl.Fill, a.SetFill))
	}
	if decl.CenterIn != "" {
		err = multierr.Append(err, s.bindItem(it, anchors.PropCenterIn, decl.CenterIn, a.SetCenterIn))
	}

	lines := []struct {
		prop anchors.Property
		ref  string
	}{
		{anchors.PropLeft, decl.Left},
		{anchors.PropRight, decl.Right},
		{anchors.PropHorizontalCenter, decl.HorizontalCenter},
		{anchors.PropTop, decl.Top},
		{anchors.PropBottom, decl.Bottom},
		{anchors.PropVerticalCenter, decl.VerticalCenter},
		{anchors.PropBaseline, decl.Baseline},
	}
	for _, l := range lines {
		if l.ref == "" {
			continue
		}
		line, rerr := s.resolveLine(it, l.prop, l.ref)
		if rerr != nil {
			err = multierr.Append(err, rerr)
			continue
		}
		err = multierr.Append(err, a.SetLine(l.prop, line))
	}

	if decl.Margins != nil {
		a.SetMargins(*decl.Margins)
	}
	if decl.LeftMargin != nil {
		a.SetLeftMargin(*decl.LeftMargin)
	}
	if decl.RightMargin != nil {
		a.SetRightMargin(*decl.RightMargin)
	}
	if decl.TopMargin != nil {
		a.SetTopMargin(*decl.TopMargin)
	}
	if decl.BottomMargin != nil {
		a.SetBottomMargin(*decl.BottomMargin)
	}
	if decl.HorizontalCenterOffset != nil {
		a.SetHorizontalCenterOffset(*decl.HorizontalCenterOffset)
	}
	if decl.VerticalCenterOffset != nil {
		a.SetVerticalCenterOffset(*decl.VerticalCenterOffset)
	}
	if decl.BaselineOffset != nil {
		a.SetBaselineOffset(*decl.BaselineOffset)
	}
	return err
}

func (s *Scene) bindItem(it *item.Item, p anchors.Property, ref string, set func(anchors.Item) error) error {
	target, err := s.resolveItem(it, p, ref)
	if err != nil {
		return err
	}
	return set(target)
}

// resolveItem maps a reference to an item of the tree. It does not check
// the parent-or-sibling rule; the anchor set does.
func (s *Scene) resolveItem(owner *item.Item, p anchors.Property, ref string) (anchors.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == ParentRef {
		if parent := owner.Parent(); parent != nil {
			return parent, nil
		}
		return nil, s.refError(owner, p, errors.ErrCodeInvalidRef, fmt.Sprintf("%s has no parent", owner.ID()))
	}
	target, ok := s.tree.Lookup(ref)
	if !ok {
		return nil, s.refError(owner, p, errors.ErrCodeInvalidRef, fmt.Sprintf("unknown item %q", ref))
	}
	return target, nil
}

// resolveLine parses "<ref>.<edge>". The edge is taken after the last dot.
func (s *Scene) resolveLine(owner *item.Item, p anchors.Property, ref string) (anchors.Line, error) {
	i := strings.LastIndexByte(ref, '.')
	if i <= 0 || i == len(ref)-1 {
		return anchors.Line{}, s.refError(owner, p, errors.ErrCodeInvalidRef,
			fmt.Sprintf("malformed line reference %q, want <item>.<edge>", ref))
	}
	edge, err := anchors.ParseEdge(ref[i+1:])
	if err != nil {
		return anchors.Line{}, s.refError(owner, p, errors.ErrCodeInvalidEdge, errors.UserMessage(err))
	}
	target, err := s.resolveItem(owner, p, ref[:i])
	if err != nil {
		return anchors.Line{}, err
	}
	return anchors.Line{Item: target, Edge: edge}, nil
}

func (s *Scene) refError(owner *item.Item, p anchors.Property, code errors.Code, msg string) error {
	s.reporter.Report(anchors.Diagnostic{ItemID: owner.ID(), Code: code, Message: msg})
	return errors.New(code, "%s: anchors.%s: %s", owner.ID(), p, msg)
}
