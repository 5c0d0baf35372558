package item

import (
	"fmt"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/geom"
)

// Tree is a rooted item hierarchy with an id index and a configuration
// bracket. Anchor sets created inside the bracket stay in the Building state
// until EndConfiguration.
//
// The zero value is not usable - use NewTree.
type Tree struct {
	root        *Item
	index       map[string]*Item
	anchorOpts  []anchors.Option
	configuring bool
}

// NewTree creates a tree rooted at root. opts are applied to every anchor
// set created for items of the tree.
func NewTree(root *Item, opts ...anchors.Option) (*Tree, error) {
	if root == nil || root.id == "" {
		return nil, ErrInvalidID
	}
	t := &Tree{root: root, index: make(map[string]*Item), anchorOpts: opts}
	if err := t.checkIDs(root); err != nil {
		return nil, err
	}
	t.attach(root)
	return t, nil
}

// Root returns the root item.
func (t *Tree) Root() *Item { return t.root }

// Len returns the number of items in the tree.
func (t *Tree) Len() int { return len(t.index) }

// Lookup returns the item with the given id.
func (t *Tree) Lookup(id string) (*Item, bool) {
	it, ok := t.index[id]
	return it, ok
}

// Configuring reports whether the tree is inside a configuration bracket.
func (t *Tree) Configuring() bool { return t.configuring }

// BeginConfiguration opens a configuration bracket. Brackets do not nest.
func (t *Tree) BeginConfiguration() error {
	if t.configuring {
		return fmt.Errorf("tree %s: configuration already in progress", t.root.id)
	}
	t.configuring = true
	return nil
}

// EndConfiguration closes the bracket and completes every pending anchor set
// in pre-order, each running its first full update pass.
func (t *Tree) EndConfiguration() {
	if !t.configuring {
		return
	}
	t.configuring = false
	t.root.Walk(func(it *Item) bool {
		if it.anchors != nil {
			it.anchors.EndConfiguration()
		}
		return true
	})
}

// checkIDs verifies that the subtree rooted at c can join the index.
func (t *Tree) checkIDs(c *Item) error {
	seen := make(map[string]bool)
	var err error
	c.Walk(func(it *Item) bool {
		if err != nil {
			return false
		}
		if it.id == "" {
			err = ErrInvalidID
			return false
		}
		if seen[it.id] {
			err = fmt.Errorf("%w: %s", ErrDuplicateID, it.id)
			return false
		}
		if other, ok := t.index[it.id]; ok && other != it {
			err = fmt.Errorf("%w: %s", ErrDuplicateID, it.id)
			return false
		}
		seen[it.id] = true
		return true
	})
	return err
}

func (t *Tree) attach(c *Item) {
	c.Walk(func(it *Item) bool {
		it.tree = t
		t.index[it.id] = it
		return true
	})
}

func (t *Tree) detach(c *Item) {
	c.Walk(func(it *Item) bool {
		if t.index[it.id] == it {
			delete(t.index, it.id)
		}
		it.tree = nil
		return true
	})
}

// Frame is the solved geometry of one item.
type Frame struct {
	ID       string    `json:"id"`
	ParentID string    `json:"parent,omitempty"`
	Depth    int       `json:"depth"`
	Rect     geom.Rect `json:"rect"`
	Absolute geom.Rect `json:"absolute"`
}

// Snapshot returns the geometry of every item in pre-order.
func (t *Tree) Snapshot() []Frame {
	frames := make([]Frame, 0, len(t.index))
	var visit func(it *Item, depth int)
	visit = func(it *Item, depth int) {
		f := Frame{ID: it.id, Depth: depth, Rect: it.rect, Absolute: it.AbsoluteRect()}
		if it.parent != nil {
			f.ParentID = it.parent.id
		}
		frames = append(frames, f)
		for _, c := range it.children {
			visit(c, depth+1)
		}
	}
	visit(t.root, 0)
	return frames
}
