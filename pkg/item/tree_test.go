package item

import (
	"errors"
	"testing"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/geom"
)

func TestNewTree(t *testing.T) {
	root := New("root", geom.NewRect(0, 0, 100, 100))
	_ = root.AddChild(New("a", geom.Rect{}))
	_ = root.AddChild(New("b", geom.Rect{}))

	tr, err := NewTree(root)
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
	for _, id := range []string{"root", "a", "b"} {
		it, ok := tr.Lookup(id)
		if !ok || it.ID() != id {
			t.Errorf("Lookup(%q) = %v, %v", id, it, ok)
		}
		if it.Tree() != tr {
			t.Errorf("%s.Tree() not set", id)
		}
	}
	if _, ok := tr.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestNewTreeDuplicateID(t *testing.T) {
	root := New("root", geom.Rect{})
	_ = root.AddChild(New("a", geom.Rect{}))
	_ = root.AddChild(New("a", geom.Rect{}))

	if _, err := NewTree(root); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("NewTree() error = %v, want ErrDuplicateID", err)
	}
	if _, err := NewTree(nil); !errors.Is(err, ErrInvalidID) {
		t.Errorf("NewTree(nil) error = %v, want ErrInvalidID", err)
	}
}

func TestTreeAddChildIndexes(t *testing.T) {
	root := New("root", geom.Rect{})
	tr, _ := NewTree(root)

	sub := New("panel", geom.Rect{})
	_ = sub.AddChild(New("label", geom.Rect{}))
	if err := root.AddChild(sub); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	if _, ok := tr.Lookup("label"); !ok {
		t.Error("descendants should join the index")
	}

	if err := root.AddChild(New("label", geom.Rect{})); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("AddChild(dup) error = %v, want ErrDuplicateID", err)
	}

	root.RemoveChild(sub)
	if _, ok := tr.Lookup("label"); ok {
		t.Error("removed subtree should leave the index")
	}
	if sub.Tree() != nil {
		t.Error("removed subtree should be detached")
	}
}

func TestConfigurationBracket(t *testing.T) {
	root := New("root", geom.NewRect(0, 0, 200, 100))
	child := New("child", geom.NewRect(0, 0, 10, 10))
	_ = root.AddChild(child)
	tr, _ := NewTree(root, anchors.WithReporter(&anchors.Collector{}))

	if err := tr.BeginConfiguration(); err != nil {
		t.Fatalf("BeginConfiguration() error = %v", err)
	}
	if err := tr.BeginConfiguration(); err == nil {
		t.Error("nested BeginConfiguration() should fail")
	}

	a := child.Anchors()
	if err := a.SetFill(root); err != nil {
		t.Fatalf("SetFill() error = %v", err)
	}
	if a.State() != anchors.Building {
		t.Errorf("State() = %v, want building inside the bracket", a.State())
	}
	if got := child.Rect(); got != geom.NewRect(0, 0, 10, 10) {
		t.Errorf("Rect() = %v, recompute should be suppressed while building", got)
	}

	tr.EndConfiguration()

	if a.State() != anchors.Complete {
		t.Errorf("State() = %v, want complete", a.State())
	}
	if got := child.Rect(); got != geom.NewRect(0, 0, 200, 100) {
		t.Errorf("Rect() = %v, want fill of root", got)
	}
}

func TestSnapshot(t *testing.T) {
	root := New("root", geom.NewRect(10, 0, 100, 100))
	a := New("a", geom.NewRect(1, 1, 5, 5))
	b := New("b", geom.NewRect(2, 2, 6, 6))
	_ = root.AddChild(a)
	_ = a.AddChild(b)
	tr, _ := NewTree(root)

	frames := tr.Snapshot()
	if len(frames) != 3 {
		t.Fatalf("Snapshot() len = %d, want 3", len(frames))
	}
	want := []struct {
		id, parent string
		depth      int
		abs        geom.Rect
	}{
		{"root", "", 0, geom.NewRect(10, 0, 100, 100)},
		{"a", "root", 1, geom.NewRect(11, 1, 5, 5)},
		{"b", "a", 2, geom.NewRect(13, 3, 6, 6)},
	}
	for i, w := range want {
		f := frames[i]
		if f.ID != w.id || f.ParentID != w.parent || f.Depth != w.depth || f.Absolute != w.abs {
			t.Errorf("frame %d = %+v, want %+v", i, f, w)
		}
	}
}
