package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/item"
	"github.com/matzehuels/anchorage/pkg/scene"
)

func testSnapshot() (scene.Snapshot, []scene.Binding) {
	snap := scene.Snapshot{
		Width: 100, Height: 100,
		Frames: []item.Frame{
			{ID: "root", Rect: geom.NewRect(0, 0, 100, 100)},
			{ID: "a", ParentID: "root", Depth: 1, Rect: geom.NewRect(0, 0, 100, 20)},
			{ID: "b", ParentID: "root", Depth: 1, Rect: geom.NewRect(10, 30, 80, 60)},
		},
	}
	bindings := []scene.Binding{
		{Item: "a", Property: "fill", Target: "root"},
		{Item: "b", Property: "top", Target: "a", Edge: "bottom"},
	}
	return snap, bindings
}

func TestToDOT(t *testing.T) {
	snap, bindings := testSnapshot()

	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name: "plain",
			want: []string{
				`"root" [label="root"];`,
				`"a" -> "root" [label="fill"];`,
				`"b" -> "a" [label="top → bottom"];`,
			},
			notWant: []string{"style=dashed"},
		},
		{
			name: "detailed",
			opts: Options{Detailed: true},
			want: []string{`"b" [label="b\n80x60 at (10, 30)"];`},
		},
		{
			name: "hierarchy",
			opts: Options{Hierarchy: true},
			want: []string{`"root" -> "b" [style=dashed, color=grey, arrowhead=none];`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(snap, bindings, tt.opts)
			if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
				t.Errorf("ToDOT() is not a digraph:\n%s", dot)
			}
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("ToDOT() missing %s\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("ToDOT() should not contain %s", w)
				}
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	snap, bindings := testSnapshot()
	svg, err := RenderSVG(context.Background(), ToDOT(snap, bindings, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("RenderSVG() root tag not normalized:\n%s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "offset viewBox",
			in:   `<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 0"></svg>`,
			want: `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}
