package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/item"
	"github.com/matzehuels/anchorage/pkg/scene"
)

func pageSnapshot() scene.Snapshot {
	return scene.Snapshot{
		Name:  "page",
		Width: 400, Height: 300,
		Frames: []item.Frame{
			{ID: "page", Rect: geom.NewRect(0, 0, 400, 300), Absolute: geom.NewRect(0, 0, 400, 300)},
			{ID: "header", ParentID: "page", Depth: 1, Rect: geom.NewRect(0, 0, 400, 40), Absolute: geom.NewRect(0, 0, 400, 40)},
			{ID: "body", ParentID: "page", Depth: 1, Rect: geom.NewRect(10, 50, 380, 240), Absolute: geom.NewRect(10, 50, 380, 240)},
			{ID: "logo", ParentID: "body", Depth: 2, Rect: geom.NewRect(140, 95, 100, 50), Absolute: geom.NewRect(150, 145, 100, 50)},
		},
		Diagnostics: []anchors.Diagnostic{},
	}
}

func TestJSON(t *testing.T) {
	snap := pageSnapshot()
	data, err := JSON(snap)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	for _, want := range []string{`"name": "page"`, `"id": "logo"`, `"parent": "body"`, `"diagnostics": []`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON() missing %s", want)
		}
	}

	back, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(back.Frames) != 4 || back.Frames[3].Absolute != snap.Frames[3].Absolute {
		t.Errorf("ParseJSON() frames = %v", back.Frames)
	}
}

func TestSVG(t *testing.T) {
	tests := []struct {
		name    string
		opts    []SVGOption
		want    []string
		notWant []string
	}{
		{
			name: "default",
			want: []string{
				`<svg width="416" height="316"`,
				`<title>page</title>`,
				`<g id="item-logo">`,
				`width="400" height="40"`,
				`>logo</text>`,
			},
			notWant: []string{"#dc2626"},
		},
		{
			name:    "no labels",
			opts:    []SVGOption{WithoutLabels()},
			notWant: []string{"<text"},
		},
		{
			name: "padding and scale",
			opts: []SVGOption{WithPadding(0), WithSVGScale(0.5)},
			want: []string{`<svg width="200" height="150"`, `width="190" height="120"`},
		},
		{
			name: "highlight",
			opts: []SVGOption{WithHighlight("body")},
			want: []string{"#dc2626"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(SVG(pageSnapshot(), tt.opts...))
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("SVG() missing %s\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("SVG() should not contain %s", w)
				}
			}
		})
	}
}

func TestGrid(t *testing.T) {
	grid := Grid(pageSnapshot(), 40, 30)
	lines := strings.Split(strings.TrimSuffix(grid, "\n"), "\n")
	if len(lines) != 30 {
		t.Fatalf("Grid() has %d lines, want 30", len(lines))
	}
	if !strings.Contains(lines[0], "header") {
		t.Errorf("first line %q should carry the header label", lines[0])
	}
	if !strings.Contains(grid, "logo") {
		t.Error("Grid() missing logo label")
	}

	if Grid(pageSnapshot(), 1, 1) != "" {
		t.Error("Grid() with a degenerate size should be empty")
	}
	if Grid(scene.Snapshot{}, 10, 10) != "" {
		t.Error("Grid() of an empty scene should be empty")
	}
}

func TestText(t *testing.T) {
	snap := pageSnapshot()
	snap.Diagnostics = []anchors.Diagnostic{{ItemID: "body", Code: errors.ErrCodeAnchorLoop, Message: "possible anchor loop detected on vertical anchor"}}

	out := Text(snap, 40, 20)
	for _, want := range []string{"Item", "Absolute", "logo", "150,145", "body: possible anchor loop"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text() missing %q\n%s", want, out)
		}
	}
}

func TestConvertWithoutRasterizer(t *testing.T) {
	old := converter
	converter = "anchorage-missing-rsvg-convert"
	t.Cleanup(func() { converter = old })

	svg := SVG(pageSnapshot())
	if _, err := ToPDF(context.Background(), svg); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
	if _, err := ToPNG(context.Background(), svg, 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}
