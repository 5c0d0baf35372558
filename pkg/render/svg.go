package render

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/anchorage/pkg/scene"
)

// fills cycles by item depth so nested items stay distinguishable.
var fills = []string{"#f8fafc", "#e0f2fe", "#dcfce7", "#fef9c3", "#fce7f3", "#ede9fe"}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding   int
	labels    bool
	highlight string
	scale     float64
}

// WithPadding sets the blank border around the frame, in pixels (default 8).
func WithPadding(p int) SVGOption { return func(r *svgRenderer) { r.padding = max(p, 0) } }

// WithoutLabels omits the item id labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithHighlight draws the item with the given id with a thick outline.
func WithHighlight(id string) SVGOption { return func(r *svgRenderer) { r.highlight = id } }

// WithSVGScale multiplies every coordinate by s (default 1).
func WithSVGScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// SVG draws every frame of the snapshot as a rectangle at its absolute
// position, parents before children. Coordinates are rounded to whole pixels.
func SVG(snap scene.Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{padding: 8, labels: true, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := snap.Width, snap.Height
	for _, f := range snap.Frames {
		width = math.Max(width, f.Absolute.Right())
		height = math.Max(height, f.Absolute.Bottom())
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.px(width)+2*r.padding, r.px(height)+2*r.padding)
	if snap.Name != "" {
		canvas.Title(snap.Name)
	}
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", r.padding, r.padding))

	for _, f := range snap.Frames {
		a := f.Absolute
		style := fmt.Sprintf("fill:%s;stroke:#334155;stroke-width:1", fills[f.Depth%len(fills)])
		if f.ID == r.highlight {
			style = fmt.Sprintf("fill:%s;stroke:#dc2626;stroke-width:3", fills[f.Depth%len(fills)])
		}
		canvas.Gid("item-" + f.ID)
		canvas.Rect(r.px(a.X), r.px(a.Y), r.px(math.Max(a.Width, 0)), r.px(math.Max(a.Height, 0)), style)
		if r.labels && a.Width > 0 && a.Height > 0 {
			canvas.Text(r.px(a.X)+4, r.px(a.Y)+14, f.ID, "font-family:monospace;font-size:11px;fill:#0f172a")
		}
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) px(v float64) int {
	return int(math.Round(v * r.scale))
}
