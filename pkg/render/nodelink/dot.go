package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/anchorage/pkg/item"
	"github.com/matzehuels/anchorage/pkg/scene"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the solved rectangle in node labels.
	Detailed bool

	// Hierarchy adds dashed parent → child edges.
	Hierarchy bool
}

// ToDOT converts the frames and bindings of a scene to Graphviz DOT.
// Items without bindings still appear as nodes.
func ToDOT(snap scene.Snapshot, bindings []scene.Binding, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, f := range snap.Frames {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", f.ID, fmtLabel(f, opts.Detailed))
	}

	if opts.Hierarchy {
		buf.WriteString("\n")
		for _, f := range snap.Frames {
			if f.ParentID != "" {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey, arrowhead=none];\n", f.ParentID, f.ID)
			}
		}
	}

	buf.WriteString("\n")
	for _, b := range bindings {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", b.Item, b.Target, edgeLabel(b))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(f item.Frame, detailed bool) string {
	if !detailed {
		return f.ID
	}
	r := f.Rect
	return fmt.Sprintf("%s\n%gx%g at (%g, %g)", f.ID, r.Width, r.Height, r.X, r.Y)
}

func edgeLabel(b scene.Binding) string {
	if b.Edge == "" {
		return b.Property
	}
	return b.Property + " → " + b.Edge
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the viewBox starts at the
// origin and width/height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
