package pipeline

import (
	"context"

	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/render"
	"github.com/matzehuels/anchorage/pkg/render/nodelink"
)

// Render produces one output format from a solved scene.
func Render(ctx context.Context, format string, solved Solved, opts Options) ([]byte, error) {
	snap := solved.Snapshot
	switch format {
	case FormatJSON:
		return render.JSON(snap)
	case FormatSVG:
		return render.SVG(snap, svgOptions(opts)...), nil
	case FormatPNG:
		return render.ToPNG(ctx, render.SVG(snap, svgOptions(opts)...), 1)
	case FormatPDF:
		return render.ToPDF(ctx, render.SVG(snap, svgOptions(opts)...))
	case FormatText:
		return []byte(render.Text(snap, opts.Columns, opts.Rows)), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(snap, solved.Bindings, dotOptions(opts))), nil
	case FormatGraph:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(snap, solved.Bindings, dotOptions(opts)))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

func svgOptions(opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{
		render.WithPadding(opts.Padding),
		render.WithSVGScale(opts.Scale),
	}
	if opts.NoLabels {
		svgOpts = append(svgOpts, render.WithoutLabels())
	}
	if opts.Highlight != "" {
		svgOpts = append(svgOpts, render.WithHighlight(opts.Highlight))
	}
	return svgOpts
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: true, Hierarchy: opts.Hierarchy}
}
