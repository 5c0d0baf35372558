package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/pipeline"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solve [scene]",
		Short: "Solve a scene and write its layout",
		Long: `Solve a scene and write its layout.

The scene is a TOML, YAML or JSON document describing a tree of items and
their anchors. The solved geometry is written in every requested format:

  json   solved snapshot (frame size, item rects, diagnostics)
  svg    item rectangles
  png    item rectangles (requires rsvg-convert)
  pdf    item rectangles (requires rsvg-convert)
  txt    terminal preview and geometry table
  dot    anchor graph as Graphviz source
  graph  anchor graph rendered to SVG

Results are cached locally for faster subsequent runs.`,
		Example: `  anchorage solve page.toml
  anchorage solve page.toml -f json,svg -o out/page
  anchorage solve page.toml -f txt -o -
  anchorage solve page.yaml --steps --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Formats = c.parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated (default from config, else svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on any rejected binding")
	cmd.Flags().BoolVar(&opts.Steps, "steps", false, "apply the scene's steps before writing")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit item labels (svg, png, pdf)")
	cmd.Flags().StringVar(&opts.Highlight, "highlight", "", "outline the item with this id (svg, png, pdf)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "drawing scale (svg, png, pdf)")
	cmd.Flags().IntVar(&opts.Padding, "padding", pipeline.DefaultPadding, "border in pixels (svg, png, pdf)")
	cmd.Flags().IntVar(&opts.Columns, "columns", pipeline.DefaultColumns, "preview width in characters (txt)")
	cmd.Flags().IntVar(&opts.Rows, "rows", pipeline.DefaultRows, "preview height in characters (txt)")
	cmd.Flags().BoolVar(&opts.Hierarchy, "hierarchy", false, "include parent edges (dot, graph)")

	return cmd
}

// runSolve executes the pipeline and writes the artifacts.
func (c *CLI) runSolve(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s...", opts.Path))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Path, output)
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	name := result.Solved.Snapshot.Name
	if name == "" {
		name = opts.Path
	}
	printSuccess("Solved %s", name)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.ItemCount, result.Stats.Diagnostics, result.CacheInfo.SolveHit)
	for _, d := range result.Solved.Snapshot.Diagnostics {
		printWarning("%s", d)
	}
	printNewline()
	printNextStep("Preview", "anchorage watch "+opts.Path)
	return nil
}
