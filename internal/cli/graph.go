package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/pipeline"
)

// graphCommand creates the graph command for exporting the anchor graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output  string
		dot     bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "graph [scene]",
		Short: "Export the anchor dependency graph",
		Long: `Export the anchor dependency graph.

Nodes are items; an edge runs from each anchored item to its target, labelled
with the anchored property and the target edge. The graph is rendered to SVG
with Graphviz, or written as DOT source with --dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Formats = []string{pipeline.FormatGraph}
			if dot {
				opts.Formats = []string{pipeline.FormatDOT}
			}
			return c.runGraph(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: <scene>.graph.svg or <scene>.dot)")
	cmd.Flags().BoolVar(&dot, "dot", false, "write DOT source instead of SVG")
	cmd.Flags().BoolVar(&opts.Hierarchy, "hierarchy", false, "include parent-child edges")
	cmd.Flags().BoolVar(&opts.Steps, "steps", false, "apply the scene's steps first")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Path, output)
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}
	printSuccess("Anchor graph: %d bindings", len(result.Solved.Bindings))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
