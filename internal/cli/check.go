package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/anchors"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/pipeline"
	"github.com/matzehuels/anchorage/pkg/render"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	steps    bool // apply the scene's steps before checking
	warnOnly bool // report diagnostics without failing
	geometry bool // print the geometry table
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [scene]",
		Short: "Validate a scene and list its diagnostics",
		Long: `Validate a scene and list its diagnostics.

Every anchor is bound and solved. Rejected bindings (self anchors, anchors to
items that are neither parent nor sibling, mixed axes, conflicting anchors)
and detected anchor loops are listed. The command fails when any diagnostic
is reported unless --warn-only is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.steps, "steps", false, "apply the scene's steps before checking")
	cmd.Flags().BoolVar(&opts.warnOnly, "warn-only", false, "report diagnostics without failing")
	cmd.Flags().BoolVar(&opts.geometry, "geometry", false, "print the solved geometry table")

	return cmd
}

// runCheck solves path without caching and reports its diagnostics to w.
func (c *CLI) runCheck(ctx context.Context, w io.Writer, path string, opts checkOpts) error {
	prog := newProgress(c.Logger)

	popts := pipeline.Options{Path: path, Steps: opts.steps, Logger: c.Logger}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	data, err := runner.Load(ctx, popts)
	if err != nil {
		return err
	}
	sc, err := pipeline.Solve(ctx, data, popts)
	if err != nil {
		return err
	}
	prog.done("Checked " + path)

	snap := sc.Snapshot()
	if opts.geometry {
		fmt.Fprintln(w, render.GeometryTable(snap))
	}

	diags := sc.Diagnostics()
	if len(diags) == 0 {
		fmt.Fprintf(w, "%s %s: %d items, no diagnostics\n", styleIconSuccess.Render(iconSuccess), path, len(snap.Frames))
		return nil
	}
	fmt.Fprintln(w, diagnosticsTable(diags))
	if opts.warnOnly {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidScene, "%s: %d diagnostics", path, len(diags))
}

// diagnosticsTable renders one row per diagnostic.
func diagnosticsTable(diags []anchors.Diagnostic) string {
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		rows = append(rows, []string{d.ItemID, string(d.Code), d.Message})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Item", "Code", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
