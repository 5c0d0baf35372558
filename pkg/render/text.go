package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/anchorage/pkg/scene"
)

var (
	depthColors = []lipgloss.Color{"6", "2", "3", "5", "4", "1"}
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Text renders a terminal preview: the frames drawn as box outlines on a
// cols x rows character grid scaled to the scene, followed by a geometry
// table and any diagnostics.
func Text(snap scene.Snapshot, cols, rows int) string {
	var b strings.Builder
	b.WriteString(Grid(snap, cols, rows))
	b.WriteString("\n")
	b.WriteString(GeometryTable(snap))
	b.WriteString("\n")
	for _, d := range snap.Diagnostics {
		b.WriteString(warnStyle.Render("! "+d.String()) + "\n")
	}
	return b.String()
}

// cell is one grid position: the rune drawn and the depth of the item that
// drew it, or -1 for blank.
type cell struct {
	r     rune
	depth int
}

// Grid draws each frame's outline scaled into a cols x rows grid. Deeper
// items are drawn last and overwrite their ancestors. Item ids are written
// into the top border when they fit.
func Grid(snap scene.Snapshot, cols, rows int) string {
	if cols < 2 || rows < 2 || snap.Width <= 0 || snap.Height <= 0 {
		return ""
	}
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{' ', -1}
		}
	}
	sx := float64(cols) / snap.Width
	sy := float64(rows) / snap.Height

	set := func(x, y int, r rune, depth int) {
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = cell{r, depth}
		}
	}

	for _, f := range snap.Frames {
		a := f.Absolute
		x0, y0 := int(a.X*sx), int(a.Y*sy)
		x1, y1 := int(a.Right()*sx)-1, int(a.Bottom()*sy)-1
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		for x := x0 + 1; x < x1; x++ {
			set(x, y0, '─', f.Depth)
			set(x, y1, '─', f.Depth)
		}
		for y := y0 + 1; y < y1; y++ {
			set(x0, y, '│', f.Depth)
			set(x1, y, '│', f.Depth)
		}
		set(x0, y0, '┌', f.Depth)
		set(x1, y0, '┐', f.Depth)
		set(x0, y1, '└', f.Depth)
		set(x1, y1, '┘', f.Depth)
		for i, r := range []rune(f.ID) {
			if x0+1+i >= x1 {
				break
			}
			set(x0+1+i, y0, r, f.Depth)
		}
	}

	var b strings.Builder
	for _, row := range grid {
		writeRow(&b, row)
		b.WriteString("\n")
	}
	return b.String()
}

// writeRow emits a grid row, styling runs of cells drawn by the same depth.
func writeRow(b *strings.Builder, row []cell) {
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].depth == row[start].depth {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.r)
		}
		if d := row[start].depth; d >= 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(depthColors[d%len(depthColors)]).Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		start = i
	}
}

// GeometryTable renders one row per frame with its relative and absolute
// geometry. Nested ids are indented by depth.
func GeometryTable(snap scene.Snapshot) string {
	rows := make([][]string, 0, len(snap.Frames))
	for _, f := range snap.Frames {
		rows = append(rows, []string{
			strings.Repeat("  ", f.Depth) + f.ID,
			num(f.Rect.X), num(f.Rect.Y), num(f.Rect.Width), num(f.Rect.Height),
			fmt.Sprintf("%s,%s", num(f.Absolute.X), num(f.Absolute.Y)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Item", "X", "Y", "Width", "Height", "Absolute").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle()
			}
			return lipgloss.NewStyle().Align(lipgloss.Right)
		})
	return t.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
