package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/item"
	"github.com/matzehuels/anchorage/pkg/render"
	"github.com/matzehuels/anchorage/pkg/scene"
)

const (
	watchPollInterval = 500 * time.Millisecond
	watchDefaultStep  = 10.0
	watchMaxDiags     = 4
)

var (
	watchSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	watchHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
	watchErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// watchCommand creates the interactive preview command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		strict bool
		step   float64
	)

	cmd := &cobra.Command{
		Use:   "watch [scene]",
		Short: "Interactive terminal preview",
		Long: `Interactive terminal preview.

The scene is solved and drawn in the terminal. Select an item and move or
resize it to see the change propagate through every anchored item. The file
is reloaded whenever it changes on disk.

Keys:
  ↑/↓ k/j          select item
  ←/→ h/l          move left/right
  shift+↑/↓ K/J    move up/down
  + -              grow/shrink width
  } {              grow/shrink height
  s                apply the scene's steps
  r                reload from disk
  q                quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newWatchModel(args[0], strict, step)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), m)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat rejected bindings as load errors")
	cmd.Flags().Float64Var(&step, "step", watchDefaultStep, "pixels per move or resize key press")

	return cmd
}

func runWatch(ctx context.Context, m watchModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// watchModel is the bubbletea model for the interactive preview.
type watchModel struct {
	path    string
	strict  bool
	step    float64
	scene   *scene.Scene
	frames  []item.Frame
	cursor  int
	modTime time.Time
	status  string
	err     error
	width   int
	height  int
}

type watchTickMsg time.Time

// newWatchModel loads and solves path.
func newWatchModel(path string, strict bool, step float64) (watchModel, error) {
	if step <= 0 {
		step = watchDefaultStep
	}
	m := watchModel{path: path, strict: strict, step: step, width: 80, height: 30}
	if err := m.load(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *watchModel) load() error {
	info, err := os.Stat(m.path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", m.path, err)
	}
	doc, err := scene.Load(m.path)
	if err != nil {
		return err
	}
	sc, err := scene.Build(doc, scene.Options{Strict: m.strict})
	if err != nil {
		return err
	}
	m.scene = sc
	m.modTime = info.ModTime()
	m.refresh()
	return nil
}

// refresh re-reads the frames from the live scene, keeping the selection
// on the same item id when it still exists.
func (m *watchModel) refresh() {
	selected := m.selectedID()
	m.frames = m.scene.Snapshot().Frames
	m.cursor = 0
	for i, f := range m.frames {
		if f.ID == selected {
			m.cursor = i
			break
		}
	}
}

func (m watchModel) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.frames) {
		return ""
	}
	return m.frames[m.cursor].ID
}

func (m watchModel) selected() (item.Frame, bool) {
	if m.cursor < 0 || m.cursor >= len(m.frames) {
		return item.Frame{}, false
	}
	return m.frames[m.cursor], true
}

func watchTick() tea.Cmd {
	return tea.Tick(watchPollInterval, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case watchTickMsg:
		if info, err := os.Stat(m.path); err == nil && info.ModTime().After(m.modTime) {
			m.reload("file changed")
		}
		return m, watchTick()
	}
	return m, nil
}

func (m *watchModel) reload(reason string) {
	if err := m.load(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "reloaded: " + reason
}

func (m watchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := m.selected()
	d := m.step

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.frames)-1 {
			m.cursor++
		}
		return m, nil
	case "r":
		m.reload("requested")
		return m, nil
	case "s":
		if err := m.scene.ApplySteps(); err != nil {
			m.err = err
		} else {
			m.status = fmt.Sprintf("applied %d steps", len(m.scene.Steps()))
		}
		m.refresh()
		return m, nil
	}
	if !ok {
		return m, nil
	}

	r := f.Rect
	st := scene.Step{Target: f.ID}
	switch msg.String() {
	case "left", "h":
		st.X = ptr(r.X - d)
	case "right", "l":
		st.X = ptr(r.X + d)
	case "shift+up", "K":
		st.Y = ptr(r.Y - d)
	case "shift+down", "J":
		st.Y = ptr(r.Y + d)
	case "+", "=":
		st.Width = ptr(r.Width + d)
	case "-", "_":
		st.Width = ptr(max(r.Width-d, 0))
	case "}", "]":
		st.Height = ptr(r.Height + d)
	case "{", "[":
		st.Height = ptr(max(r.Height-d, 0))
	default:
		return m, nil
	}
	if err := m.scene.Apply(st); err != nil {
		m.err = err
	}
	m.refresh()
	return m, nil
}

func ptr(v float64) *float64 { return &v }

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("anchorage watch") + " " + StyleDim.Render(m.path))
	b.WriteString("\n\n")

	snap := m.scene.Snapshot()
	cols := max(m.width-2, 20)
	rows := max(m.height-10-watchMaxDiags, 8)
	b.WriteString(render.Grid(snap, cols, rows))
	b.WriteString("\n")

	if f, ok := m.selected(); ok {
		b.WriteString(watchSelectedStyle.Render("▸ "+f.ID) + "  " + StyleDim.Render(fmt.Sprintf(
			"x %g  y %g  %gx%g  absolute %g,%g  [%d/%d]",
			f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height,
			f.Absolute.X, f.Absolute.Y, m.cursor+1, len(m.frames))))
		b.WriteString("\n")
	}

	diags := snap.Diagnostics
	if n := len(diags); n > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%d diagnostics", n)) + "\n")
		for _, d := range diags[max(n-watchMaxDiags, 0):] {
			b.WriteString("  " + StyleWarning.Render(iconWarning+" "+d.String()) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString(watchErrorStyle.Render(iconError+" "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(StyleDim.Render(m.status) + "\n")
	}

	b.WriteString(watchHelpStyle.Render("↑/↓ select  ←/→ shift+↑/↓ move  +/- width  }/{ height  s steps  r reload  q quit"))
	return b.String()
}
