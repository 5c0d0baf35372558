package cli

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/anchorage/pkg/geom"
)

const toolbarTOML = `
name = "toolbar"

[root]
id = "toolbar"
width = 300.0
height = 40.0

[[root.children]]
id = "back"
width = 40.0
[root.children.anchors]
left = "parent.left"
top = "parent.top"
bottom = "parent.bottom"

[[root.children]]
id = "title"
[root.children.anchors]
left = "back.right"
right = "parent.right"
top = "parent.top"
bottom = "parent.bottom"

[[steps]]
target = "toolbar"
width = 500.0
`

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m watchModel, keys ...string) watchModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(watchModel)
	}
	return m
}

func rectOf(t *testing.T, m watchModel, id string) geom.Rect {
	t.Helper()
	for _, f := range m.frames {
		if f.ID == id {
			return f.Rect
		}
	}
	t.Fatalf("item %s not found", id)
	return geom.Rect{}
}

func TestWatchModelEdits(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantBack  geom.Rect
		wantTitle geom.Rect
	}{
		{
			name:      "initial",
			wantBack:  geom.NewRect(0, 0, 40, 40),
			wantTitle: geom.NewRect(40, 0, 260, 40),
		},
		{
			name:      "widen back propagates to title",
			keys:      []string{"down", "+", "+"},
			wantBack:  geom.NewRect(0, 0, 60, 40),
			wantTitle: geom.NewRect(60, 0, 240, 40),
		},
		{
			name:      "shrink clamps at zero",
			keys:      []string{"down", "-", "-", "-", "-", "-"},
			wantBack:  geom.NewRect(0, 0, 0, 40),
			wantTitle: geom.NewRect(0, 0, 300, 40),
		},
		{
			name:      "resize root",
			keys:      []string{"+"},
			wantBack:  geom.NewRect(0, 0, 40, 40),
			wantTitle: geom.NewRect(40, 0, 270, 40),
		},
		{
			name:      "apply steps",
			keys:      []string{"s"},
			wantBack:  geom.NewRect(0, 0, 40, 40),
			wantTitle: geom.NewRect(40, 0, 460, 40),
		},
		{
			name:      "selection stays in range",
			keys:      []string{"up", "up", "down", "down", "down", "down", "x"},
			wantBack:  geom.NewRect(0, 0, 40, 40),
			wantTitle: geom.NewRect(40, 0, 260, 40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := newWatchModel(writeScene(t, toolbarTOML), false, 10)
			if err != nil {
				t.Fatal(err)
			}
			m = press(t, m, tt.keys...)
			if m.err != nil {
				t.Fatalf("model error = %v", m.err)
			}
			if got := rectOf(t, m, "back"); got != tt.wantBack {
				t.Errorf("back = %v, want %v", got, tt.wantBack)
			}
			if got := rectOf(t, m, "title"); got != tt.wantTitle {
				t.Errorf("title = %v, want %v", got, tt.wantTitle)
			}
		})
	}
}

func TestWatchModelSelectionSurvivesEdits(t *testing.T) {
	m, err := newWatchModel(writeScene(t, toolbarTOML), false, 5)
	if err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "down", "down", "shift+down")
	if m.selectedID() != "title" {
		t.Errorf("selected = %q, want title", m.selectedID())
	}
	if !strings.Contains(m.View(), "▸ title") {
		t.Error("View() should show the selected item")
	}
}

func TestWatchModelReload(t *testing.T) {
	path := writeScene(t, toolbarTOML)
	m, err := newWatchModel(path, false, 10)
	if err != nil {
		t.Fatal(err)
	}

	edited := strings.Replace(toolbarTOML, "width = 40.0", "width = 100.0", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	next, cmd := m.Update(watchTickMsg(time.Now()))
	m = next.(watchModel)
	if cmd == nil {
		t.Error("tick should schedule the next poll")
	}
	if got := rectOf(t, m, "title"); got != geom.NewRect(100, 0, 200, 40) {
		t.Errorf("title after reload = %v", got)
	}
	if !strings.HasPrefix(m.status, "reloaded") {
		t.Errorf("status = %q", m.status)
	}

	if err := os.WriteFile(path, []byte("[root"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "r")
	if m.err == nil {
		t.Error("reload of a broken file should set err")
	}
	if got := rectOf(t, m, "title"); got != geom.NewRect(100, 0, 200, 40) {
		t.Errorf("failed reload should keep the last scene, title = %v", got)
	}
}

func TestWatchModelMissingFile(t *testing.T) {
	if _, err := newWatchModel("does-not-exist.toml", false, 10); err == nil {
		t.Error("newWatchModel() should fail for a missing file")
	}
}

func TestWatchModelQuit(t *testing.T) {
	m, err := newWatchModel(writeScene(t, toolbarTOML), false, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
