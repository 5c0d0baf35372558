package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/anchorage/pkg/cache"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/observability"
)

const cardTOML = `
name = "card"

[root]
id = "card"
width = 300.0
height = 200.0

[[root.children]]
id = "title"
height = 30.0
[root.children.anchors]
left = "parent.left"
right = "parent.right"
top = "parent.top"
margins = 10.0

[[root.children]]
id = "icon"
width = 40.0
height = 40.0
[root.children.anchors]
center_in = "parent"

[[steps]]
target = "card"
width = 500.0
`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func frame(t *testing.T, res *Result, id string) geom.Rect {
	t.Helper()
	for _, f := range res.Solved.Snapshot.Frames {
		if f.ID == id {
			return f.Rect
		}
	}
	t.Fatalf("frame %q not found", id)
	return geom.Rect{}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"txt", false},
		{"dot", false},
		{"graph", false},
		{"SVG", true},
		{"tower", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantErr    bool
		wantFormat string
	}{
		{name: "missing scene", opts: Options{}, wantErr: true},
		{name: "inline defaults to toml", opts: Options{Scene: []byte("x")}, wantFormat: "toml"},
		{name: "path extension", opts: Options{Path: "a/b.yml"}, wantFormat: "yaml"},
		{name: "yml alias", opts: Options{Scene: []byte("x"), Format: "yml"}, wantFormat: "yaml"},
		{name: "bad scene format", opts: Options{Scene: []byte("x"), Format: "xml"}, wantErr: true},
		{name: "bad output format", opts: Options{Scene: []byte("x"), Formats: []string{"gif"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && opts.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", opts.Format, tt.wantFormat)
			}
		})
	}
}

func TestRenderDefaults(t *testing.T) {
	opts := Options{Formats: []string{"SVG", " txt", "svg", ""}}
	opts.SetRenderDefaults()
	if got := strings.Join(opts.Formats, ","); got != "svg,txt" {
		t.Errorf("Formats = %s, want svg,txt", got)
	}
	if opts.Columns != DefaultColumns || opts.Rows != DefaultRows || opts.Scale != DefaultScale || opts.Padding != DefaultPadding {
		t.Errorf("defaults not applied: %+v", opts)
	}

	empty := Options{}
	empty.SetRenderDefaults()
	if len(empty.Formats) != 1 || empty.Formats[0] != FormatJSON {
		t.Errorf("default Formats = %v, want [json]", empty.Formats)
	}
}

func TestArtifactKeyOptsIgnoreUnrelatedOptions(t *testing.T) {
	a := Options{Columns: 10, Padding: 4}
	b := Options{Columns: 80, Padding: 4}
	if a.ArtifactKeyOpts(FormatSVG) != b.ArtifactKeyOpts(FormatSVG) {
		t.Error("text grid size should not change the SVG key")
	}
	if a.ArtifactKeyOpts(FormatText) == b.ArtifactKeyOpts(FormatText) {
		t.Error("text grid size should change the text key")
	}
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Scene:   []byte(cardTOML),
		Formats: []string{FormatJSON, FormatSVG, FormatText, FormatDOT},
	}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Scene == nil {
		t.Error("first run should return the live scene")
	}
	if res.CacheInfo.SolveHit || res.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", res.CacheInfo)
	}
	if got, want := frame(t, res, "title"), geom.NewRect(10, 10, 280, 30); got != want {
		t.Errorf("title = %v, want %v", got, want)
	}
	if got, want := frame(t, res, "icon"), geom.NewRect(130, 80, 40, 40); got != want {
		t.Errorf("icon = %v, want %v", got, want)
	}
	if res.Stats.ItemCount != 3 || res.Stats.SceneBytes != len(cardTOML) {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.Solved.Bindings) != 4 {
		t.Errorf("Bindings = %v, want 4", res.Solved.Bindings)
	}

	checks := map[string]string{
		FormatJSON: `"id": "icon"`,
		FormatSVG:  `<g id="item-title">`,
		FormatText: "title",
		FormatDOT:  `"icon" -> "card" [label="centerIn"];`,
	}
	for format, want := range checks {
		if !strings.Contains(string(res.Artifacts[format]), want) {
			t.Errorf("%s artifact missing %s", format, want)
		}
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !again.CacheInfo.SolveHit || !again.CacheInfo.RenderHit || again.Scene != nil {
		t.Errorf("second run CacheInfo = %+v, scene = %v, want hits", again.CacheInfo, again.Scene)
	}
	if string(again.Artifacts[FormatSVG]) != string(res.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.SolveHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", fresh.CacheInfo)
	}
}

func TestExecuteSteps(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Scene: []byte(cardTOML), Steps: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got, want := frame(t, res, "title"), geom.NewRect(10, 10, 480, 30); got != want {
		t.Errorf("title = %v, want %v", got, want)
	}
	if got, want := frame(t, res, "icon"), geom.NewRect(230, 80, 40, 40); got != want {
		t.Errorf("icon = %v, want %v", got, want)
	}
	if res.Solved.Snapshot.Width != 500 {
		t.Errorf("Width = %v, want 500", res.Solved.Snapshot.Width)
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.toml")
	if err := os.WriteFile(path, []byte(cardTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Path: path})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, ok := res.Artifacts[FormatJSON]; !ok {
		t.Error("default format json missing")
	}
}

func TestExecuteErrors(t *testing.T) {
	const broken = `
[root]
id = "root"
[[root.children]]
id = "a"
[root.children.anchors]
fill = "ghost"
`
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"missing file", Options{Path: filepath.Join(t.TempDir(), "nope.toml")}, errors.ErrCodeFileNotFound},
		{"traversal", Options{Path: "../scene.toml"}, errors.ErrCodeInvalidPath},
		{"bad document", Options{Scene: []byte("[root")}, errors.ErrCodeInvalidScene},
		{"strict rejection", Options{Scene: []byte(broken), Strict: true}, errors.ErrCodeInvalidRef},
		{"bad step target", Options{Scene: []byte(`steps = [{target = "x"}]` + "\n[root]\nid = \"r\"\n"), Steps: true}, errors.ErrCodeItemNotFound},
		{"invalid options", Options{}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute() error = %v, want %s", err, tt.want)
			}
		})
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Scene: []byte(broken)})
	if err != nil {
		t.Fatalf("lenient Execute() error = %v", err)
	}
	if res.Stats.Diagnostics != 1 {
		t.Errorf("Diagnostics = %d, want 1", res.Stats.Diagnostics)
	}
}

type pipelineRecorder struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (p *pipelineRecorder) record(e string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *pipelineRecorder) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	p.record("load")
}

func (p *pipelineRecorder) OnBuildComplete(_ context.Context, _, _ int, _ time.Duration, _ error) {
	p.record("build")
}

func (p *pipelineRecorder) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	p.record("render")
}

func TestPipelineHooks(t *testing.T) {
	rec := &pipelineRecorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Scene: []byte(cardTOML)}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(rec.events, ","); got != "load,build,render" {
		t.Errorf("events = %s, want load,build,render", got)
	}
}
