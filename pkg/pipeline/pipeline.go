// Package pipeline runs the load → solve → render pipeline shared by the
// CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read scene bytes from a file or the request body and decode them
//  2. Solve: build the item tree, bind anchors, optionally apply the
//     document's steps, and capture a snapshot plus the live bindings
//  3. Render: produce each requested format concurrently
//
// Solved snapshots and rendered artifacts are cached by content hash, so
// re-running an unchanged scene is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "page.toml",
//	    Formats: []string{"svg", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorage/pkg/cache"
	"github.com/matzehuels/anchorage/pkg/scene"
)

// Default values shared by the CLI and the API.
const (
	// DefaultColumns is the width of the text preview grid.
	DefaultColumns = 60

	// DefaultRows is the height of the text preview grid.
	DefaultRows = 20

	// DefaultPadding is the SVG border in pixels.
	DefaultPadding = 8

	// DefaultScale is the SVG and PNG scale factor.
	DefaultScale = 1.0
)

// Output formats.
const (
	FormatJSON  = "json"  // solved snapshot
	FormatSVG   = "svg"   // item rectangles
	FormatPNG   = "png"   // item rectangles, via rsvg-convert
	FormatPDF   = "pdf"   // item rectangles, via rsvg-convert
	FormatText  = "txt"   // terminal preview and geometry table
	FormatDOT   = "dot"   // anchor graph as Graphviz source
	FormatGraph = "graph" // anchor graph rendered to SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:  true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatText:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// FormatNames returns the supported output formats, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// Options configures one pipeline run. It decodes from API request bodies.
type Options struct {
	// Load options
	Path   string `json:"-"`                // scene file; ignored when Scene is set
	Scene  []byte `json:"-"`                // inline scene document
	Format string `json:"format,omitempty"` // scene format; inferred from Path when empty

	// Solve options
	Strict bool `json:"strict,omitempty"` // fail on any rejected binding
	Steps  bool `json:"steps,omitempty"`  // apply the document's steps before the snapshot

	// Render options
	Formats   []string `json:"formats,omitempty"`
	NoLabels  bool     `json:"no_labels,omitempty"`
	Padding   int      `json:"padding,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Columns   int      `json:"columns,omitempty"`
	Rows      int      `json:"rows,omitempty"`
	Hierarchy bool     `json:"hierarchy,omitempty"` // parent edges in anchor graphs
	Highlight string   `json:"highlight,omitempty"` // item outlined in SVG output

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the live scene. It is nil when the solve stage hit the cache.
	Scene *scene.Scene

	// Solved is the snapshot and binding list.
	Solved Solved

	// SceneHash is the SHA-256 of the scene bytes.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Solved is the cacheable output of the solve stage.
type Solved struct {
	Snapshot scene.Snapshot  `json:"snapshot"`
	Bindings []scene.Binding `json:"bindings"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SceneBytes  int
	ItemCount   int
	Diagnostics int
	LoadTime    time.Duration
	SolveTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	SolveHit  bool // snapshot came from cache
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Scene) == 0 && o.Path == "" {
		return fmt.Errorf("scene path or content is required")
	}
	if o.Format == "" {
		if o.Path != "" {
			o.Format = scene.FormatFromPath(o.Path)
		} else {
			o.Format = scene.FormatTOML
		}
	}
	if o.Format == "yml" {
		o.Format = scene.FormatYAML
	}
	if !scene.Formats[o.Format] {
		return fmt.Errorf("invalid scene format: %q", o.Format)
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.Formats = dedupe(o.Formats)
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SolveKeyOpts returns cache key options for the solve stage.
func (o *Options) SolveKeyOpts(version string) cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		Format:  o.Format,
		Strict:  o.Strict,
		Steps:   o.Steps,
		Version: version,
	}
}

// ArtifactKeyOpts returns cache key options for one format. Options that
// do not affect the format are left zero so they share entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Labels = !o.NoLabels
		k.Padding = o.Padding
		k.Scale = o.Scale
		k.Highlight = o.Highlight
	case FormatText:
		k.Columns = o.Columns
		k.Rows = o.Rows
	case FormatDOT, FormatGraph:
		k.Hierarchy = o.Hierarchy
	}
	return k
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
