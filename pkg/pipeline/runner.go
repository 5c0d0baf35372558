package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/anchorage/pkg/buildinfo"
	"github.com/matzehuels/anchorage/pkg/cache"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/observability"
	"github.com/matzehuels/anchorage/pkg/scene"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses DefaultKeyer; a nil cache
// disables caching; a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: cache.Observed(c), Keyer: keyer, Logger: logger}
}

// Execute runs load → solve → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	data, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.SceneHash = cache.Hash(data)
	result.Stats.SceneBytes = len(data)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Solve
	solveStart := time.Now()
	sc, solved, hit, err := r.SolveWithCacheInfo(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Scene = sc
	result.Solved = solved
	result.Stats.ItemCount = len(solved.Snapshot.Frames)
	result.Stats.Diagnostics = len(solved.Snapshot.Diagnostics)
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = hit

	opts.Logger.Info("solved layout",
		"items", result.Stats.ItemCount,
		"diagnostics", result.Stats.Diagnostics,
		"cached", hit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, solved, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the scene bytes: opts.Scene when set, else the file at opts.Path.
func (r *Runner) Load(ctx context.Context, opts Options) (data []byte, err error) {
	source := opts.Path
	if len(opts.Scene) > 0 {
		source = "inline"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	defer func() { hooks.OnLoadComplete(ctx, source, len(data), time.Since(start), err) }()

	if len(opts.Scene) > 0 {
		return opts.Scene, nil
	}
	if err := errors.ValidatePath(opts.Path); err != nil {
		return nil, err
	}
	data, err = os.ReadFile(opts.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", opts.Path)
	}
	return data, err
}

// SolveWithCacheInfo parses and solves the scene, returning the live scene
// (nil on a cache hit), the solved output and whether it came from cache.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, data []byte, opts Options) (*scene.Scene, Solved, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, Solved{}, false, err
	}

	key := r.Keyer.SolveKey(cache.Hash(data), opts.SolveKeyOpts(buildinfo.Version))
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var solved Solved
			if err := json.Unmarshal(cached, &solved); err == nil {
				return nil, solved, true, nil
			}
		}
	}

	sc, err := Solve(ctx, data, opts)
	if err != nil {
		return nil, Solved{}, false, err
	}
	solved := Solved{Snapshot: sc.Snapshot(), Bindings: sc.Bindings()}

	if encoded, err := json.Marshal(solved); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.TTLSolve); err != nil {
			opts.Logger.Debug("cache write failed", "key", key, "error", err)
		}
	}
	return sc, solved, false, nil
}

// Solve parses data and builds the scene, applying the document's steps
// when opts.Steps is set. Diagnostics go to opts.Logger at warn level.
func Solve(ctx context.Context, data []byte, opts Options) (sc *scene.Scene, err error) {
	doc, err := scene.Parse(data, opts.Format)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	count := doc.Count()
	hooks.OnBuildStart(ctx, count)
	start := time.Now()
	defer func() {
		diags := 0
		if sc != nil {
			diags = len(sc.Diagnostics())
		}
		hooks.OnBuildComplete(ctx, count, diags, time.Since(start), err)
	}()

	sc, err = scene.Build(doc, scene.Options{Strict: opts.Strict, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	if opts.Steps {
		if err := sc.ApplySteps(); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// RenderWithCacheInfo renders every requested format concurrently and
// reports whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, solved Solved, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	encoded, err := json.Marshal(solved)
	if err != nil {
		return nil, false, fmt.Errorf("serialize snapshot for cache key: %w", err)
	}
	solveHash := cache.Hash(encoded)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
		allHit    = true
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			key := r.Keyer.ArtifactKey(solveHash, opts.ArtifactKeyOpts(format))
			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(gctx, key); err == nil && hit {
					mu.Lock()
					artifacts[format] = data
					mu.Unlock()
					return nil
				}
			}

			data, err := Render(gctx, format, solved, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			if err := r.Cache.Set(gctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Debug("cache write failed", "format", format, "error", err)
			}

			mu.Lock()
			artifacts[format] = data
			allHit = false
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, allHit, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
