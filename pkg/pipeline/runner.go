package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/progresstwin/pkg/cache"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/observability"
	"github.com/matzehuels/progresstwin/pkg/render/sink"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/source"
	"github.com/matzehuels/progresstwin/pkg/synth"
)

// Cache key types reported to observability hooks.
const (
	keyTypeScene    = "scene"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner holds no pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Loaders []source.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Loaders: source.Loaders(),
	}
}

// Execute runs the complete load → synthesize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = d
	result.Stats.LoadTime = time.Since(loadStart)

	st, ok := d.Structure(opts.Structure)
	if !ok {
		return nil, errors.New(errors.ErrCodeStructureNotFound, "no structure %q", opts.Structure)
	}
	result.Structure = st
	result.Stats.RowCount = len(d.RowsOf(st.ID))

	// Stage 2: Synthesize
	synthStart := time.Now()
	sc, sceneHit, err := r.SynthesizeWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	result.Scene = sc
	result.Stats.SynthTime = time.Since(synthStart)
	result.Stats.PrimitiveCount = sc.Len()
	result.Stats.ClickableCount = len(sc.Clickable())
	result.CacheInfo.SceneHit = sceneHit

	if data, err := sink.RenderCBOR(sc); err == nil {
		result.SceneHash = cache.Hash(data)
	}

	r.Logger.Info("synthesized scene",
		"structure", st.ID,
		"rows", result.Stats.RowCount,
		"primitives", result.Stats.PrimitiveCount,
		"clickable", result.Stats.ClickableCount,
		"duration", result.Stats.SynthTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Dataset when set and otherwise reads opts.Source with
// the runner's loaders. Datasets are never cached: progress changes between
// runs, and the scene cache keys on the rows themselves.
func (r *Runner) Load(ctx context.Context, opts Options) (*matrix.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Dataset != nil {
		return opts.Dataset, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()
	d, err := source.Load(ctx, opts.Source, r.Loaders...)
	rows := 0
	if d != nil {
		rows = len(d.Rows)
	}
	hooks.OnLoadComplete(ctx, opts.Source, rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded dataset",
		"source", opts.Source,
		"structures", len(d.Structures),
		"columns", len(d.Columns),
		"rows", len(d.Rows))
	return d, nil
}

// SynthesizeWithCacheInfo builds the scene of opts.Structure with caching
// and returns cache hit info.
func (r *Runner) SynthesizeWithCacheInfo(ctx context.Context, d *matrix.Dataset, opts Options) (*scene.Scene, bool, error) {
	if err := opts.ValidateForSynth(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	in, err := input(d, opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey, err := r.sceneKey(in, opts)
	if err != nil {
		return nil, false, err
	}

	cacheHooks := observability.Cache()
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if sc, err := sink.DecodeCBOR(data); err == nil {
				cacheHooks.OnCacheHit(ctx, keyTypeScene)
				return sc, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeScene)
	}

	hooks := observability.Pipeline()
	hooks.OnSynthesizeStart(ctx, in.Structure.ID, len(in.Rows))
	start := time.Now()
	sc := synth.Build(in)
	hooks.OnSynthesizeComplete(ctx, in.Structure.ID, sc.Len(), time.Since(start))

	if data, err := sink.RenderCBOR(sc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err != nil {
			r.Logger.Warn("cache write failed", "key", keyTypeScene, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeScene, len(data))
		}
	}

	return sc, false, nil
}

// Synthesize is a convenience wrapper that calls SynthesizeWithCacheInfo and discards the cache hit info.
func (r *Runner) Synthesize(ctx context.Context, d *matrix.Dataset, opts Options) (*scene.Scene, error) {
	sc, _, err := r.SynthesizeWithCacheInfo(ctx, d, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *matrix.Dataset, sc *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	opts.Synth.SetDefaults()
	r.applyLogger(&opts)

	in, err := input(d, opts)
	if err != nil {
		return nil, false, err
	}
	sceneKey, err := r.sceneKey(in, opts)
	if err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, in.Structure, in.Rows, sc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", keyTypeArtifact, "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d *matrix.Dataset, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, sc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// sceneKey keys a scene by the rows and columns it is built from plus the
// synthesis options.
func (r *Runner) sceneKey(in synth.Input, opts Options) (string, error) {
	inputHash, err := cache.HashValue(struct {
		Rows    []matrix.Row    `cbor:"rows"`
		Columns []matrix.Column `cbor:"columns"`
	}{in.Rows, in.Columns})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene input")
	}
	keyOpts, err := opts.SceneKeyOpts()
	if err != nil {
		return "", err
	}
	return r.Keyer.SceneKey(inputHash, keyOpts), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// input gathers the structure, rows and family columns for synthesis.
func input(d *matrix.Dataset, opts Options) (synth.Input, error) {
	if d == nil {
		return synth.Input{}, errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	st, ok := d.Structure(opts.Structure)
	if !ok {
		return synth.Input{}, errors.New(errors.ErrCodeStructureNotFound, "no structure %q", opts.Structure)
	}
	return synth.Input{
		Structure: st,
		Rows:      d.RowsOf(st.ID),
		Columns:   d.ColumnsOf(st.Family),
		Options:   opts.Synth,
	}, nil
}
