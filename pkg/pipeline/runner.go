package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzlayout/pkg/cache"
	"github.com/matzehuels/tikzlayout/pkg/observability"
	"github.com/matzehuels/tikzlayout/pkg/scene"
	"github.com/matzehuels/tikzlayout/pkg/shape"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL for stored artifacts; zero means cache.TTLArtifact.
	TTL time.Duration
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute builds the scene in data and renders opts.Formats.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{SceneHash: cache.Hash(data)}

	buildStart := time.Now()
	s, err := Decode(data, opts)
	if err != nil {
		return nil, err
	}
	d, err := r.Build(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Shapes = len(s.Shapes)
	result.Stats.Leaves, result.Stats.Groups = shape.Count(d.Root)

	opts.Logger.Info("built scene",
		"leaves", result.Stats.Leaves,
		"groups", result.Stats.Groups,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, result.SceneHash, d, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build builds a decoded scene, firing the build hooks.
func (r *Runner) Build(ctx context.Context, s *scene.Scene, opts Options) (*scene.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(s.Shapes))
	start := time.Now()
	d, err := scene.Build(s, opts.BuildOptions())
	leaves := 0
	if d != nil {
		leaves, _ = shape.Count(d.Root)
	}
	hooks.OnBuildComplete(ctx, leaves, time.Since(start), err)
	return d, err
}

// RenderWithCacheInfo renders the formats missing from the cache and
// stores them. It returns the formats that were served from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sceneHash string, d *scene.Diagram, opts Options) (map[string][]byte, []string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				hooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				hits = append(hits, format)
				continue
			} else if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			hooks.OnCacheMiss(ctx, format)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	pipe := observability.Pipeline()
	pipe.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, d, renderOpts)
	pipe.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return artifacts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
