package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialflow/pkg/cache"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete load → layout → render pipeline for the view
// selected in opts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if opts.IsCluster() {
		return r.executeCluster(ctx, opts)
	}
	return r.executeRadial(ctx, opts)
}

func (r *Runner) executeRadial(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	records, err := LoadRecords(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.InputHash = HashRecords(records)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := r.Layout(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	s, err := r.Scene(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Layout, result.Scene = l, s
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(s.Nodes)
	result.Stats.EdgeCount = len(s.Edges)
	result.Stats.SkippedEdges = len(s.Skipped)
	for _, e := range s.Edges {
		if e.Style.Hidden {
			result.Stats.HiddenCount++
		}
	}

	r.Logger.Info("computed layout",
		"records", len(records),
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) executeCluster(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	elements, err := LoadElements(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.InputHash = HashElements(elements)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Layout
	layoutStart := time.Now()
	placed, layoutHit, err := r.ClusterLayoutWithCacheInfo(ctx, elements, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Elements = placed
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	for _, e := range placed {
		if e.IsEdge() {
			result.Stats.EdgeCount++
		} else {
			result.Stats.NodeCount++
		}
	}
	if f, err := opts.ClusterFilter(); err == nil {
		result.Stats.HiddenCount = f.Apply(placed).HiddenCount()
	}

	r.Logger.Info("computed layout",
		"algorithm", opts.Algorithm,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderClusterWithCacheInfo(ctx, placed, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"hidden", result.Stats.HiddenCount,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
