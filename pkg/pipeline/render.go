package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/radialflow/pkg/cache"
	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/errors"
	rfio "github.com/matzehuels/radialflow/pkg/io"
	"github.com/matzehuels/radialflow/pkg/observability"
	"github.com/matzehuels/radialflow/pkg/render/nodelink"
	radialsink "github.com/matzehuels/radialflow/pkg/render/radial"
	"github.com/matzehuels/radialflow/pkg/scene"
)

// RenderWithCacheInfo renders s in every requested format. It reports a hit
// only when every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	opts.View = ViewRadial
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := rfio.MarshalScene(s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	return r.renderCached(ctx, cache.Hash(data), opts, func(_ context.Context, format string) ([]byte, error) {
		return RenderScene(s, format, opts)
	})
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// RenderClusterWithCacheInfo renders a positioned element list in every
// requested format.
func (r *Runner) RenderClusterWithCacheInfo(ctx context.Context, elements []cluster.Element, opts Options) (map[string][]byte, bool, error) {
	opts.View = ViewCluster
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	return r.renderCached(ctx, HashElements(elements), opts, func(ctx context.Context, format string) ([]byte, error) {
		return RenderElements(ctx, elements, format, opts)
	})
}

// RenderCluster is a convenience wrapper that calls
// RenderClusterWithCacheInfo and discards the cache hit info.
func (r *Runner) RenderCluster(ctx context.Context, elements []cluster.Element, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderClusterWithCacheInfo(ctx, elements, opts)
	return artifacts, err
}

type renderFunc func(ctx context.Context, format string) ([]byte, error)

// renderCached serves formats from the cache and renders the missing ones
// concurrently.
func (r *Runner) renderCached(ctx context.Context, hash string, opts Options, render renderFunc) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	rendered := make([][]byte, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range missing {
		g.Go(func() error {
			data, err := render(gctx, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			rendered[i] = data
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for i, format := range missing {
		artifacts[format] = rendered[i]
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, rendered[i], cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(rendered[i]))
		} else {
			opts.Logger.Debug("cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, false, nil
}

// RenderScene renders a radial scene in one format.
func RenderScene(s *scene.Scene, format string, opts Options) ([]byte, error) {
	var sinkOpts []radialsink.Option
	if opts.Background != "" {
		sinkOpts = append(sinkOpts, radialsink.WithBackground(opts.Background))
	}
	if opts.NoGrid {
		sinkOpts = append(sinkOpts, radialsink.WithGrid(0))
	}
	if opts.NoLabels {
		sinkOpts = append(sinkOpts, radialsink.WithoutLabels())
	}

	switch format {
	case FormatSVG:
		if opts.Interactive {
			sinkOpts = append(sinkOpts, radialsink.WithInteraction())
		}
		return radialsink.RenderSVG(s, sinkOpts...), nil
	case FormatPNG:
		if opts.Scale > 0 {
			sinkOpts = append(sinkOpts, radialsink.WithScale(opts.Scale))
		}
		return radialsink.RenderPNG(s, sinkOpts...)
	case FormatJSON:
		return rfio.MarshalScene(s)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "radial view cannot render %q", format)
	}
}

// DOTOptions builds the DOT export options for positioned elements.
func DOTOptions(elements []cluster.Element, opts Options) (nodelink.Options, cluster.Visibility, error) {
	alg, err := opts.ClusterAlgorithm()
	if err != nil {
		return nodelink.Options{}, cluster.Visibility{}, err
	}
	f, err := opts.ClusterFilter()
	if err != nil {
		return nodelink.Options{}, cluster.Visibility{}, err
	}
	vis := f.Apply(elements)

	collapsed := cluster.Collapsed{}
	for _, id := range opts.Collapsed {
		collapsed.Toggle(elements, id)
	}

	var overrides map[string]cluster.StyleOverride
	if opts.Tap != "" {
		overrides = cluster.Overrides(cluster.Emphasis(elements, opts.Tap))
	}

	return nodelink.Options{
		Algorithm:  alg,
		Visibility: &vis,
		Collapsed:  collapsed,
		Overrides:  overrides,
		Pinned:     true,
		EdgeLabels: opts.EdgeLabels,
	}, vis, nil
}

// RenderElements renders a positioned element list in one format. Filtered
// elements are left out of every format.
func RenderElements(ctx context.Context, elements []cluster.Element, format string, opts Options) ([]byte, error) {
	nopts, vis, err := DOTOptions(elements, opts)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatDOT:
		return []byte(nodelink.ToDOT(elements, nopts)), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(elements, nopts), nopts.Engine())
	case FormatJSON:
		return rfio.MarshalElements(vis.Select(elements))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cluster view cannot render %q", format)
	}
}
