package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/radialflow/pkg/cache"
	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/highlight"
	rfio "github.com/matzehuels/radialflow/pkg/io"
	"github.com/matzehuels/radialflow/pkg/observability"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/render/nodelink"
	"github.com/matzehuels/radialflow/pkg/scene"
)

// Layout computes the radial layout of records. Radial layouts are cheap
// and are never cached.
func (r *Runner) Layout(ctx context.Context, records []radial.Record, opts Options) (*radial.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, ViewRadial, len(records))
	start := time.Now()

	l := radial.Compute(records, opts.RadialConfig())

	hooks.OnLayoutComplete(ctx, ViewRadial, time.Since(start), nil)
	counts := l.CountByTier()
	opts.Logger.Debug("radial layout",
		"core", counts[radial.TierCore],
		"primary", counts[radial.TierPrimary],
		"secondary", counts[radial.TierSecondary],
		"edges", len(l.Edges))
	if len(l.Collisions) > 0 {
		opts.Logger.Warn("dropped edges with colliding ids", "count", len(l.Collisions), "pairs", l.Collisions)
	}
	return l, nil
}

// Scene replays opts.Interactions onto a fresh tracker and routes every
// edge of l. Edges with a missing endpoint are skipped and reported.
func (r *Runner) Scene(ctx context.Context, l *radial.Layout, opts Options) (*scene.Scene, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	router, err := opts.Router()
	if err != nil {
		return nil, err
	}
	t := highlight.NewTracker(l)
	Replay(ctx, t, opts.Interactions)

	s := scene.Build(l, t, router)
	if n := len(s.Skipped); n > 0 {
		observability.Pipeline().OnEdgesSkipped(ctx, n)
		opts.Logger.Warn("skipped edges with missing endpoints", "count", n, "edges", s.Skipped)
	}
	return s, nil
}

// Replay applies interactions to t in order and reports each transition.
// Clicks on unknown nodes leave the tracker unchanged.
func Replay(ctx context.Context, t *highlight.Tracker, interactions []Interaction) {
	hooks := observability.Interaction()
	for _, in := range interactions {
		switch in.Action {
		case ActionClick:
			t.Click(in.ID)
		case ActionDoubleClick:
			t.DoubleClick(in.ID)
		case ActionClear:
			t.Clear()
		default:
			continue
		}
		nodes, edges := t.Set().Len()
		hooks.OnInteraction(ctx, in.Action, nodes, edges)
	}
}

// ClusterLayoutWithCacheInfo clusters elements and positions them with
// opts.Engine, reusing a cached layout when one exists for the same input
// and layout options.
func (r *Runner) ClusterLayoutWithCacheInfo(ctx context.Context, elements []cluster.Element, opts Options) ([]cluster.Element, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	alg, err := opts.ClusterAlgorithm()
	if err != nil {
		return nil, false, err
	}
	clustered := cluster.Clusterize(elements)
	cacheKey := r.Keyer.LayoutKey(HashElements(clustered), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := rfio.ReadElements(bytes.NewReader(data))
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		opts.Logger.Debug("discarding unreadable cached layout", "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	engine := opts.Engine
	if engine == nil {
		engine = nodelink.Auto{Graphviz: nodelink.NewEngine(opts.Width, opts.Height), Seed: opts.Seed}
	}

	hooks := observability.Pipeline()
	nodes := 0
	for _, e := range clustered {
		if e.IsNode() {
			nodes++
		}
	}
	hooks.OnLayoutStart(ctx, ViewCluster, nodes)
	start := time.Now()
	err = engine.Run(ctx, clustered, alg)
	hooks.OnLayoutComplete(ctx, ViewCluster, time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeLayoutEngine, err, "%s layout", alg)
	}
	cluster.PlaceCompounds(clustered)

	if data, err := rfio.MarshalElements(clustered); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return clustered, false, nil
}

// ClusterLayout is a convenience wrapper that calls ClusterLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ClusterLayout(ctx context.Context, elements []cluster.Element, opts Options) ([]cluster.Element, error) {
	out, _, err := r.ClusterLayoutWithCacheInfo(ctx, elements, opts)
	return out, err
}
