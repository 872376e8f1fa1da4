package observability

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics implements every hook interface on a private Prometheus registry.
type Metrics struct {
	LayoutsTotal      *prometheus.CounterVec
	LayoutDuration    *prometheus.HistogramVec
	LayoutNodes       *prometheus.HistogramVec
	EdgesSkippedTotal prometheus.Counter
	RendersTotal      *prometheus.CounterVec
	RenderDuration    prometheus.Histogram
	InteractionsTotal *prometheus.CounterVec
	HighlightedNodes  prometheus.Gauge
	HighlightedEdges  prometheus.Gauge
	CacheLookupsTotal *prometheus.CounterVec
	CacheWriteBytes   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LayoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radialflow_layouts_total",
			Help: "Layout passes by kind and status",
		}, []string{"kind", "status"}),
		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "radialflow_layout_duration_seconds",
			Help:    "Layout pass duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}, []string{"kind"}),
		LayoutNodes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "radialflow_layout_nodes",
			Help:    "Nodes per layout pass",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		}, []string{"kind"}),
		EdgesSkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "radialflow_edges_skipped_total",
			Help: "Edges dropped because an endpoint was missing",
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radialflow_renders_total",
			Help: "Render runs by status",
		}, []string{"status"}),
		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "radialflow_render_duration_seconds",
			Help:    "Render duration in seconds across all formats",
			Buckets: []float64{0.001, 0.01, 0.1, 1, 10},
		}),
		InteractionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radialflow_interactions_total",
			Help: "Highlight interactions by action",
		}, []string{"action"}),
		HighlightedNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "radialflow_highlighted_nodes",
			Help: "Nodes in the current highlight set",
		}),
		HighlightedEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "radialflow_highlighted_edges",
			Help: "Edges in the current highlight set",
		}),
		CacheLookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radialflow_cache_lookups_total",
			Help: "Cache lookups by key type and result",
		}, []string{"key_type", "result"}),
		CacheWriteBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radialflow_cache_write_bytes_total",
			Help: "Bytes written to the cache by key type",
		}, []string{"key_type"}),
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Register installs m as the pipeline, interaction and cache hooks.
func (m *Metrics) Register() {
	SetPipelineHooks(m)
	SetInteractionHooks(m)
	SetCacheHooks(m)
}

// WriteText writes every gathered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnLayoutStart(_ context.Context, kind string, nodeCount int) {
	m.LayoutNodes.WithLabelValues(kind).Observe(float64(nodeCount))
}

func (m *Metrics) OnLayoutComplete(_ context.Context, kind string, d time.Duration, err error) {
	m.LayoutsTotal.WithLabelValues(kind, status(err)).Inc()
	m.LayoutDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) OnEdgesSkipped(_ context.Context, count int) {
	m.EdgesSkippedTotal.Add(float64(count))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.RendersTotal.WithLabelValues(status(err)).Inc()
	m.RenderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnInteraction(_ context.Context, action string, nodes, edges int) {
	m.InteractionsTotal.WithLabelValues(action).Inc()
	m.HighlightedNodes.Set(float64(nodes))
	m.HighlightedEdges.Set(float64(edges))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheLookupsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheLookupsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheWriteBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ PipelineHooks    = (*Metrics)(nil)
	_ InteractionHooks = (*Metrics)(nil)
	_ CacheHooks       = (*Metrics)(nil)
)
