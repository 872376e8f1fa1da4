package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics()

	m.OnLayoutStart(ctx, "radial", 12)
	m.OnLayoutComplete(ctx, "radial", 2*time.Millisecond, nil)
	m.OnLayoutComplete(ctx, "cluster", time.Second, errors.New("engine failed"))
	m.OnEdgesSkipped(ctx, 3)
	m.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)
	m.OnInteraction(ctx, "double-click", 3, 2)
	m.OnCacheHit(ctx, "layout")
	m.OnCacheMiss(ctx, "layout")
	m.OnCacheMiss(ctx, "layout")
	m.OnCacheSet(ctx, "artifact", 512)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"radial ok", testutil.ToFloat64(m.LayoutsTotal.WithLabelValues("radial", "ok")), 1},
		{"cluster error", testutil.ToFloat64(m.LayoutsTotal.WithLabelValues("cluster", "error")), 1},
		{"skipped", testutil.ToFloat64(m.EdgesSkippedTotal), 3},
		{"renders", testutil.ToFloat64(m.RendersTotal.WithLabelValues("ok")), 1},
		{"interactions", testutil.ToFloat64(m.InteractionsTotal.WithLabelValues("double-click")), 1},
		{"highlighted nodes", testutil.ToFloat64(m.HighlightedNodes), 3},
		{"highlighted edges", testutil.ToFloat64(m.HighlightedEdges), 2},
		{"cache hits", testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("layout", "hit")), 1},
		{"cache misses", testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("layout", "miss")), 2},
		{"cache bytes", testutil.ToFloat64(m.CacheWriteBytes.WithLabelValues("artifact")), 512},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestMetricsWriteText(t *testing.T) {
	m := NewMetrics()
	m.OnInteraction(context.Background(), "click", 1, 1)

	var buf bytes.Buffer
	if err := m.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE radialflow_interactions_total counter",
		`radialflow_interactions_total{action="click"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMetricsRegister(t *testing.T) {
	t.Cleanup(Reset)
	m := NewMetrics()
	m.Register()

	Interaction().OnInteraction(context.Background(), "clear", 0, 0)
	if got := testutil.ToFloat64(m.InteractionsTotal.WithLabelValues("clear")); got != 1 {
		t.Errorf("clear interactions = %v, want 1", got)
	}
}
