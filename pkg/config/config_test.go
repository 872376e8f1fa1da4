package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/route"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	rc := cfg.Radial()
	want := radial.DefaultConfig(1280, 800)
	if rc != want {
		t.Errorf("Radial() = %+v, want %+v", rc, want)
	}
	r, err := cfg.Router()
	if err != nil {
		t.Fatal(err)
	}
	if r.Mode != route.ModeFloating || r.Shape != route.ShapeBezier {
		t.Errorf("Router() = %+v", r)
	}
	a, err := cfg.Algorithm()
	if err != nil || a != cluster.DefaultAlgorithm {
		t.Errorf("Algorithm() = %v, %v", a, err)
	}
	f, err := cfg.ClusterFilter()
	if err != nil || f.Mode != cluster.FilterNone || f.Threshold != 0.5 {
		t.Errorf("ClusterFilter() = %+v, %v", f, err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[viewport]
width = 1600

[layout]
show_secondary = true

[tiers.core]
color = "#123456"

[route]
mode = "angle"
shape = "smoothstep"

[cluster]
algorithm = "dagre"
filter = "hideNonSimilarKeyValues"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Viewport.Width != 1600 || cfg.Viewport.Height != 800 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if !cfg.Radial().ShowSecondary {
		t.Error("show_secondary not applied")
	}
	if cfg.Tiers.Core.Color != "#123456" || cfg.Tiers.Core.Width != 80 {
		t.Errorf("core tier = %+v", cfg.Tiers.Core)
	}
	r, _ := cfg.Router()
	if r.Mode != route.ModeAngle || r.Shape != route.ShapeSmoothStep {
		t.Errorf("router = %+v", r)
	}
	if a, _ := cfg.Algorithm(); a != cluster.Layered {
		t.Errorf("algorithm = %v", a)
	}
	if f, _ := cfg.ClusterFilter(); f.Mode != cluster.FilterHideNonSimilar {
		t.Errorf("filter = %v", f.Mode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantMsg string
	}{
		{"zero width", "[viewport]\nwidth = 0", "viewport.width"},
		{"bad color", "[tiers.primary]\ncolor = \"blue\"", "hex color"},
		{"ratio too large", "[tiers.secondary]\nratio = 1.5", "tiers.secondary.ratio"},
		{"bad mode", "[route]\nmode = \"orbit\"", "must be one of"},
		{"bad algorithm", "[cluster]\nalgorithm = \"spring\"", "cluster.algorithm"},
		{"bad filter", "[cluster]\nfilter = \"odd\"", "cluster.filter"},
		{"threshold", "[cluster]\nthreshold = 2", "cluster.threshold"},
		{"redis url", "[cache]\nredis_url = \"not a url\"", "cache.redisurl"},
		{"syntax", "[viewport\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.toml)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Parse() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without a file = %v", err)
	}
	if cfg.Viewport.Width != 1280 {
		t.Errorf("defaults not applied: %+v", cfg.Viewport)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "radialflow", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[viewport]\nheight = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil || cfg.Viewport.Height != 600 {
		t.Errorf("Load(\"\") = %+v, %v", cfg.Viewport, err)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[viewport]\ndepth = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(unknown)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), "viewport.depth") {
		t.Errorf("Load(unknown keys) = %v", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Route.Mode = "dominant"
	got, err := Parse(cfg.String())
	if err != nil {
		t.Fatalf("Parse(String()) error: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n%s", got)
	}
}
