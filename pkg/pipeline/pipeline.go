// Package pipeline provides the load → layout → scene → render pipeline for
// radialflow.
//
// The CLI, the watcher and the explorer all go through this package so they
// agree on defaults, validation and caching.
//
// # Views
//
// Two views are supported:
//
//   - radial: records are laid out on concentric rings, edges are routed
//     between node boundaries and decorated from a highlight set.
//   - cluster: an element list is grouped into compound clusters, placed by
//     a force-directed engine, filtered and rendered through Graphviz.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "docs.json",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Stages can be run on their own:
//
//	l, err := runner.Layout(ctx, records, opts)
//	s, err := runner.Scene(ctx, l, opts)
//	artifacts, err := runner.Render(ctx, s, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialflow/pkg/cache"
	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/config"
	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/route"
	"github.com/matzehuels/radialflow/pkg/scene"
)

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 1280.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 800.0

	// DefaultSeed seeds the random cluster layout.
	DefaultSeed = uint64(42)

	// DefaultThreshold is the default similarity threshold of the cluster view.
	DefaultThreshold = 0.5
)

// View names.
const (
	ViewRadial  = "radial"
	ViewCluster = "cluster"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// RadialFormats are the formats the radial view renders.
var RadialFormats = []string{FormatSVG, FormatPNG, FormatJSON}

// ClusterFormats are the formats the cluster view renders.
var ClusterFormats = []string{FormatSVG, FormatDOT, FormatJSON}

// Interaction actions replayed onto the highlight tracker.
const (
	ActionClick       = "click"
	ActionDoubleClick = "double-click"
	ActionClear       = "clear"
)

// Interaction is one pointer event on the radial view.
type Interaction struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input options
	Input    string            `json:"input,omitempty"` // record or element file; ignored when Records or Elements is set
	Records  []radial.Record   `json:"records,omitempty"`
	Elements []cluster.Element `json:"elements,omitempty"`
	View     string            `json:"view,omitempty"`

	// Layout options
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	ShowSecondary bool    `json:"show_secondary,omitempty"`
	RouteMode     string  `json:"route_mode,omitempty"`
	RouteShape    string  `json:"route_shape,omitempty"`

	// Highlight options
	Interactions []Interaction `json:"interactions,omitempty"`

	// Cluster options
	Algorithm  string   `json:"algorithm,omitempty"`
	Filter     string   `json:"filter,omitempty"`
	Threshold  float64  `json:"threshold,omitempty"` // 0 selects the configured default
	Seed       uint64   `json:"seed,omitempty"`
	Collapsed  []string `json:"collapsed,omitempty"`
	Tap        string   `json:"tap,omitempty"`
	EdgeLabels bool     `json:"edge_labels,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Background  string   `json:"background,omitempty"`
	NoGrid      bool     `json:"no_grid,omitempty"`
	NoLabels    bool     `json:"no_labels,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Config *config.Config `json:"-"` // tier styles, routing and cluster defaults
	Engine cluster.Engine `json:"-"` // cluster layout engine; Graphviz when nil

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// InputHash is the content hash of the loaded input.
	InputHash string

	// Layout and Scene are set for the radial view.
	Layout *radial.Layout
	Scene  *scene.Scene

	// Elements holds the positioned element list for the cluster view.
	Elements []cluster.Element

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	SkippedEdges int
	HiddenCount  int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // cluster layouts only; radial layouts are always recomputed
	RenderHit bool // all artifacts came from cache
}

// ValidateView checks that a view name is known.
func ValidateView(view string) error {
	if view != ViewRadial && view != ViewCluster {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view %q (must be one of: radial, cluster)", view)
	}
	return nil
}

// ValidateFormats checks that all formats are supported by view.
func ValidateFormats(view string, formats []string) error {
	allowed := RadialFormats
	if view == ViewCluster {
		allowed = ClusterFormats
	}
	for _, f := range formats {
		if err := errors.ValidateFormat(f, allowed); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults applies every default and validates the result.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	o.setCommonDefaults()
	if o.Input == "" && len(o.Records) == 0 && len(o.Elements) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input, records or elements is required")
	}
	if o.View == "" {
		o.View = ViewRadial
		if len(o.Elements) > 0 {
			o.View = ViewCluster
		}
	}
	return ValidateView(o.View)
}

func (o *Options) setCommonDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetLayoutDefaults fills unset layout fields from Config, then from the
// package defaults.
func (o *Options) SetLayoutDefaults() {
	o.setCommonDefaults()
	if o.View == "" {
		o.View = ViewRadial
	}
	cfg := o.config()
	if o.Width == 0 {
		o.Width = cfg.Viewport.Width
	}
	if o.Height == 0 {
		o.Height = cfg.Viewport.Height
	}
	if !o.ShowSecondary {
		o.ShowSecondary = cfg.Layout.ShowSecondary
	}
	if o.RouteMode == "" {
		o.RouteMode = cfg.Route.Mode
	}
	if o.RouteShape == "" {
		o.RouteShape = cfg.Route.Shape
	}
	if o.Algorithm == "" {
		o.Algorithm = cfg.Cluster.Algorithm
	}
	if o.Filter == "" {
		o.Filter = cfg.Cluster.Filter
	}
	if o.Threshold == 0 {
		o.Threshold = cfg.Cluster.Threshold
	}
	if o.Seed == 0 {
		o.Seed = cfg.Cluster.Seed
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// ValidateForLayout sets layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := o.Router(); err != nil {
		return err
	}
	if _, err := o.ClusterAlgorithm(); err != nil {
		return err
	}
	if _, err := o.ClusterFilter(); err != nil {
		return err
	}
	for _, in := range o.Interactions {
		switch in.Action {
		case ActionClick, ActionDoubleClick:
			if err := errors.ValidateID(in.ID); err != nil {
				return err
			}
		case ActionClear:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "invalid interaction %q (must be one of: click, double-click, clear)", in.Action)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.setCommonDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = 2
	}
}

// ValidateForRender validates and sets defaults for layout and rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.View, o.Formats)
}

func (o *Options) config() config.Config {
	if o.Config != nil {
		return *o.Config
	}
	return config.Default()
}

// RadialConfig returns the layout configuration for the current options.
func (o *Options) RadialConfig() radial.Config {
	cfg := o.config()
	rc := cfg.Radial()
	rc.Width, rc.Height = o.Width, o.Height
	rc.ShowSecondary = o.ShowSecondary
	return rc
}

// Router returns the edge router for the current options.
func (o *Options) Router() (route.Router, error) {
	cfg := o.config()
	cfg.Route.Mode, cfg.Route.Shape = o.RouteMode, o.RouteShape
	r, err := cfg.Router()
	if err != nil {
		return route.Router{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "route")
	}
	return r, nil
}

// ClusterAlgorithm parses the layout algorithm.
func (o *Options) ClusterAlgorithm() (cluster.Algorithm, error) {
	return cluster.ParseAlgorithm(o.Algorithm)
}

// ClusterFilter parses the element filter.
func (o *Options) ClusterFilter() (cluster.Filter, error) {
	mode, err := cluster.ParseFilterMode(o.Filter)
	if err != nil {
		return cluster.Filter{}, err
	}
	if err := errors.ValidateThreshold(o.Threshold); err != nil {
		return cluster.Filter{}, err
	}
	return cluster.Filter{Mode: mode, Threshold: o.Threshold}, nil
}

// IsCluster reports whether this run uses the cluster view.
func (o *Options) IsCluster() bool { return o.View == ViewCluster }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		Kind:   o.View,
		Width:  o.Width,
		Height: o.Height,
	}
	if o.IsCluster() {
		opts.Algorithm = o.Algorithm
		if a, err := o.ClusterAlgorithm(); err == nil {
			opts.Algorithm = a.String()
			if a == cluster.Random {
				opts.Seed = o.Seed
			}
		}
	} else {
		opts.ShowSecondary = o.ShowSecondary
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if o.IsCluster() {
		opts.Filter = o.Filter
		opts.Threshold = o.Threshold
		opts.Tap = o.Tap
		opts.EdgeLabels = o.EdgeLabels
		opts.Collapsed = slices.Sorted(slices.Values(o.Collapsed))
		return opts
	}
	switch format {
	case FormatSVG:
		opts.Background = o.Background
		opts.NoGrid = o.NoGrid
		opts.NoLabels = o.NoLabels
		opts.Interactive = o.Interactive
	case FormatPNG:
		opts.Background = o.Background
		opts.NoGrid = o.NoGrid
		opts.NoLabels = o.NoLabels
		opts.Scale = o.Scale
	}
	return opts
}
