// Package config loads radialflow's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/radialflow/config.toml (or
// ~/.config/radialflow/config.toml) unless a path is given explicitly. Every
// field is optional; missing fields keep the values from [Default]. The
// merged result is validated with struct tags before use.
//
//	[viewport]
//	width = 1600
//	height = 900
//
//	[tiers.core]
//	color = "#10b981"
//
//	[route]
//	mode = "angle"
//	shape = "smoothstep"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/radial"
	"github.com/matzehuels/radialflow/pkg/route"
)

const appName = "radialflow"

// Viewport is the drawing area the rings are fitted to.
type Viewport struct {
	Width  float64 `toml:"width" validate:"gt=0"`
	Height float64 `toml:"height" validate:"gt=0"`
}

// Layout holds ring geometry.
type Layout struct {
	RadiusXFrac   float64 `toml:"radius_x_frac" validate:"gt=0,lte=0.5"`
	RadiusYFrac   float64 `toml:"radius_y_frac" validate:"gt=0,lte=0.5"`
	ShowSecondary bool    `toml:"show_secondary"`
}

// Tiers holds per-tier styles.
type Tiers struct {
	Core      radial.TierStyle `toml:"core"`
	Primary   radial.TierStyle `toml:"primary"`
	Secondary radial.TierStyle `toml:"secondary"`
}

// Route selects the edge router.
type Route struct {
	Mode         string  `toml:"mode" validate:"oneof=floating angle dominant"`
	Shape        string  `toml:"shape" validate:"oneof=bezier smoothstep straight"`
	BorderRadius float64 `toml:"border_radius" validate:"gte=0"`
	Curvature    float64 `toml:"curvature" validate:"gt=0,lte=1"`
}

// Cluster configures the force-directed variant.
type Cluster struct {
	Algorithm string  `toml:"algorithm" validate:"required"`
	Filter    string  `toml:"filter"`
	Threshold float64 `toml:"threshold" validate:"gte=0,lte=1"`
	Seed      uint64  `toml:"seed"`
}

// Cache selects the cache backend.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	RedisURL string `toml:"redis_url" validate:"omitempty,url"`
}

// Config is the full configuration file.
type Config struct {
	Viewport Viewport `toml:"viewport"`
	Layout   Layout   `toml:"layout"`
	Tiers    Tiers    `toml:"tiers"`
	Route    Route    `toml:"route"`
	Cluster  Cluster  `toml:"cluster"`
	Cache    Cache    `toml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	rc := radial.DefaultConfig(1280, 800)
	return Config{
		Viewport: Viewport{Width: rc.Width, Height: rc.Height},
		Layout:   Layout{RadiusXFrac: rc.RadiusXFrac, RadiusYFrac: rc.RadiusYFrac},
		Tiers:    Tiers{Core: rc.Core, Primary: rc.Primary, Secondary: rc.Secondary},
		Route: Route{
			Mode:         route.ModeFloating.String(),
			Shape:        route.ShapeBezier.String(),
			BorderRadius: route.DefaultBorderRadius,
			Curvature:    route.DefaultCurvature,
		},
		Cluster: Cluster{Algorithm: cluster.DefaultAlgorithm.String(), Filter: cluster.FilterNone.String(), Threshold: 0.5, Seed: 42},
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path on top of Default. An empty path means DefaultPath, and a
// missing file there is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text on top of Default and validates it.
func Parse(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, cfg.Validate()
}

var validate = validator.New()

// Validate checks struct tags and cross-field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := cluster.ParseAlgorithm(c.Cluster.Algorithm); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cluster.algorithm")
	}
	if _, err := cluster.ParseFilterMode(c.Cluster.Filter); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cluster.filter")
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	e := verrs[0]
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be one of %s", field, e.Param())
	case "hexcolor":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: %v is not a hex color", field, e.Value())
	case "gt", "gte", "lt", "lte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be %s %s", field, e.Tag(), e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}

// Radial converts the layout sections into a radial.Config.
func (c Config) Radial() radial.Config {
	return radial.Config{
		Width:         c.Viewport.Width,
		Height:        c.Viewport.Height,
		RadiusXFrac:   c.Layout.RadiusXFrac,
		RadiusYFrac:   c.Layout.RadiusYFrac,
		Core:          c.Tiers.Core,
		Primary:       c.Tiers.Primary,
		Secondary:     c.Tiers.Secondary,
		ShowSecondary: c.Layout.ShowSecondary,
	}
}

// Router builds the configured edge router.
func (c Config) Router() (route.Router, error) {
	mode, err := route.ParseMode(c.Route.Mode)
	if err != nil {
		return route.Router{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "route.mode")
	}
	shape, err := route.ParseShape(c.Route.Shape)
	if err != nil {
		return route.Router{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "route.shape")
	}
	return route.Router{
		Mode:         mode,
		Shape:        shape,
		BorderRadius: c.Route.BorderRadius,
		Curvature:    c.Route.Curvature,
	}, nil
}

// ClusterFilter builds the configured element filter.
func (c Config) ClusterFilter() (cluster.Filter, error) {
	mode, err := cluster.ParseFilterMode(c.Cluster.Filter)
	if err != nil {
		return cluster.Filter{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cluster.filter")
	}
	return cluster.Filter{Mode: mode, Threshold: c.Cluster.Threshold}, nil
}

// Algorithm returns the configured cluster layout algorithm.
func (c Config) Algorithm() (cluster.Algorithm, error) {
	a, err := cluster.ParseAlgorithm(c.Cluster.Algorithm)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cluster.algorithm")
	}
	return a, nil
}

// String renders the configuration back to TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
