// Package cli implements the radialflow command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialflow/pkg/buildinfo"
	"github.com/matzehuels/radialflow/pkg/cache"
	"github.com/matzehuels/radialflow/pkg/config"
	"github.com/matzehuels/radialflow/pkg/errors"
	rfio "github.com/matzehuels/radialflow/pkg/io"
	"github.com/matzehuels/radialflow/pkg/observability"
	"github.com/matzehuels/radialflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "radialflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	redisURL    string
	metricsPath string
	metrics     *observability.Metrics
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Radialflow lays out reference graphs on concentric rings",
		Long: `Radialflow places primary nodes on an outer ring and the items they
reference on inner rings, routes the edges between them, and renders the
result. A second force-directed view groups tasks and their key-values into
clusters.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/radialflow/config.toml)")
	root.PersistentFlags().StringVar(&c.redisURL, "redis-url", "", "use a Redis cache at this URL instead of the file cache")
	root.PersistentFlags().StringVar(&c.metricsPath, "metrics", "", "write Prometheus metrics to this file on exit")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.clusterCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Metrics
// =============================================================================

// setup attaches the logger to the command context and installs the metrics
// hooks when --metrics is set.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if c.metricsPath == "" {
		return nil
	}
	if err := errors.ValidateOutputPath(c.metricsPath); err != nil {
		return err
	}
	c.metrics = observability.NewMetrics()
	c.metrics.Register()
	c.Logger.Debug("metrics enabled", "path", c.metricsPath)
	return nil
}

func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	var b strings.Builder
	if err := c.metrics.WriteText(&b); err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	if err := rfio.WriteFile(c.metricsPath, []byte(b.String())); err != nil {
		return fmt.Errorf("write metrics %s: %w", c.metricsPath, err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsPath)
	return nil
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file, or the default location when unset.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if _, shared := ch.(*cache.RedisCache); shared {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	url := c.redisURL
	if url == "" {
		url = cfg.Cache.RedisURL
	}
	if url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/radialflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the output base from -o or, when unset, from the input
// file plus view so outputs never overwrite a JSON input. A known format
// extension on output is stripped so each format gets its own suffix.
func basePath(output, input, view string, formats []string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + "." + view
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, f := range formats {
		if f == ext {
			return strings.TrimSuffix(output, "."+ext)
		}
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// writeArtifacts writes one file per format next to base and returns the
// paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + f
		if err := rfio.WriteFile(path, data); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
