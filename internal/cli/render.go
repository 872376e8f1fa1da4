package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/pipeline"
	"github.com/matzehuels/radialflow/pkg/watch"
)

// renderOpts holds the command-line flags for the render command that are
// not pipeline options.
type renderOpts struct {
	output  string // output file (single format) or base path
	formats string // comma-separated output formats
	noCache bool   // bypass the artifact cache
	watch   bool   // re-render whenever the input changes
}

// renderCommand creates the render command for radial outputs.
//
// Default settings come from the config file; flags left at their zero
// value fall through to it.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ro  renderOpts
		sel selectionFlags
	)
	opts := pipeline.Options{View: pipeline.ViewRadial}

	cmd := &cobra.Command{
		Use:   "render [records]",
		Short: "Render a radial layout to SVG, PNG or JSON",
		Long: `Render a radial layout to SVG, PNG or JSON.

The selection flags replay clicks against the layout before drawing, so the
output shows the same highlight a user would see after those clicks:

  radialflow render docs.json --click docs1
  radialflow render docs.json --double-click docs2 -f svg,png

With --watch the command keeps running and re-renders after every save of
the input file until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(ro.formats)
			if err := pipeline.ValidateFormats(pipeline.ViewRadial, opts.Formats); err != nil {
				return err
			}
			opts.Interactions = sel.interactions()
			opts.Input = args[0]
			return c.runRender(cmd.Context(), opts, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (default: <input>.radial.<format>)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&ro.watch, "watch", "w", false, "re-render when the input file changes")

	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height (default from config)")
	cmd.Flags().BoolVar(&opts.ShowSecondary, "secondary", false, "show the secondary ring")
	cmd.Flags().StringVar(&opts.RouteMode, "route", "", "edge routing: floating, angle, dominant")
	cmd.Flags().StringVar(&opts.RouteShape, "shape", "", "edge shape: bezier, smoothstep, straight")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color (svg, png)")
	cmd.Flags().BoolVar(&opts.NoGrid, "no-grid", false, "omit the dotted background grid")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit node labels")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed click handling in the SVG")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG pixel scale (default 2)")
	sel.register(cmd)

	return cmd
}

// runRender renders once and, with --watch, again after every change.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, ro renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.Config = &cfg
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, cfg, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.renderOnce(ctx, runner, opts, ro); err != nil {
		if !ro.watch {
			return err
		}
		printError("%v", err)
	}
	if !ro.watch {
		return nil
	}
	return c.watchRender(ctx, runner, opts, ro)
}

func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, ro renderOpts) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(ro.output, opts.Input, pipeline.ViewRadial, opts.Formats)
	paths, err := writeArtifacts(base, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done("rendered", "input", opts.Input, "formats", len(paths), "cached", result.CacheInfo.RenderHit)

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printSceneStats(result.Scene, result.CacheInfo.RenderHit)
	return nil
}

// watchRender blocks until ctx is done, re-rendering on each debounced save.
func (c *CLI) watchRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, ro renderOpts) error {
	w, err := watch.New(opts.Input, watch.WithOnError(func(err error) {
		loggerFromContext(ctx).Warn("watch", "path", opts.Input, "err", err)
	}))
	if err != nil {
		return fmt.Errorf("watch %s: %w", opts.Input, err)
	}
	defer w.Close()

	printNewline()
	printInfo("Watching %s for changes (ctrl+c to stop)", StyleHighlight.Render(w.Path()))
	for {
		select {
		case <-ctx.Done():
			printNewline()
			printDetail("Stopped watching")
			return nil
		case <-w.Changed():
			c.Logger.Debug("input changed", "path", w.Path())
			if err := c.renderOnce(ctx, runner, opts, ro); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				printWarning("Render failed: %s", errors.UserMessage(err))
			}
		}
	}
}
