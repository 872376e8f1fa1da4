package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	rfio "github.com/matzehuels/radialflow/pkg/io"
	"github.com/matzehuels/radialflow/pkg/pipeline"
)

// selectionFlags binds the interaction flags shared by layout, render and
// explore.
type selectionFlags struct {
	clicks       []string
	doubleClicks []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.clicks, "click", nil, "click a node before rendering (repeatable, applied in order)")
	cmd.Flags().StringArrayVar(&f.doubleClicks, "double-click", nil, "double-click a node after all clicks (repeatable)")
}

// interactions returns the clicks followed by the double-clicks.
func (f *selectionFlags) interactions() []pipeline.Interaction {
	var out []pipeline.Interaction
	for _, id := range f.clicks {
		out = append(out, pipeline.Interaction{Action: pipeline.ActionClick, ID: id})
	}
	for _, id := range f.doubleClicks {
		out = append(out, pipeline.Interaction{Action: pipeline.ActionDoubleClick, ID: id})
	}
	return out
}

// layoutCommand creates the layout command for computing radial scenes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		sel    selectionFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [records]",
		Short: "Compute a radial scene from a record file",
		Long: `Compute a radial scene from a record file.

Records are read from JSON or YAML. Each record names a primary node and the
items it references. Referenced items shared by several primaries land on the
core ring; the rest form the secondary ring, which is hidden unless
--secondary is set.

The output is a scene JSON file with node rectangles, routed edge paths and
the highlight decorations left by any --click/--double-click selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Interactions = sel.interactions()
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height (default from config)")
	cmd.Flags().BoolVar(&opts.ShowSecondary, "secondary", false, "show the secondary ring")
	cmd.Flags().StringVar(&opts.RouteMode, "route", "", "edge routing: floating, angle, dominant")
	cmd.Flags().StringVar(&opts.RouteShape, "shape", "", "edge shape: bezier, smoothstep, straight")
	sel.register(cmd)

	return cmd
}

// runLayout loads the records, computes the scene, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	records, err := rfio.ImportRecords(input)
	if err != nil {
		return fmt.Errorf("load records %s: %w", input, err)
	}

	// Layouts are never cached, so the runner only needs a null cache.
	runner, err := c.newRunner(ctx, cfg, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Config = &cfg
	opts.Logger = c.Logger
	opts.Records = records
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing radial layout...")
	spinner.Start()

	l, err := runner.Layout(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	s, err := runner.Scene(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Scene failed")
		return fmt.Errorf("build scene: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".scene.json"
	}

	data, err := rfio.MarshalScene(s)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := rfio.WriteFile(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printSceneStats(s, false)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
