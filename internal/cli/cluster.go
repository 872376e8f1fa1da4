package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/pipeline"
)

// clusterCommand creates the cluster command for the force-directed view.
func (c *CLI) clusterCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{View: pipeline.ViewCluster}

	cmd := &cobra.Command{
		Use:   "cluster [elements]",
		Short: "Lay out and render the task/key-value cluster view",
		Long: `Lay out and render the task/key-value cluster view.

The input is either an element list (as written by 'generate') or a record
file, whose primaries become tasks and whose references become key-values.
Every task is wrapped in a compound cluster together with its key-values and
the result is placed by a force-directed algorithm.

Filters hide nodes without moving the rest:
  none, tasks, key-values, hide-non-similar

Similarity edges scoring below --threshold are hidden in every mode. A
collapsed cluster hides its members; --tap emphasizes a node and its
neighbors the way a tap does in the live view.

Algorithms: ` + strings.Join(cluster.AlgorithmNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(pipeline.ViewCluster, opts.Formats); err != nil {
				return err
			}
			opts.Input = args[0]
			return c.runCluster(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (default: <input>.cluster.<format>)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "layout algorithm (default from config)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "node filter: none, tasks, key-values, hide-non-similar")
	cmd.Flags().Float64Var(&opts.Threshold, "threshold", 0, "minimum similarity score shown, 0..1 (default from config)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the random algorithm (default from config)")
	cmd.Flags().StringArrayVar(&opts.Collapsed, "collapse", nil, "collapse a cluster by id (repeatable)")
	cmd.Flags().StringVar(&opts.Tap, "tap", "", "emphasize a node and its neighbors")
	cmd.Flags().BoolVar(&opts.EdgeLabels, "edge-labels", false, "label edges with their similarity score")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height (default from config)")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cluster.AlgorithmNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("filter", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return cluster.FilterModeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runCluster executes the cluster pipeline and writes every artifact.
func (c *CLI) runCluster(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.Config = &cfg
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()
	prog := newProgress(loggerFromContext(ctx))

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Cluster layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, opts.Input, pipeline.ViewCluster, opts.Formats)
	paths, err := writeArtifacts(base, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	prog.done("cluster laid out", "algorithm", opts.Algorithm, "filter", opts.Filter, "cached", result.CacheInfo.LayoutHit)

	printSuccess("Cluster view complete")
	for _, p := range paths {
		printFile(p)
	}
	printClusterStats(result.Stats, result.CacheInfo)
	printNewline()
	printKeyValue("Algorithm", opts.Algorithm)
	printKeyValue("Filter", fmt.Sprintf("%s (threshold %.2f)", opts.Filter, opts.Threshold))
	return nil
}
