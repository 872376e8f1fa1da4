package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialflow/pkg/cluster"
	rfio "github.com/matzehuels/radialflow/pkg/io"
)

// generateCommand creates the generate command for synthetic cluster data.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output string
		opts   cluster.GenOptions
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic task/key-value element list",
		Long: `Write a synthetic task/key-value element list.

Each task gets its own key-values linked to it, and random similarity edges
with scores in [0, 1] connect key-values across tasks. The same seed always
produces the same list. Without -o the JSON goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			elements := cluster.Generate(opts)
			if output == "" {
				return rfio.WriteElements(elements, os.Stdout)
			}
			data, err := rfio.MarshalElements(elements)
			if err != nil {
				return err
			}
			if err := rfio.WriteFile(output, data); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Generated %s elements", StyleNumber.Render(fmt.Sprint(len(elements))))
			printFile(output)
			printNewline()
			printNextStep("Render", appName+" cluster "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.Tasks, "tasks", 25, "number of tasks")
	cmd.Flags().IntVar(&opts.KeyValuesPerTask, "kv-per-task", 10, "key-values per task")
	cmd.Flags().IntVar(&opts.SimilarityEdges, "similarity", 70, "similarity edges to attempt")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 42, "random seed")

	return cmd
}
