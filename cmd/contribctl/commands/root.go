package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/contribgraph/backend/internal/storage"
	"github.com/contribgraph/backend/internal/util"
	"github.com/contribgraph/backend/pkg/graph"
	"github.com/contribgraph/backend/pkg/logger"
	"github.com/contribgraph/backend/pkg/logger/console"
)

// NewRootCmd builds the contribctl command tree. Configuration comes from
// the same environment the server reads; --data-dir overrides DATA_DIR.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "contribctl",
		Short: "Inspect and prepare contributor sources",
		Long: `contribctl - operator tools for the contributor network.

Available commands:
  records  - Print the normalized records of both sources
  graph    - Print the contributor/topic graph
  inspect  - Dump what the reader sees in source files
  convert  - Turn contributions.json into a spreadsheet

Examples:
  contribctl records --data-dir csv
  contribctl inspect csv/contributeurices_int.csv
  contribctl convert --in contributions.json --out contributions.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			util.LoadEnv()
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
				Debug:  verbose || util.GetEnvBool("DEBUG", false),
				Output: cmd.ErrOrStderr(),
			}))
			return nil
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().String("data-dir", "", "Directory (or S3 prefix) holding the sources; overrides DATA_DIR")

	root.AddCommand(newRecordsCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newConvertCmd())
	return root
}

// sourceConfig reads the environment and applies command line overrides.
func sourceConfig(cmd *cobra.Command) storage.SourceConfig {
	cfg := storage.SourceConfigFromEnv()
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg
}

func newService(ctx context.Context, cmd *cobra.Command) (*graph.Service, error) {
	cfg := sourceConfig(cmd)
	l, err := storage.NewSourceLoader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return graph.NewService(storage.NewReader(l, cfg)), nil
}
