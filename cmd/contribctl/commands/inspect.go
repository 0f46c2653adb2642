package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contribgraph/backend/pkg/contrib"
	"github.com/contribgraph/backend/pkg/inspect"
	"github.com/contribgraph/backend/pkg/loader"
	ioloader "github.com/contribgraph/backend/pkg/loader/io"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Dump raw lines, header, shape and sample records of source files",
		Long: `Dump what the reader sees in each file. Without arguments the configured
internal and external sources under --data-dir are inspected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cfg := sourceConfig(cmd)
				args = []string{
					filepath.Join(cfg.DataDir, cfg.Internal),
					filepath.Join(cfg.DataDir, cfg.External),
				}
			}

			l := ioloader.NewIOSourceLoader("")
			for _, p := range args {
				r := inspect.Inspect(cmd.Context(), loader.NewSourceFile(p, p, l), contrib.DefaultColumns)
				if err := inspect.Render(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
