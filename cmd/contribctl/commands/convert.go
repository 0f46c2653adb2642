package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/contribgraph/backend/pkg/convert"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert contributions.json into a Nom/Contact/Papier/Web sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			xlsx, _ := cmd.Flags().GetString("xlsx")

			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open %s: %w", in, err)
			}
			defer f.Close()

			contributions, err := convert.Decode(f)
			if err != nil {
				return err
			}
			rows, err := convert.Rows(contributions)
			if err != nil {
				return err
			}

			if err := writeFile(out, func(w *os.File) error { return convert.WriteCSV(w, rows) }); err != nil {
				return err
			}
			pterm.Fprintln(cmd.OutOrStdout(), pterm.Green(fmt.Sprintf("%s written (%d rows)", out, len(rows))))

			if xlsx != "" {
				if err := writeFile(xlsx, func(w *os.File) error { return convert.WriteXLSX(w, rows) }); err != nil {
					return err
				}
				pterm.Fprintln(cmd.OutOrStdout(), pterm.Green(fmt.Sprintf("%s written (%d rows)", xlsx, len(rows))))
			}
			return nil
		},
	}

	cmd.Flags().String("in", "contributions.json", "Contributions log to read")
	cmd.Flags().String("out", "contributions.csv", "CSV file to write")
	cmd.Flags().String("xlsx", "", "Also write an .xlsx workbook to this path")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
