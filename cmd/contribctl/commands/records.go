package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newRecordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Print the normalized records of both sources as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, svc.GetNormalizedRecords(cmd.Context()))
		},
	}
}

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the contributor/topic graph as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, svc.GetGraph(cmd.Context()))
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
