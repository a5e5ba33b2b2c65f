package cli

import (
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals over all sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, release, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		renderSummary(cmd.OutOrStdout(), w.Summary())
		return nil
	},
}
