package cli

import (
	"github.com/Freeeeeet/tutor_ledger/internal/app"
	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve the ledger over Telegram",
	Long:  "Run the Telegram bot. Every Telegram user gets their own ledger. Requires TELEGRAM_TOKEN.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunBot(cmd.Context(), cfg, logger)
	},
}
