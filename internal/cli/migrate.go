package cli

import (
	"fmt"

	"github.com/Freeeeeet/tutor_ledger/internal/app"
	"github.com/Freeeeeet/tutor_ledger/internal/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply PostgreSQL migrations, or roll back the latest one with --down. The SQLite store migrates itself on open.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if cfg.StoreDriver != config.DriverPostgres {
			fmt.Fprintln(out, mutedStyle.Render("SQLite store is migrated automatically, nothing to do."))
			return nil
		}

		ctx := cmd.Context()
		pool, err := app.OpenPool(ctx, cfg.DBDSN, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
		if err != nil {
			return err
		}
		defer migrator.Close()

		down, _ := cmd.Flags().GetBool("down")
		if down {
			if err := migrator.Down(ctx); err != nil {
				return err
			}
		} else if err := migrator.Run(ctx); err != nil {
			return err
		}

		version, err := migrator.Version(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %d\n", successStyle.Render("Schema version:"), version)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("down", false, "Roll back the latest migration")
}
