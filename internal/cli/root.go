package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_ledger/internal/app"
	"github.com/Freeeeeet/tutor_ledger/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Общие флаги и то, что из них собрано перед запуском команды
var (
	ownerFlag   string
	verboseFlag bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Tutoring session ledger",
	Long: `ledger records tutoring sessions (date, student, topic, duration, fee)
for one owner, in PostgreSQL or a local SQLite file.

Use the bot command to serve the same ledger over Telegram.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

// loadRuntime читает конфиг и создаёт логгер для любой подкоманды
func loadRuntime(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	logger = app.NewLogger(cfg.Environment)
	if !verboseFlag && cmd != botCmd {
		// В одноразовых командах логи мешают выводу
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	}

	return nil
}

// SetVersion sets the version information
func SetVersion(version, commit string) {
	rootCmd.Version = version + " (" + commit + ")"
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logger.Sync() }()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "owner identity (default $LEDGER_OWNER)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log at info level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(botCmd)
}
