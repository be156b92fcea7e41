// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/payday-budget/internal/config"
	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, set by PersistentPreRunE
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "payday-budget",
		Short: "A CLI tool to manage a payday-anchored household budget.",
		Long: `payday-budget tracks buckets, category budgets and savings goals per
budget month, imports bank CSV exports, classifies transactions and
commits approved ones to the ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to payday-budget!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			logging.SetDefaultLogger(Log)
			return nil
		},
	}

	// Flags shared by the import command
	ImportFile    string
	ImportAccount string
	UseAI         bool

	// Flags shared by the report command
	ReportMonth string
	ExportPath  string

	// Flags shared by the backup command
	BackupName string

	// Flags shared by the settings command
	Payday             int
	AutoApproveRule    bool
	AutoApproveHistory bool
)

// OpenStore opens the configured SQLite database. Callers own the Close.
func OpenStore() (*store.Store, error) {
	if Cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return store.Open(Cfg.DatabasePath(), Log)
}
