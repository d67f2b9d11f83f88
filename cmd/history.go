package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/divrank/internal/contract"
	"github.com/huangsam/divrank/internal/iocache"
	"github.com/huangsam/divrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig reads and validates the history backend settings.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	// Empty backend resolves to NoneBackend
	backend, err := contract.ParseBackend(viper.GetString("history-backend"))
	if err != nil {
		return "", "", fmt.Errorf("history: %w", err)
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// No snapshot cache for history commands
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend {
		connStr = sqlitePath(connStr, contract.GetHistoryDBFilePath())
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on ranking history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by ranking commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage ranking history tracking and exports",
	Long: `Manage the record of past ranking runs.

When --history-backend is set, every ranking run (CLI, dashboard or MCP) is
stored with:
- Run metadata (timestamp, metric, states, configuration, duration)
- The ranked rows it produced

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export history to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  divrank history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  divrank history export --history-backend sqlite --output-file history`,
}

// historyClearCmd clears the ranking history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all ranking history",
	Long: `Delete all stored ranking runs and their ranked rows.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  divrank history export --output-file backup
  divrank history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseCaching()
		if err := iocache.ClearHistory(cfg.HistoryBackend, sqlitePath(cfg.HistoryDBConnect, contract.GetHistoryDBFilePath()), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear ranking history", err)
		}
		fmt.Println("Ranking history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display ranking history statistics and connection details",
	Long: `Show detailed information about ranking history tracking.

Displays:
- Backend type and connection status
- Total number of ranking runs stored
- Last and oldest run timestamps
- Total rows ranked across all runs
- Database table sizes

Examples:
  divrank history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", errors.New("history tracking is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports the ranking history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranking history to Parquet files",
	Long: `Export all ranking runs and ranked rows to two Parquet files:

  <output-file>.ranking_runs.parquet
  <output-file>.ranking_rows.parquet

Examples:
  divrank history export --output-file history`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export ranking history", err)
		}
	},
}

// historyMigrateCmd runs schema migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations for the ranking history store",
	Long: `Apply or roll back schema migrations for the ranking history tables.

  --target-version -1  Migrate to the latest version (default)
  --target-version 0   Roll back every migration
  --target-version N   Migrate up or down to version N

Examples:
  divrank history migrate --history-backend sqlite
  divrank history migrate --history-backend postgresql --target-version 1`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate ranking history", err)
		}
	},
}
