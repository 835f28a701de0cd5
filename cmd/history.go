package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/internal/iocache"
	"github.com/edakit/pnrlens/internal/parquet"
	"github.com/edakit/pnrlens/schema"
)

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyCmd focused on comparison history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the comparison history log",
	Long: `Manage the log of past comparison invocations and their table cells.

When a history backend is configured, every comparison records its runs
and emitted cells, enabling trend tracking across PnR iterations.
History is disabled unless a backend is configured.

Supported backends: none (default), SQLite, MySQL, PostgreSQL

Subcommands:
  status  - Show history statistics and connection info
  clear   - Remove all logged data
  export  - Export logged runs to a Parquet file
  migrate - Run schema migrations

Examples:
  # List history status
  PNRLENS_HISTORY_BACKEND=sqlite pnrlens history status`,
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all logged comparison data",
	Long: `Delete all logged comparison runs and cells from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls the schema migrations back to the initial state

Examples:
  PNRLENS_HISTORY_BACKEND=sqlite pnrlens history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the comparison history store.

Displays:
- Backend type and connection status
- Total number of logged runs and cells
- Time of the most recent run

Examples:
  pnrlens history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		fmt.Printf("Backend:     %s\n", status.Backend)
		fmt.Printf("Connected:   %t\n", status.Connected)
		fmt.Printf("Total runs:  %d\n", status.TotalRuns)
		fmt.Printf("Total cells: %d\n", status.TotalCells)
		if status.TotalRuns > 0 {
			fmt.Printf("Last run:    %s\n", status.LastRun.Format("2006-01-02 15:04:05"))
		}
	},
}

// historyExportCmd exports logged runs to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged comparison runs to a Parquet file",
	Long: `Export the logged comparison runs as a Parquet file for analysis
in columnar tooling.

Use --output-file to name the destination; without it the Parquet
stream goes to stdout.

Examples:
  PNRLENS_HISTORY_BACKEND=sqlite pnrlens history export --output-file runs.parquet`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		runs, err := iocache.Manager.GetHistoryStore().GetRuns()
		if err != nil {
			return fmt.Errorf("failed to read history runs: %w", err)
		}

		outputFile := viper.GetString("output-file")
		file, err := contract.SelectOutputFile(outputFile)
		if err != nil {
			return err
		}
		var w io.Writer = file
		if outputFile != "" {
			defer func() { _ = file.Close() }()
		}

		if err := parquet.WriteHistoryRuns(w, runs); err != nil {
			return err
		}
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Exported %d runs.\n", len(runs))
		return nil
	},
}

// historyMigrateCmd runs history schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history schema migrations",
	Long: `Run database schema migrations for the history store.

Use --target-version to pick a version: -1 migrates to the latest,
0 rolls back everything, a positive number targets that version.

Examples:
  PNRLENS_HISTORY_BACKEND=sqlite pnrlens history migrate
  PNRLENS_HISTORY_BACKEND=sqlite pnrlens history migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; only load config here.
		return loadConfigFile()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		backend := schema.DatabaseBackend(viper.GetString("history-backend"))
		connStr := viper.GetString("history-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			return err
		}
		target := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(backend, connStr, target); err != nil {
			return err
		}
		fmt.Println("Migration completed successfully.")
		return nil
	},
}
