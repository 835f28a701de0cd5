// Package cmd defines the command-line interface for pnrlens.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Table column width override (0 = derive from terminal)")
	rootCmd.PersistentFlags().String("color", "yes", "Highlight violating values in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("ward-root", "", "Working root holding block configurations")
	rootCmd.PersistentFlags().String("block", "", "Block name under the working root")
	rootCmd.PersistentFlags().String("design", "", "Design name override (skips block config resolution)")
	rootCmd.PersistentFlags().String("dialect", string(schema.DialectV2), "Report dialect: v1 or v2")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "Extract cache backend: none or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Comparison history backend: none or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for history tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("stage", schema.StageAll, "Stage to compare: all or one catalog stage name")
	compareCmd.Flags().String("csv-file", "", "Optional CSV copy written alongside console tables")
	compareCmd.Flags().Bool("compress-alt-timing", false, "Gzip an uncompressed alternative timing summary in place before reading it (mutates the run directory)")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of groupsCmd to Viper
	groupsCmd.Flags().Bool("dominated", false, "Group by end-point with nested begin-point detail")
	groupsCmd.Flags().Bool("begin-only", false, "Print begin-point groups without nested detail")
	groupsCmd.Flags().Bool("end-only", false, "Print end-point groups without nested detail")
	groupsCmd.Flags().Bool("no-pattern", false, "Disable wildcard normalization of instance indices")
	groupsCmd.Flags().String("pattern-token", schema.DefaultPatternToken, "Replacement token for normalized instance indices")
	if err := viper.BindPFlags(groupsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding groups flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
