package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/internal/iocache"
	"github.com/edakit/pnrlens/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize stores with the loaded config (no history tracking for cache commands)
	if err := iocache.InitStores(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on extract cache management.
//
// Note: Cache subcommands use minimal initialization instead of the
// full sharedSetup used by comparison commands. This avoids run
// directory validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the report extract cache (improves performance)",
	Long: `Manage the extract cache that speeds up repeated comparisons.

Pnrlens can cache extracted metric records keyed by report identity so
re-running a comparison over unchanged reports skips re-parsing. The
cache is disabled unless a backend is configured.

Supported backends: none (default), SQLite, MySQL, PostgreSQL

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  pnrlens cache status

  # Clear the cache after report trees were rewritten
  PNRLENS_CACHE_BACKEND=sqlite pnrlens cache clear`,
}

// cacheClearCmd clears the extract cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached extractions",
	Long: `Delete all cached metric extractions from the configured backend.

Use this when report trees were regenerated in place or the cache may
be stale or corrupted.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache
  PNRLENS_CACHE_BACKEND=sqlite pnrlens cache clear

  # Clear MySQL cache (set connection string via env variable)
  PNRLENS_CACHE_BACKEND=mysql PNRLENS_CACHE_DB_CONNECT="..." pnrlens cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the extract cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps

Examples:
  # Check cache status
  pnrlens cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetCacheStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		fmt.Printf("Backend:       %s\n", status.Backend)
		fmt.Printf("Connected:     %t\n", status.Connected)
		fmt.Printf("Total entries: %d\n", status.TotalEntries)
		if status.TotalEntries > 0 {
			fmt.Printf("Last entry:    %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("Oldest entry:  %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
		}
	},
}
