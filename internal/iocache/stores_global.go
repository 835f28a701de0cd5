package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// extractTable is the name of the table for extract caching.
const extractTable = "extract_cache"

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager with separate cache
// and history stores. The none backend keeps the matching store a
// no-op.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		cacheStore, err := NewCacheStore(extractTable, cacheBackend, cacheConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize extract cache: %w", err)
			return
		}

		historyStore, err := NewHistoryStore(historyBackend, historyConnStr)
		if err != nil {
			_ = cacheStore.Close()
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}

		Manager.Lock()
		Manager.cache = cacheStore
		Manager.history = historyStore
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.cache != nil {
			_ = Manager.cache.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache clears the extract cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For the none backend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, extractTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, extractTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearHistory clears the history data for the specified backend. The
// SQLite file is removed outright; SQL backends roll the migrations
// back to the initial state.
func ClearHistory(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetHistoryDBFilePath()
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return MigrateHistory(backend, connStr, 0)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}
