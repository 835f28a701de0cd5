// Package iocache holds the optional persistence stores: the extract
// cache and the comparison history.
package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// StoreManagerImpl manages the cache and history store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	cache        contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetCacheStore returns the extract cache store. Before InitStores, or
// with the none backend, it returns a no-op store, never nil.
func (mgr *StoreManagerImpl) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.cache == nil {
		return noopCache{}
	}
	return mgr.cache
}

// GetHistoryStore returns the comparison history store. Before
// InitStores, or with the none backend, it returns a no-op store.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.history == nil {
		return noopHistory{}
	}
	return mgr.history
}

// tableNamePattern restricts table names to plain identifiers.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName rejects table names that could carry SQL syntax.
func validateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %q", name)
	}
	return nil
}

// quoteTableName quotes a table name for the backend's identifier
// syntax.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + name + "`"
	default: // SQLite and PostgreSQL
		return `"` + name + `"`
	}
}

// placeholderFor returns the parameter placeholder for the backend.
func placeholderFor(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// openBackend opens a database handle for the backend. SQLite is
// limited to one open connection to avoid "database is locked" errors.
func openBackend(backend schema.DatabaseBackend, connStr, defaultPath string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = defaultPath
		}
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
