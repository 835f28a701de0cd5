// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/edakit/pnrlens/schema"
)

// ReportReader defines the report-access operations the extractors
// need. Reports may be gzip-compressed; implementations decompress
// transparently. This allows the core pipeline to be tested without
// real report trees.
type ReportReader interface {
	// Exists reports whether path exists (file or directory).
	Exists(path string) bool

	// Lines returns the decompressed report content split into lines.
	// A missing or unreadable file returns nil and an error; callers
	// treat both as a missing artifact.
	Lines(path string) ([]string, error)

	// ReadAll returns the whole decompressed report content.
	ReadAll(path string) ([]byte, error)

	// ModTime returns the modification time of path. Stage readiness
	// uses it as a weak causal-ordering proxy between stage logs.
	ModTime(path string) (time.Time, error)
}

// StoreManager hands out the persistence stores. The default
// implementation returns no-op stores when no backend is configured.
type StoreManager interface {
	GetCacheStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore is the extract cache: extracted records keyed by report
// identity so repeated comparisons skip re-parsing unchanged reports.
type CacheStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore logs comparison invocations and their emitted cells.
type HistoryStore interface {
	// BeginRun creates a new history run and returns its unique ID.
	BeginRun(design string, runDirs []string) (int64, error)

	// EndRun marks the run finished and records the stage list.
	EndRun(runID int64, stages []schema.StageName) error

	// RecordCell stores one emitted table cell.
	RecordCell(runID int64, cell schema.HistoryCellRecord) error

	// GetRuns returns all logged runs, newest first.
	GetRuns() ([]schema.HistoryRunRecord, error)

	// GetCells returns all logged cells for export.
	GetCells() ([]schema.HistoryCellRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	Close() error
}
