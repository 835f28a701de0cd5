package iocache

import (
	"database/sql"

	"github.com/edakit/pnrlens/schema"
)

// noopCache is the disabled extract cache: every Get misses, every Set
// is dropped.
type noopCache struct{}

func (noopCache) Get(string) ([]byte, error)       { return nil, sql.ErrNoRows }
func (noopCache) Set(string, []byte, int64) error  { return nil }
func (noopCache) Close() error                     { return nil }
func (noopCache) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: string(schema.NoneBackend)}, nil
}

// noopHistory is the disabled history store.
type noopHistory struct{}

func (noopHistory) BeginRun(string, []string) (int64, error)          { return 0, nil }
func (noopHistory) EndRun(int64, []schema.StageName) error            { return nil }
func (noopHistory) RecordCell(int64, schema.HistoryCellRecord) error  { return nil }
func (noopHistory) GetRuns() ([]schema.HistoryRunRecord, error)       { return nil, nil }
func (noopHistory) GetCells() ([]schema.HistoryCellRecord, error)     { return nil, nil }
func (noopHistory) Close() error                                      { return nil }
func (noopHistory) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{Backend: string(schema.NoneBackend)}, nil
}
