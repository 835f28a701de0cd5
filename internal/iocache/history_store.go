package iocache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// History table names, created by the embedded migrations.
const (
	historyRunsTable  = "pnrlens_runs"
	historyCellsTable = "pnrlens_cells"
)

// HistoryStoreImpl logs comparison invocations and their table cells.
// Run IDs are generated application-side so the table schema stays
// identical across all three backends.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore connects to the history database and runs pending
// migrations before handing the store out.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return noopHistory{}, nil
	}

	if err := MigrateHistory(backend, connStr, -1); err != nil {
		return nil, fmt.Errorf("failed to migrate history store: %w", err)
	}

	db, err := openBackend(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// BeginRun creates a new history run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(design string, runDirs []string) (int64, error) {
	runID := time.Now().UnixNano()
	query := fmt.Sprintf(`INSERT INTO %s (run_id, start_time, design, run_dirs, stages) VALUES (%s, %s, %s, %s, %s)`,
		quoteTableName(historyRunsTable, hs.backend),
		placeholderFor(hs.backend, 1), placeholderFor(hs.backend, 2),
		placeholderFor(hs.backend, 3), placeholderFor(hs.backend, 4),
		placeholderFor(hs.backend, 5))
	_, err := hs.db.Exec(query, runID, time.Now().Unix(), design, strings.Join(runDirs, ","), "")
	if err != nil {
		return 0, fmt.Errorf("failed to begin history run: %w", err)
	}
	return runID, nil
}

// EndRun marks the run finished and records the stage list.
func (hs *HistoryStoreImpl) EndRun(runID int64, stages []schema.StageName) error {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, stages = %s WHERE run_id = %s`,
		quoteTableName(historyRunsTable, hs.backend),
		placeholderFor(hs.backend, 1), placeholderFor(hs.backend, 2), placeholderFor(hs.backend, 3))
	_, err := hs.db.Exec(query, time.Now().Unix(), strings.Join(names, ","), runID)
	if err != nil {
		return fmt.Errorf("failed to end history run: %w", err)
	}
	return nil
}

// RecordCell stores one emitted table cell.
func (hs *HistoryStoreImpl) RecordCell(runID int64, cell schema.HistoryCellRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s (run_id, stage, table_title, metric, run_label, cell_value, created_at) VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		quoteTableName(historyCellsTable, hs.backend),
		placeholderFor(hs.backend, 1), placeholderFor(hs.backend, 2),
		placeholderFor(hs.backend, 3), placeholderFor(hs.backend, 4),
		placeholderFor(hs.backend, 5), placeholderFor(hs.backend, 6),
		placeholderFor(hs.backend, 7))
	_, err := hs.db.Exec(query, runID, cell.Stage, cell.Table, cell.Metric, cell.RunLabel, cell.Value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record history cell: %w", err)
	}
	return nil
}

// GetRuns returns all logged runs, newest first.
func (hs *HistoryStoreImpl) GetRuns() ([]schema.HistoryRunRecord, error) {
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, design, run_dirs, stages FROM %s ORDER BY start_time DESC`,
		quoteTableName(historyRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query history runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.HistoryRunRecord
	for rows.Next() {
		var rec schema.HistoryRunRecord
		var startTs int64
		var endTs sql.NullInt64
		if err := rows.Scan(&rec.RunID, &startTs, &endTs, &rec.Design, &rec.RunDirs, &rec.Stages); err != nil {
			return nil, fmt.Errorf("failed to scan history run: %w", err)
		}
		rec.StartTime = time.Unix(startTs, 0)
		if endTs.Valid {
			end := time.Unix(endTs.Int64, 0)
			rec.EndTime = &end
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetCells returns all logged cells for export.
func (hs *HistoryStoreImpl) GetCells() ([]schema.HistoryCellRecord, error) {
	query := fmt.Sprintf(`SELECT run_id, stage, table_title, metric, run_label, cell_value, created_at FROM %s ORDER BY run_id, created_at`,
		quoteTableName(historyCellsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query history cells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.HistoryCellRecord
	for rows.Next() {
		var rec schema.HistoryCellRecord
		var createdTs int64
		if err := rows.Scan(&rec.RunID, &rec.Stage, &rec.Table, &rec.Metric, &rec.RunLabel, &rec.Value, &createdTs); err != nil {
			return nil, fmt.Errorf("failed to scan history cell: %w", err)
		}
		rec.CreatedAt = time.Unix(createdTs, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}
	if hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(historyRunsTable, hs.backend)
	cellsTable := quoteTableName(historyCellsTable, hs.backend)

	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", cellsTable)).Scan(&status.TotalCells); err != nil {
		return status, fmt.Errorf("failed to get total cells: %w", err)
	}
	if status.TotalRuns > 0 {
		var lastTs int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT MAX(start_time) FROM %s", runsTable)).Scan(&lastTs); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRun = time.Unix(lastTs, 0)
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
