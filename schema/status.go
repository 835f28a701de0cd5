package schema

import "time"

// CacheStatus reports the health of the extract cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
}

// HistoryStatus reports the health of the comparison history store.
type HistoryStatus struct {
	Backend    string    `json:"backend"`
	Connected  bool      `json:"connected"`
	TotalRuns  int       `json:"total_runs"`
	TotalCells int       `json:"total_cells"`
	LastRun    time.Time `json:"last_run"`
}

// HistoryRunRecord is one logged comparison invocation.
type HistoryRunRecord struct {
	RunID     int64      `json:"run_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Design    string     `json:"design"`
	RunDirs   string     `json:"run_dirs"`
	Stages    string     `json:"stages"`
}

// HistoryCellRecord is one logged table cell.
type HistoryCellRecord struct {
	RunID     int64     `json:"run_id"`
	Stage     string    `json:"stage"`
	Table     string    `json:"table"`
	Metric    string    `json:"metric"`
	RunLabel  string    `json:"run_label"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
