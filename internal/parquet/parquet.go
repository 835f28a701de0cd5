// Package parquet provides data structures and functions for exporting
// comparison and history data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/edakit/pnrlens/schema"
)

// ComparisonCell is one table cell of a comparison, flattened for
// columnar export.
type ComparisonCell struct {
	// Design is the resolved design name, empty when unresolved
	Design string `parquet:"design,snappy"`

	// Stage is the flow stage the cell belongs to
	Stage string `parquet:"stage,snappy"`

	// Table is the metric family title
	Table string `parquet:"table,snappy"`

	// Metric is the row name
	Metric string `parquet:"metric,snappy"`

	// RunLabel is the short run column label
	RunLabel string `parquet:"run_label,snappy"`

	// Value is the raw cell value, sentinel included
	Value string `parquet:"value,snappy"`
}

// GroupRow is one timing path group or paired point, flattened.
type GroupRow struct {
	// GroupKey is the top-level begin-point or end-point key
	GroupKey string `parquet:"group_key,snappy"`

	// Paired is the nested point name, empty for the group row itself
	Paired string `parquet:"paired,optional,snappy"`

	// Count is the occurrence count
	Count int32 `parquet:"count,snappy"`

	// MinSlack is the numerically smallest observed slack
	MinSlack float64 `parquet:"min_slack,snappy"`

	// MaxSlack is the numerically largest observed slack
	MaxSlack float64 `parquet:"max_slack,snappy"`
}

// HistoryRun mirrors the history runs database table.
type HistoryRun struct {
	RunID     int64      `parquet:"run_id,snappy"`
	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`
	Design    string     `parquet:"design,snappy"`
	RunDirs   string     `parquet:"run_dirs,snappy"`
	Stages    string     `parquet:"stages,snappy"`
}

// WriteCompareResult flattens a comparison into cells and writes them
// as one Parquet row group.
func WriteCompareResult(w io.Writer, result *schema.CompareResult) error {
	var cells []ComparisonCell
	for _, stage := range result.Stages {
		for _, table := range stage.Tables {
			for _, row := range table.Rows {
				for i, cell := range row.Cells {
					cells = append(cells, ComparisonCell{
						Design:   result.Design,
						Stage:    string(stage.Stage),
						Table:    table.Title,
						Metric:   row.Name,
						RunLabel: table.Columns[i],
						Value:    cell,
					})
				}
			}
		}
	}
	return writeRows(w, cells)
}

// WriteGroupReport flattens the path groups and writes them as one
// Parquet row group.
func WriteGroupReport(w io.Writer, report schema.GroupReport) error {
	var rows []GroupRow
	for _, group := range report.Groups {
		rows = append(rows, GroupRow{
			GroupKey: group.Key,
			Count:    int32(group.Count),
			MinSlack: group.MinSlack(),
			MaxSlack: group.MaxSlack(),
		})
		for _, sub := range group.SubOrder {
			st := group.Subs[sub]
			rows = append(rows, GroupRow{
				GroupKey: group.Key,
				Paired:   sub,
				Count:    int32(st.Count),
				MinSlack: st.MinSlack(),
				MaxSlack: st.MaxSlack(),
			})
		}
	}
	return writeRows(w, rows)
}

// WriteHistoryRuns exports logged history runs.
func WriteHistoryRuns(w io.Writer, records []schema.HistoryRunRecord) error {
	rows := make([]HistoryRun, 0, len(records))
	for _, r := range records {
		rows = append(rows, HistoryRun{
			RunID:     r.RunID,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Design:    r.Design,
			RunDirs:   r.RunDirs,
			Stages:    r.Stages,
		})
	}
	return writeRows(w, rows)
}

// writeRows writes any flattened row type using struct schema
// inference from the Parquet struct tags.
func writeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
