package core

import (
	"path/filepath"
	"strings"

	"github.com/edakit/pnrlens/schema"
)

// DeriveRunLabel derives the short column label for a run from the
// resolved report path: the path segment a fixed number of levels
// above the report file, per schema.RunLabelDepth. This is a
// structural assumption about the run-directory layout, not a semantic
// lookup. When the report is missing the run directory's base name is
// the label, so a missing run still gets a stable column header.
func DeriveRunLabel(path string, kind schema.ReportKind, runDir string) string {
	if path == "" {
		return filepath.Base(filepath.Clean(runDir))
	}
	depth := schema.RunLabelDepth[kind]
	segments := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	idx := len(segments) - 1 - depth
	if idx < 0 {
		return filepath.Base(filepath.Clean(runDir))
	}
	return segments[idx]
}

// BuildTable assembles one comparison table: rows are the metric field
// names in record order, columns are the runs in input order. Every
// row gets exactly one cell per column; a record that lacks a field
// contributes the sentinel, never a shorter row.
func BuildTable(title string, stage schema.StageName, fieldNames, columns []string, records []schema.MetricRecord) schema.ComparisonTable {
	table := schema.ComparisonTable{
		Title:   title,
		Stage:   stage,
		Columns: columns,
	}
	for _, name := range fieldNames {
		row := schema.TableRow{Name: name, Cells: make([]string, len(records))}
		for i, rec := range records {
			row.Cells[i] = rec.Value(name)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// RunColumns derives one label per run for a report kind, preserving
// run input order.
func RunColumns(reports []RunReports, kind schema.ReportKind) []string {
	columns := make([]string, len(reports))
	for i, rr := range reports {
		columns[i] = DeriveRunLabel(rr.Path(kind), kind, rr.RunDir)
	}
	return columns
}
