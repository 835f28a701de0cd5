// Package schema holds the shared data model for pnrlens: stage
// catalogs, metric records, comparison tables and timing path groups.
package schema

// Field is one named cell extracted from a report.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MetricRecord is the fixed-arity output of one extractor for one run.
// A field that was not found still occupies its slot with the
// MissingValue sentinel so table columns stay aligned.
type MetricRecord struct {
	Kind   ReportKind `json:"kind"`
	Fields []Field    `json:"fields"`
}

// MissingRecord returns a record with every field set to the sentinel.
func MissingRecord(kind ReportKind, names []string) MetricRecord {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Value: MissingValue}
	}
	return MetricRecord{Kind: kind, Fields: fields}
}

// Value returns the value for a field name, or the sentinel.
func (r MetricRecord) Value(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return MissingValue
}

// TableRow is one metric row across all runs.
type TableRow struct {
	Name  string   `json:"name"`
	Cells []string `json:"cells"`
}

// ComparisonTable is one metric family at one stage: rows are field
// names (or path-group names for timing), columns are runs in the
// order the run directories were supplied.
type ComparisonTable struct {
	Title   string     `json:"title"`
	Stage   StageName  `json:"stage"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// StageReadiness counts, per stage, how many runs have valid log
// evidence for the whole chain up to and including that stage.
type StageReadiness struct {
	Stage StageName `json:"stage"`
	Ready int       `json:"ready"`
}

// StageResult bundles every table produced for one stage.
type StageResult struct {
	Stage  StageName         `json:"stage"`
	Tables []ComparisonTable `json:"tables"`
}

// CompareResult is the full output of one comparison invocation.
type CompareResult struct {
	Design    string           `json:"design"`
	Dialect   ReportDialect    `json:"dialect"`
	RunDirs   []string         `json:"run_dirs"`
	Readiness []StageReadiness `json:"readiness"`
	Stages    []StageResult    `json:"stages"`
}
