package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// Power table row names.
const (
	PowerBeforeOptRow = "Before Opt"
	PowerGlobalRow    = "Global"
)

// ExecuteCompare runs the full comparison: resolve stages, locate and
// extract reports per run, and assemble one table set per stage. The
// extract cache (when a backend is configured) short-circuits
// re-parsing of unchanged reports, and every emitted cell is logged to
// the history store.
func ExecuteCompare(reader contract.ReportReader, cfg *contract.Config, mgr contract.StoreManager) (*schema.CompareResult, error) {
	stages, readiness, err := ResolveStages(reader, cfg)
	if err != nil {
		return nil, err
	}

	result := &schema.CompareResult{
		Design:    cfg.Design,
		Dialect:   cfg.Dialect,
		RunDirs:   cfg.RunDirs,
		Readiness: readiness,
	}

	for i, stage := range stages {
		if readiness[i].Ready == 0 {
			// Nothing to compare; an all-dash stage is skipped, not
			// printed empty.
			continue
		}
		stageResult := compareStage(reader, cfg, mgr, stage)
		result.Stages = append(result.Stages, stageResult)
	}

	if err := recordHistory(mgr, cfg, result); err != nil {
		contract.LogWarn("recording comparison history", err)
	}
	return result, nil
}

// compareStage builds every table for one stage. Any in-place
// compressed alternative timing summaries are restored once the
// stage's tables are assembled.
func compareStage(reader contract.ReportReader, cfg *contract.Config, mgr contract.StoreManager, stage schema.StageDefinition) schema.StageResult {
	reports, compressed := LocateReports(reader, cfg, stage)
	defer RestoreAltTiming(compressed)

	cache := mgr.GetCacheStore()
	stageResult := schema.StageResult{Stage: stage.Name}

	// VT distribution
	vtRecords := make([]schema.MetricRecord, len(reports))
	for i, rr := range reports {
		path := rr.Path(schema.VTReport)
		vtRecords[i] = cachedRecord(cache, reader, path, schema.VTReport, cfg.Dialect, func() schema.MetricRecord {
			return ExtractVT(reader, path, cfg.Design, cfg.Dialect)
		})
	}
	stageResult.Tables = append(stageResult.Tables, BuildTable(
		"VT Distribution", stage.Name, schema.VTLabels(cfg.Dialect),
		RunColumns(reports, schema.VTReport), vtRecords))

	// Power: the pre-optimization report and the global report land in
	// one table as two rows.
	powerRecords := make([]schema.MetricRecord, len(reports))
	for i, rr := range reports {
		prePath := rr.Path(schema.PowerPreOptReport)
		globalPath := rr.Path(schema.PowerGlobalReport)
		pre := cachedRecord(cache, reader, prePath, schema.PowerPreOptReport, cfg.Dialect, func() schema.MetricRecord {
			return ExtractPower(reader, prePath, schema.PowerPreOptReport)
		})
		global := cachedRecord(cache, reader, globalPath, schema.PowerGlobalReport, cfg.Dialect, func() schema.MetricRecord {
			return ExtractPower(reader, globalPath, schema.PowerGlobalReport)
		})
		powerRecords[i] = schema.MetricRecord{Kind: schema.PowerGlobalReport, Fields: []schema.Field{
			{Name: PowerBeforeOptRow, Value: pre.Value(TotalPowerField)},
			{Name: PowerGlobalRow, Value: global.Value(TotalPowerField)},
		}}
	}
	stageResult.Tables = append(stageResult.Tables, BuildTable(
		"Power", stage.Name, []string{PowerBeforeOptRow, PowerGlobalRow},
		RunColumns(reports, schema.PowerGlobalReport), powerRecords))

	// Density and congestion come out of the timing summary.
	timingPaths := make([]string, len(reports))
	for i, rr := range reports {
		timingPaths[i] = rr.Path(schema.TimingSummary)
		if timingPaths[i] == "" {
			timingPaths[i] = rr.Path(schema.AltTimingSummary)
		}
	}
	timingCols := timingColumns(reports, timingPaths)
	layoutRecords := make([]schema.MetricRecord, len(reports))
	for i := range reports {
		path := timingPaths[i]
		layoutRecords[i] = cachedRecord(cache, reader, path, schema.TimingSummary, cfg.Dialect, func() schema.MetricRecord {
			return ExtractLayout(reader, path)
		})
	}
	stageResult.Tables = append(stageResult.Tables, BuildTable(
		"Layout", stage.Name, []string{DensityField, CongestionField},
		timingCols, layoutRecords))

	// Timing: one table per check mode, rows are the union of path
	// groups seen across all runs.
	files := make([]TimingSummaryFile, len(reports))
	for i := range reports {
		files[i] = LoadTimingSummary(reader, timingPaths[i])
	}
	for _, mode := range schema.TimingModes {
		stageResult.Tables = append(stageResult.Tables,
			buildTimingTable(files, timingCols, stage.Name, mode))
	}

	// DRC violations
	drcRecords := make([]schema.MetricRecord, len(reports))
	for i, rr := range reports {
		path := rr.Path(schema.DRCReport)
		drcRecords[i] = cachedRecord(cache, reader, path, schema.DRCReport, cfg.Dialect, func() schema.MetricRecord {
			return ExtractDRC(reader, path)
		})
	}
	stageResult.Tables = append(stageResult.Tables, BuildTable(
		"DRC", stage.Name, drcFieldNames,
		RunColumns(reports, schema.DRCReport), drcRecords))

	return stageResult
}

// timingColumns labels the timing and layout columns from the
// effective summary path per run, which sits one level deeper for the
// primary summary than for the alternative one.
func timingColumns(reports []RunReports, timingPaths []string) []string {
	columns := make([]string, len(reports))
	for i, rr := range reports {
		kind := schema.TimingSummary
		if rr.Path(schema.TimingSummary) == "" {
			kind = schema.AltTimingSummary
		}
		columns[i] = DeriveRunLabel(timingPaths[i], kind, rr.RunDir)
	}
	return columns
}

// buildTimingTable assembles one mode's WNS/TNS/violating-count table.
// Row names pair the path group with the value kind so every group
// seen in any run appears, missing cells as sentinel.
func buildTimingTable(files []TimingSummaryFile, columns []string, stage schema.StageName, mode schema.TimingMode) schema.ComparisonTable {
	table := schema.ComparisonTable{
		Title:   fmt.Sprintf("Timing (%s)", mode),
		Stage:   stage,
		Columns: columns,
	}
	for _, group := range DiscoverPathGroups(files, mode) {
		for _, kind := range schema.TimingValueKinds {
			row := schema.TableRow{
				Name:  fmt.Sprintf("%s %s", group, kind),
				Cells: make([]string, len(files)),
			}
			for i, f := range files {
				row.Cells[i] = f.Value(mode, group, kind)
			}
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}

// cachedRecord returns the cached extraction for a report identity, or
// computes and stores it. The key binds the report's path and mtime so
// a rewritten report never serves a stale record. Cache failures fall
// back to a fresh extraction.
func cachedRecord(cache contract.CacheStore, reader contract.ReportReader, path string, kind schema.ReportKind, dialect schema.ReportDialect, compute func() schema.MetricRecord) schema.MetricRecord {
	if path == "" {
		return compute()
	}
	mtime, err := reader.ModTime(path)
	if err != nil {
		return compute()
	}

	key := fmt.Sprintf("%s|%s|%s|%d", kind, dialect, path, mtime.Unix())
	if raw, err := cache.Get(key); err == nil && raw != nil {
		var rec schema.MetricRecord
		if err := json.Unmarshal(raw, &rec); err == nil {
			return rec
		}
	}

	rec := compute()
	if raw, err := json.Marshal(rec); err == nil {
		if err := cache.Set(key, raw, time.Now().Unix()); err != nil {
			contract.LogWarn("writing extract cache", err)
		}
	}
	return rec
}

// recordHistory logs the comparison and its cells to the history
// store. With the "none" backend every call is a no-op.
func recordHistory(mgr contract.StoreManager, cfg *contract.Config, result *schema.CompareResult) error {
	history := mgr.GetHistoryStore()
	runID, err := history.BeginRun(cfg.Design, cfg.RunDirs)
	if err != nil {
		return err
	}
	var stages []schema.StageName
	for _, stageResult := range result.Stages {
		stages = append(stages, stageResult.Stage)
		for _, table := range stageResult.Tables {
			for _, row := range table.Rows {
				for i, cell := range row.Cells {
					rec := schema.HistoryCellRecord{
						RunID:    runID,
						Stage:    string(stageResult.Stage),
						Table:    table.Title,
						Metric:   row.Name,
						RunLabel: table.Columns[i],
						Value:    cell,
					}
					if err := history.RecordCell(runID, rec); err != nil {
						return err
					}
				}
			}
		}
	}
	return history.EndRun(runID, stages)
}
