package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edakit/pnrlens/internal/iocache"
	"github.com/edakit/pnrlens/internal/reportfs"
	"github.com/edakit/pnrlens/schema"
)

// seedPlaceReports writes a complete place-stage report set for one
// run directory.
func seedPlaceReports(t *testing.T, runDir string) {
	t.Helper()
	stage := schema.StageCatalogV2[0]
	rptDir := StageReportDir(runDir, stage)

	writeGzip(t, filepath.Join(rptDir, "av_gate_count.rpt.gz"), ""+
		"  mydesign:\n"+
		"   SVT    40.1 : 12.5\n"+
		"   SVT8   42.5 : 10.2\n"+
		"   LVT    10.0 : 3.1\n"+
		"   ULVT    7.4 : 2.2\n"+
		"   Instances  : 120345\n"+
		"   Flops      : 20456\n"+
		"   Gates      : 99889\n")
	writeGzip(t, filepath.Join(rptDir, "Power_beforeOpt.rpt.gz"),
		"Total Power: 245.678\n")
	writeGzip(t, filepath.Join(rptDir, "mydesign_01.global.power.rpt.gz"),
		"Total Power: 240.100\n")
	writeGzip(t, filepath.Join(rptDir, "invs_drc_summary.gz"),
		"Metal Short count: 3\nTotal count: 5\n")
	writeGzip(t, filepath.Join(rptDir, "timing_01", "mydesign.summary.gz"), ""+
		"Density: 78.34%\n"+
		"Routing Overflow: 0.03% H and 0.04% V\n"+
		"| Setup mode | all |\n"+
		"| WNS (ns):  | -0.120 |\n"+
		"| TNS (ns):  | -4.500 |\n"+
		"| Violating Paths: | 37 |\n"+
		"| Hold mode  | all |\n"+
		"| WNS (ns):  | 0.010 |\n"+
		"| TNS (ns):  | 0.000 |\n"+
		"| Violating Paths: | 0 |\n")
}

func TestExecuteCompareTableSet(t *testing.T) {
	runDir := t.TempDir()
	touchStageLogs(t, runDir, schema.StageCatalogV2, 1)
	seedPlaceReports(t, runDir)

	cfg := testConfig([]string{runDir})
	result, err := ExecuteCompare(reportfs.New(), cfg, iocache.Manager)
	require.NoError(t, err)

	require.Len(t, result.Stages, 1)
	stage := result.Stages[0]
	assert.Equal(t, schema.PlaceStage, stage.Stage)

	titles := make([]string, 0, len(stage.Tables))
	for _, table := range stage.Tables {
		titles = append(titles, table.Title)
	}
	assert.Equal(t, []string{
		"VT Distribution",
		"Power",
		"Layout",
		"Timing (Setup mode)",
		"Timing (Hold mode)",
		"DRC",
	}, titles)
}

func TestExecuteCompareCellValues(t *testing.T) {
	runDir := t.TempDir()
	touchStageLogs(t, runDir, schema.StageCatalogV2, 1)
	seedPlaceReports(t, runDir)

	cfg := testConfig([]string{runDir})
	result, err := ExecuteCompare(reportfs.New(), cfg, iocache.Manager)
	require.NoError(t, err)
	require.Len(t, result.Stages, 1)

	byTitle := make(map[string]schema.ComparisonTable)
	for _, table := range result.Stages[0].Tables {
		byTitle[table.Title] = table
	}

	vt := byTitle["VT Distribution"]
	require.Len(t, vt.Rows, len(schema.VTLabelsV2))
	assert.Equal(t, "SVT", vt.Rows[0].Name)
	assert.Equal(t, []string{"12.5"}, vt.Rows[0].Cells)

	power := byTitle["Power"]
	require.Len(t, power.Rows, 2)
	assert.Equal(t, []string{"245.678"}, power.Rows[0].Cells)
	assert.Equal(t, []string{"240.100"}, power.Rows[1].Cells)

	layout := byTitle["Layout"]
	assert.Equal(t, []string{"78.34%"}, layout.Rows[0].Cells)
	assert.Equal(t, []string{"0.03% H 0.04% V"}, layout.Rows[1].Cells)

	setup := byTitle["Timing (Setup mode)"]
	require.Len(t, setup.Rows, len(schema.TimingValueKinds))
	assert.Equal(t, "all WNS", setup.Rows[0].Name)
	assert.Equal(t, []string{"-0.120"}, setup.Rows[0].Cells)

	drc := byTitle["DRC"]
	assert.Equal(t, []string{"3"}, drc.Rows[0].Cells)
	assert.Equal(t, []string{"5"}, drc.Rows[1].Cells)
}

func TestExecuteCompareSkipsUnreadyStage(t *testing.T) {
	// Only the place log exists, so later stages never produce tables
	// even though the catalog names them.
	runDir := t.TempDir()
	touchStageLogs(t, runDir, schema.StageCatalogV2, 1)
	seedPlaceReports(t, runDir)

	cfg := testConfig([]string{runDir})
	result, err := ExecuteCompare(reportfs.New(), cfg, iocache.Manager)
	require.NoError(t, err)

	require.Len(t, result.Stages, 1)
	require.Len(t, result.Readiness, len(schema.StageCatalogV2))
	assert.Equal(t, 1, result.Readiness[0].Ready)
}

func TestExecuteCompareRunWithoutReports(t *testing.T) {
	// A run whose stage is ready but whose reports are absent still gets
	// a column, filled with the sentinel.
	runA := t.TempDir()
	runB := t.TempDir()
	touchStageLogs(t, runA, schema.StageCatalogV2, 1)
	touchStageLogs(t, runB, schema.StageCatalogV2, 1)
	seedPlaceReports(t, runA)

	cfg := testConfig([]string{runA, runB})
	result, err := ExecuteCompare(reportfs.New(), cfg, iocache.Manager)
	require.NoError(t, err)
	require.Len(t, result.Stages, 1)

	for _, table := range result.Stages[0].Tables {
		assert.Len(t, table.Columns, 2, "table %s", table.Title)
		for _, row := range table.Rows {
			require.Len(t, row.Cells, 2)
		}
	}

	var vt schema.ComparisonTable
	for _, table := range result.Stages[0].Tables {
		if table.Title == "VT Distribution" {
			vt = table
		}
	}
	assert.Equal(t, "12.5", vt.Rows[0].Cells[0])
	assert.Equal(t, schema.MissingValue, vt.Rows[0].Cells[1])
}

func TestExecuteCompareInvalidStage(t *testing.T) {
	runDir := t.TempDir()
	cfg := testConfig([]string{runDir})
	cfg.Stage = "floorplan"

	_, err := ExecuteCompare(reportfs.New(), cfg, iocache.Manager)
	assert.Error(t, err)
}

// A run whose only summary is the alternative one sits one directory
// level higher than the primary, so the column label has to come from
// the alternative depth.
func TestTimingColumnsUseAltSummaryDepth(t *testing.T) {
	primary := RunReports{RunDir: "/x/run_a", Paths: map[schema.ReportKind]string{
		schema.TimingSummary: "/x/run_a/place/rpts/timing_01/mydesign.summary.gz",
	}}
	alt := RunReports{RunDir: "/x/run_b", Paths: map[schema.ReportKind]string{
		schema.AltTimingSummary: "/x/run_b/place/rpts/invs_timing_summary.gz",
	}}
	reports := []RunReports{primary, alt}
	paths := []string{
		primary.Path(schema.TimingSummary),
		alt.Path(schema.AltTimingSummary),
	}

	assert.Equal(t, []string{"run_a", "run_b"}, timingColumns(reports, paths))
}
