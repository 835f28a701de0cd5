package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edakit/pnrlens/schema"
)

func TestDeriveRunLabel(t *testing.T) {
	label := DeriveRunLabel("/x/run_a/place/rpts/av_gate_count.rpt.gz", schema.VTReport, "/x/run_a")
	assert.Equal(t, "run_a", label)
}

func TestDeriveRunLabelTimingDepth(t *testing.T) {
	// Timing summaries sit one level deeper, inside the timing_0* dir.
	label := DeriveRunLabel("/x/run_a/route/rpts/timing_01/mydesign.summary.gz",
		schema.TimingSummary, "/x/run_a")
	assert.Equal(t, "run_a", label)
}

func TestDeriveRunLabelMissingPath(t *testing.T) {
	label := DeriveRunLabel("", schema.VTReport, "/x/y/run_b/")
	assert.Equal(t, "run_b", label)
}

func TestDeriveRunLabelShallowPath(t *testing.T) {
	label := DeriveRunLabel("a.rpt.gz", schema.VTReport, "/x/run_c")
	assert.Equal(t, "run_c", label)
}

func TestBuildTableFullArity(t *testing.T) {
	records := []schema.MetricRecord{
		{Kind: schema.VTReport, Fields: []schema.Field{
			{Name: "SVT", Value: "12.5"},
			{Name: "LVT", Value: "3.1"},
		}},
		// Second run is missing the LVT row entirely.
		{Kind: schema.VTReport, Fields: []schema.Field{
			{Name: "SVT", Value: "13.0"},
		}},
	}

	table := BuildTable("VT Distribution", schema.PlaceStage,
		[]string{"SVT", "LVT"}, []string{"run_a", "run_b"}, records)

	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.Len(t, row.Cells, 2)
	}
	assert.Equal(t, []string{"12.5", "13.0"}, table.Rows[0].Cells)
	assert.Equal(t, []string{"3.1", schema.MissingValue}, table.Rows[1].Cells)
}

func TestBuildTableAllMissing(t *testing.T) {
	records := []schema.MetricRecord{
		schema.MissingRecord(schema.DRCReport, []string{MetalShortField, TotalDRCField}),
	}
	table := BuildTable("DRC", schema.RouteStage,
		[]string{MetalShortField, TotalDRCField}, []string{"run_a"}, records)

	for _, row := range table.Rows {
		assert.Equal(t, []string{schema.MissingValue}, row.Cells)
	}
}

func TestRunColumnsPreserveOrder(t *testing.T) {
	reports := []RunReports{
		{RunDir: "/x/run_b", Paths: map[schema.ReportKind]string{
			schema.VTReport: "/x/run_b/place/rpts/av_gate_count.rpt.gz",
		}},
		{RunDir: "/x/run_a", Paths: map[schema.ReportKind]string{}},
	}
	columns := RunColumns(reports, schema.VTReport)
	assert.Equal(t, []string{"run_b", "run_a"}, columns)
}
