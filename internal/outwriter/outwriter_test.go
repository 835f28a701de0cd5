package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

func sampleCompareResult() *schema.CompareResult {
	return &schema.CompareResult{
		Design:  "mydesign",
		Dialect: schema.DialectV2,
		RunDirs: []string{"/x/run_a", "/x/run_b"},
		Readiness: []schema.StageReadiness{
			{Stage: schema.PlaceStage, Ready: 2},
		},
		Stages: []schema.StageResult{
			{
				Stage: schema.PlaceStage,
				Tables: []schema.ComparisonTable{
					{
						Title:   "VT Distribution",
						Stage:   schema.PlaceStage,
						Columns: []string{"run_a", "run_b"},
						Rows: []schema.TableRow{
							{Name: "SVT", Cells: []string{"12.5", "13.0"}},
							{Name: "LVT", Cells: []string{"3.1", schema.MissingValue}},
						},
					},
				},
			},
			{
				Stage: schema.ClockStage,
				Tables: []schema.ComparisonTable{
					{
						Title:   "DRC",
						Stage:   schema.ClockStage,
						Columns: []string{"run_a", "run_b"},
						Rows: []schema.TableRow{
							{Name: "Total", Cells: []string{"0", schema.NoViolation}},
						},
					},
				},
			},
		},
	}
}

func TestGetColumnWidthOverride(t *testing.T) {
	cfg := &contract.Config{ColumnWidth: 42}
	assert.Equal(t, 42, GetColumnWidth(cfg, 3))
}

func TestGetColumnWidthFallback(t *testing.T) {
	// Without a terminal (the test process) the conservative default
	// applies regardless of run count.
	cfg := &contract.Config{}
	w := GetColumnWidth(cfg, 2)
	assert.GreaterOrEqual(t, w, 10)
	assert.LessOrEqual(t, w, contract.MaxColumnWidth)
}

func TestWriteCompareCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCompareCSV(&buf, sampleCompareResult()))

	out := buf.String()
	blocks := strings.Split(out, "\n\n")
	require.Len(t, blocks, 2, "stage blocks are separated by a blank line")

	reader := csv.NewReader(strings.NewReader(blocks[0]))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"VT Distribution [place]", "run_a", "run_b"}, records[0])
	assert.Equal(t, []string{"SVT", "12.5", "13.0"}, records[1])
	assert.Equal(t, []string{"LVT", "3.1", "-"}, records[2])
}

func TestWriteCompareCSVNeverTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	result := &schema.CompareResult{
		Stages: []schema.StageResult{{
			Stage: schema.PlaceStage,
			Tables: []schema.ComparisonTable{{
				Title:   "VT Distribution",
				Stage:   schema.PlaceStage,
				Columns: []string{"run_a"},
				Rows:    []schema.TableRow{{Name: "SVT", Cells: []string{long}}},
			}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCompareCSV(&buf, result))
	assert.Contains(t, buf.String(), long)
	assert.NotContains(t, buf.String(), schema.TruncateMarker)
}

func TestWriteCompareTextHeader(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, ColumnWidth: 20}
	var buf bytes.Buffer
	require.NoError(t, writeCompareText(&buf, sampleCompareResult(), cfg))

	out := buf.String()
	assert.Contains(t, out, "Design: mydesign (dialect v2)")
	assert.Contains(t, out, "2/2 runs ready")
	assert.Contains(t, out, "VT Distribution [place]")
	assert.Contains(t, out, "DRC [clock]")
}

func TestWriteCompareTextUnresolvedDesign(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, ColumnWidth: 20}
	result := sampleCompareResult()
	result.Design = ""

	var buf bytes.Buffer
	require.NoError(t, writeCompareText(&buf, result, cfg))
	assert.Contains(t, buf.String(), "Design: <unresolved>")
}

func sampleGroupReport(display schema.GroupDisplay) schema.GroupReport {
	group := &schema.PathGroup{Key: "bufX_*_/Q"}
	group.Add(-0.050)
	group.Add(-0.030)
	group.AddSub("reg_*_/D", -0.050)
	group.AddSub("reg_*_/D", -0.030)
	return schema.GroupReport{
		Display: display,
		Pattern: true,
		Token:   schema.DefaultPatternToken,
		Groups:  []*schema.PathGroup{group},
	}
}

func TestWriteGroupTextDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeGroupText(&buf, sampleGroupReport(schema.GroupDetailBegin)))

	out := buf.String()
	assert.Contains(t, out, "bufX_*_/Q  count=2  min=-0.050  max=-0.030")
	assert.Contains(t, out, "    reg_*_/D  count=2")
}

func TestWriteGroupTextSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeGroupText(&buf, sampleGroupReport(schema.GroupBeginOnly)))

	out := buf.String()
	assert.Contains(t, out, "bufX_*_/Q  count=2")
	assert.NotContains(t, out, "reg_*_/D")
}

func TestWriteGroupCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeGroupCSV(&buf, sampleGroupReport(schema.GroupDominated)))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"group", "paired", "count", "min_slack", "max_slack"}, records[0])
	assert.Equal(t, []string{"bufX_*_/Q", "", "2", "-0.050", "-0.030"}, records[1])
	assert.Equal(t, []string{"bufX_*_/Q", "reg_*_/D", "2", "-0.050", "-0.030"}, records[2])
}
