package parquet

import (
	"bytes"
	"testing"

	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edakit/pnrlens/schema"
)

func TestWriteCompareResultFlattensCells(t *testing.T) {
	result := &schema.CompareResult{
		Design: "mydesign",
		Stages: []schema.StageResult{{
			Stage: schema.PlaceStage,
			Tables: []schema.ComparisonTable{{
				Title:   "VT Distribution",
				Stage:   schema.PlaceStage,
				Columns: []string{"run_a", "run_b"},
				Rows: []schema.TableRow{
					{Name: "SVT", Cells: []string{"12.5", "13.0"}},
				},
			}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCompareResult(&buf, result))

	rows, err := pq.Read[ComparisonCell](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "mydesign", rows[0].Design)
	assert.Equal(t, "run_a", rows[0].RunLabel)
	assert.Equal(t, "12.5", rows[0].Value)
	assert.Equal(t, "run_b", rows[1].RunLabel)
}

func TestWriteGroupReport(t *testing.T) {
	group := &schema.PathGroup{Key: "bufX_*_/Q"}
	group.Add(-0.050)
	group.AddSub("reg_*_/D", -0.050)
	report := schema.GroupReport{Groups: []*schema.PathGroup{group}}

	var buf bytes.Buffer
	require.NoError(t, WriteGroupReport(&buf, report))

	rows, err := pq.Read[GroupRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].Paired)
	assert.Equal(t, "reg_*_/D", rows[1].Paired)
	assert.InDelta(t, -0.050, rows[0].MinSlack, 1e-9)
}

func TestWriteHistoryRunsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryRuns(&buf, nil))
	assert.NotZero(t, buf.Len())
}
