//go:build basic

package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// writeGzipFixture writes one gzip-compressed report file, creating
// parent directories as needed.
func writeGzipFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

// seedRunDir builds a run directory with a finished place stage.
func seedRunDir(t *testing.T) string {
	t.Helper()
	runDir := t.TempDir()
	writeGzipFixture(t, filepath.Join(runDir, "place", "logs", "place.log.gz"), "done\n")
	writeGzipFixture(t, filepath.Join(runDir, "place", "rpts", "av_gate_count.rpt.gz"), ""+
		"  mydesign:\n"+
		"   SVT    40.1 : 12.5\n"+
		"   SVT8   42.5 : 10.2\n"+
		"   LVT    10.0 : 3.1\n"+
		"   ULVT    7.4 : 2.2\n"+
		"   Instances  : 120345\n"+
		"   Flops      : 20456\n"+
		"   Gates      : 99889\n")
	writeGzipFixture(t, filepath.Join(runDir, "place", "rpts", "Power_beforeOpt.rpt.gz"),
		"Total Power: 245.678\n")
	writeGzipFixture(t, filepath.Join(runDir, "place", "rpts", "invs_drc_summary.gz"),
		"Metal Short count: 3\nTotal count: 5\n")
	return runDir
}

// TestCompareTextOutput runs a full comparison against one run dir.
func TestCompareTextOutput(t *testing.T) {
	runDir := seedRunDir(t)
	err := runCommand(t, "compare", runDir, "--design", "mydesign")
	require.NoError(t, err)
}

// TestCompareCSVOutput writes the comparison to a CSV file.
func TestCompareCSVOutput(t *testing.T) {
	runDir := seedRunDir(t)
	outFile := filepath.Join(t.TempDir(), "compare.csv")
	err := runCommand(t, "compare", runDir, "--design", "mydesign", "--output", "csv", "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "VT Distribution [place]")
}

// TestGroupsCommand runs the path grouper against a timing path report.
func TestGroupsCommand(t *testing.T) {
	report := filepath.Join(t.TempDir(), "paths.rpt.gz")
	writeGzipFixture(t, report, ""+
		"Beginpoint: bufX_1_/Q rise\n"+
		"Endpoint:   reg_1_/D  setup\n"+
		"Slack Time: is -0.050 ns\n"+
		"Beginpoint: bufX_2_/Q rise\n"+
		"Endpoint:   reg_1_/D  setup\n"+
		"Slack Time: is -0.030 ns\n")

	err := runCommand(t, "groups", report)
	require.NoError(t, err)
}

// TestVersionCommand checks the binary starts at all.
func TestVersionCommand(t *testing.T) {
	require.NoError(t, runCommand(t, "version"))
}
