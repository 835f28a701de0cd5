package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// writeGzip writes a gzip-compressed report fixture, creating parent
// directories as needed.
func writeGzip(t *testing.T, path, content string) {
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

// writePlain writes an uncompressed fixture.
func writePlain(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// touchStageLogs writes the first n stage logs of the catalog into a
// run directory, with strictly increasing modification times so the V2
// ordering check passes.
func touchStageLogs(t *testing.T, runDir string, catalog []schema.StageDefinition, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n && i < len(catalog); i++ {
		logPath := StageLogPath(runDir, catalog[i])
		writeGzip(t, logPath, "stage finished\n")
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(logPath, mtime, mtime))
	}
}

// testConfig returns a minimal validated config for core tests.
func testConfig(runDirs []string) *contract.Config {
	return &contract.Config{
		RunDirs:      runDirs,
		Stage:        schema.StageAll,
		Dialect:      schema.DialectV2,
		Design:       "mydesign",
		Output:       schema.TextOut,
		Pattern:      true,
		PatternToken: schema.DefaultPatternToken,
		GroupDisplay: schema.GroupDetailBegin,
	}
}
