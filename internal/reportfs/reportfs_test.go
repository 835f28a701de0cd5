package reportfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzipFile(t *testing.T, path, content string) {
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

func TestReadAllGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.rpt.gz")
	writeGzipFile(t, path, "line one\nline two\n")

	data, err := New().ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestReadAllPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.rpt")
	require.NoError(t, os.WriteFile(path, []byte("plain content\n"), 0o644))

	data, err := New().ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "plain content\n", string(data))
}

func TestReadAllMissing(t *testing.T) {
	_, err := New().ReadAll(filepath.Join(t.TempDir(), "nope.rpt"))
	assert.Error(t, err)
}

func TestReadAllCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0o644))
	_, err := New().ReadAll(path)
	assert.Error(t, err)
}

func TestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.rpt.gz")
	writeGzipFile(t, path, "a\nb\nc\n")

	lines, err := New().Lines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitLines([]byte("a\nb\n")))
	assert.Equal(t, []string{"a", "b"}, SplitLines([]byte("a\r\nb\r\n")))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines([]byte("a\n\nb")))
	assert.Nil(t, SplitLines([]byte("")))
	assert.Nil(t, SplitLines([]byte("\n")))
}

func TestExistsAndModTime(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.log")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, fs.Exists(path))
	assert.True(t, fs.Exists(dir))
	assert.False(t, fs.Exists(filepath.Join(dir, "nope")))

	mtime, err := fs.ModTime(path)
	require.NoError(t, err)
	assert.False(t, mtime.IsZero())

	_, err = fs.ModTime(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestCompressDecompressInPlace(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "invs_timing_summary_01")
	require.NoError(t, os.WriteFile(plain, []byte("summary body\n"), 0o644))

	gzPath, err := CompressInPlace(plain)
	require.NoError(t, err)
	assert.Equal(t, plain+".gz", gzPath)
	assert.NoFileExists(t, plain)

	data, err := New().ReadAll(gzPath)
	require.NoError(t, err)
	assert.Equal(t, "summary body\n", string(data))

	restored, err := DecompressInPlace(gzPath)
	require.NoError(t, err)
	assert.Equal(t, plain, restored)
	assert.NoFileExists(t, gzPath)

	body, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "summary body\n", string(body))
}

func TestCompressInPlaceMissing(t *testing.T) {
	_, err := CompressInPlace(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDesignName(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "blk_a", "scripts", "con", "block_config.tcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(""+
		"# block configuration\n"+
		"set process  n5\n"+
		"set design   mydesign\n"+
		"set corner   tt\n"), 0o644))

	name, err := DesignName(root, "blk_a")
	require.NoError(t, err)
	assert.Equal(t, "mydesign", name)
}

func TestDesignNameMissingDeclaration(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "blk_a", "scripts", "con", "block_config.tcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("set process n5\n"), 0o644))

	_, err := DesignName(root, "blk_a")
	assert.Error(t, err)
}

func TestDesignNameUnsetInputs(t *testing.T) {
	_, err := DesignName("", "blk_a")
	assert.Error(t, err)
	_, err = DesignName("/tmp", "")
	assert.Error(t, err)
}
