package reportfs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// CompressInPlace gzips a plain report file and removes the original.
// The caller opts into this explicitly: the run directory is mutated,
// and a crash between the write and the remove leaves both files on
// disk. The compressed file keeps the original name plus ".gz".
func CompressInPlace(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	gzPath := path + ".gz"
	dst, err := os.Create(gzPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", gzPath, err)
	}

	gz := gzip.NewWriter(dst)
	if _, err := io.Copy(gz, src); err != nil {
		dst.Close()
		os.Remove(gzPath)
		return "", fmt.Errorf("compress %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		dst.Close()
		os.Remove(gzPath)
		return "", fmt.Errorf("finish compressing %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(gzPath)
		return "", fmt.Errorf("flush %s: %w", gzPath, err)
	}

	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("remove original %s: %w", path, err)
	}
	return gzPath, nil
}

// DecompressInPlace restores a file compressed by CompressInPlace and
// removes the ".gz" copy. There is no rollback: an interruption after
// the compress step leaves the file compressed until the next
// invocation restores it.
func DecompressInPlace(gzPath string) (string, error) {
	if !strings.HasSuffix(gzPath, ".gz") {
		return "", fmt.Errorf("%s is not a .gz file", gzPath)
	}
	src, err := os.Open(gzPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", gzPath, err)
	}
	defer src.Close()

	gz, err := gzip.NewReader(src)
	if err != nil {
		return "", fmt.Errorf("decompress %s: %w", gzPath, err)
	}
	defer gz.Close()

	plainPath := strings.TrimSuffix(gzPath, ".gz")
	dst, err := os.Create(plainPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", plainPath, err)
	}
	if _, err := io.Copy(dst, gz); err != nil {
		dst.Close()
		os.Remove(plainPath)
		return "", fmt.Errorf("restore %s: %w", plainPath, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(plainPath)
		return "", fmt.Errorf("flush %s: %w", plainPath, err)
	}

	if err := os.Remove(gzPath); err != nil {
		return "", fmt.Errorf("remove compressed %s: %w", gzPath, err)
	}
	return plainPath, nil
}
