// Package reportfs reads PnR run-directory artifacts. Reports and logs
// are usually gzip-compressed; everything here decompresses
// transparently based on the file extension.
package reportfs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// FS is the production report reader. It satisfies contract.ReportReader.
type FS struct{}

// New returns a filesystem-backed report reader.
func New() *FS {
	return &FS{}
}

// Exists reports whether path exists, file or directory.
func (f *FS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ModTime returns the modification time of path.
func (f *FS) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

// ReadAll returns the decompressed content of a report file.
func (f *FS) ReadAll(path string) ([]byte, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer fh.Close()

	var reader io.Reader = fh
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("decompress report %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	return data, nil
}

// Lines returns the decompressed report content split into lines.
// Trailing newlines do not produce an empty final element.
func (f *FS) Lines(path string) ([]string, error) {
	data, err := f.ReadAll(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(data), nil
}

// SplitLines splits report content into lines, dropping a trailing
// empty line and carriage returns.
func SplitLines(data []byte) []string {
	data = bytes.TrimSuffix(data, []byte("\n"))
	if len(data) == 0 {
		return nil
	}
	raw := strings.Split(string(data), "\n")
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}
	return raw
}
