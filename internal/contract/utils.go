package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// ViolationColor highlights negative slack and violation counts.
var ViolationColor = color.New(color.FgRed, color.Bold)

// ColorizeCell applies violation coloring to a table cell: strictly
// negative numeric values render red. Everything else passes through.
func ColorizeCell(value string) string {
	if strings.HasPrefix(value, "-") && len(value) > 1 && value[1] >= '0' && value[1] <= '9' {
		return ViolationColor.Sprint(value)
	}
	return value
}

// TruncateCell cuts a cell to the maximum width, reserving space for
// the trailing marker. Requires maxWidth > len(marker); smaller widths
// pass the value through untouched.
func TruncateCell(value string, maxWidth int, marker string) string {
	runes := []rune(value)
	if len(runes) > maxWidth && maxWidth > len(marker) {
		return string(runes[:maxWidth-len(marker)]) + marker
	}
	return value
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the
// extract cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pnrlens_cache.db"
	}
	return filepath.Join(homeDir, ".pnrlens_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for the
// comparison history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pnrlens_history.db"
	}
	return filepath.Join(homeDir, ".pnrlens_history.db")
}
