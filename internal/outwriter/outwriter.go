// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/edakit/pnrlens/internal/contract"
	"golang.org/x/term"
)

// GetColumnWidth calculates the display width for table cells based on
// terminal width and the number of run columns.
func GetColumnWidth(cfg *contract.Config, runCount int) int {
	// Check for absolute width override from flag/env
	if cfg.ColumnWidth > 0 {
		return cfg.ColumnWidth
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return contract.DefaultColumnWidth
	}

	// One column for metric names plus one per run, with border and
	// padding overhead per column.
	columns := runCount + 1
	available := detectedWidth/columns - 3
	if available < 10 {
		return 10
	}
	if available > contract.MaxColumnWidth {
		return contract.MaxColumnWidth
	}
	return available
}
