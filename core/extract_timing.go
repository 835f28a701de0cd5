package core

import (
	"strings"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// timingSection is one check-mode block of a pipe-delimited timing
// summary: the header row naming the mode and the path-group columns,
// plus every row up to the next mode header. Row lookups are scoped to
// the section so a label match in another mode's block is never used.
type timingSection struct {
	Mode    schema.TimingMode
	Columns []string
	Rows    []timingRow
}

type timingRow struct {
	Label string
	Cells []string
}

// parseTimingSummary splits a timing summary into its mode sections.
func parseTimingSummary(lines []string) []timingSection {
	var sections []timingSection
	var current *timingSection

	for _, line := range lines {
		if !strings.Contains(line, "|") {
			continue
		}
		cells := splitPipeCells(line)
		if len(cells) == 0 {
			continue
		}
		if mode, ok := matchMode(cells[0]); ok {
			sections = append(sections, timingSection{Mode: mode, Columns: cells[1:]})
			current = &sections[len(sections)-1]
			continue
		}
		if current != nil {
			current.Rows = append(current.Rows, timingRow{Label: cells[0], Cells: cells[1:]})
		}
	}
	return sections
}

// splitPipeCells splits a table line on pipes, trims each cell, and
// drops the empty border cells the leading and trailing pipes produce.
func splitPipeCells(line string) []string {
	raw := strings.Split(line, "|")
	cells := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func matchMode(cell string) (schema.TimingMode, bool) {
	for _, mode := range schema.TimingModes {
		if strings.Contains(cell, string(mode)) {
			return mode, true
		}
	}
	return "", false
}

// TimingValue returns the cell for one (mode, path group, value kind)
// lookup in a parsed timing summary. The column is the first header
// cell containing the group name; the row is the first row in the same
// section whose label contains the value kind. Anything unmatched
// yields the sentinel.
func timingValue(sections []timingSection, mode schema.TimingMode, group string, kind schema.TimingValueKind) string {
	for _, sec := range sections {
		if sec.Mode != mode {
			continue
		}
		col := -1
		for j, header := range sec.Columns {
			if strings.Contains(header, group) {
				col = j
				break
			}
		}
		if col < 0 {
			return schema.MissingValue
		}
		for _, row := range sec.Rows {
			if !strings.Contains(row.Label, string(kind)) {
				continue
			}
			if col < len(row.Cells) {
				return row.Cells[col]
			}
			return schema.MissingValue
		}
		return schema.MissingValue
	}
	return schema.MissingValue
}

// TimingSummaryFile is one run's parsed timing summary, or nil
// sections when the report is missing.
type TimingSummaryFile struct {
	Path     string
	Sections []timingSection
}

// LoadTimingSummary reads and parses one run's timing summary. A
// missing path yields a file with no sections; lookups against it all
// resolve to the sentinel.
func LoadTimingSummary(reader contract.ReportReader, path string) TimingSummaryFile {
	if path == "" {
		return TimingSummaryFile{}
	}
	lines, err := reader.Lines(path)
	if err != nil {
		return TimingSummaryFile{Path: path}
	}
	return TimingSummaryFile{Path: path, Sections: parseTimingSummary(lines)}
}

// Value looks up one timing cell in this file.
func (f TimingSummaryFile) Value(mode schema.TimingMode, group string, kind schema.TimingValueKind) string {
	return timingValue(f.Sections, mode, group, kind)
}

// DiscoverPathGroups returns the union of path-group column headers
// for one mode across all run files, in first-seen order. Runs may
// report different group subsets; the comparison table must show every
// group seen anywhere, with missing cells as sentinel.
func DiscoverPathGroups(files []TimingSummaryFile, mode schema.TimingMode) []string {
	var groups []string
	seen := make(map[string]struct{})
	for _, f := range files {
		for _, sec := range f.Sections {
			if sec.Mode != mode {
				continue
			}
			for _, header := range sec.Columns {
				if _, ok := seen[header]; !ok {
					seen[header] = struct{}{}
					groups = append(groups, header)
				}
			}
		}
	}
	return groups
}
