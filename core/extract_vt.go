package core

import (
	"strings"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// ExtractVT pulls the VT cell-distribution record from a gate-count
// report. The report may cover several designs; extraction anchors on
// the first line naming this design with a trailing colon and only
// scans lines after it. Both dialects share the label-scan but differ
// in how the value column is cut: V2 rows end in a colon-delimited
// field, V1 rows carry the value as the second-to-last whitespace
// token.
func ExtractVT(reader contract.ReportReader, path, design string, dialect schema.ReportDialect) schema.MetricRecord {
	labels := schema.VTLabels(dialect)
	if path == "" {
		return schema.MissingRecord(schema.VTReport, labels)
	}
	lines, err := reader.Lines(path)
	if err != nil {
		return schema.MissingRecord(schema.VTReport, labels)
	}

	section := afterDesignAnchor(lines, design)

	record := schema.MetricRecord{Kind: schema.VTReport}
	for _, label := range labels {
		record.Fields = append(record.Fields, schema.Field{
			Name:  label,
			Value: vtValue(section, label, dialect),
		})
	}
	return record
}

// afterDesignAnchor returns the lines after the first line containing
// "<design>:". With no anchor line the whole report is scanned, which
// matches single-design reports that carry no per-design banner.
func afterDesignAnchor(lines []string, design string) []string {
	anchor := design + ":"
	for i, line := range lines {
		if strings.Contains(line, anchor) {
			return lines[i+1:]
		}
	}
	return lines
}

// vtValue finds the first line whose whitespace tokens contain the
// exact label and cuts the dialect's value column.
func vtValue(lines []string, label string, dialect schema.ReportDialect) string {
	for _, line := range lines {
		if !hasToken(line, label) {
			continue
		}
		if dialect == schema.DialectV1 {
			tokens := strings.Fields(line)
			if len(tokens) < 2 {
				return schema.MissingValue
			}
			return tokens[len(tokens)-2]
		}
		parts := strings.Split(line, ":")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return schema.MissingValue
}

// hasToken reports whether any whitespace-delimited token of line
// equals tok exactly.
func hasToken(line, tok string) bool {
	for _, t := range strings.Fields(line) {
		if t == tok {
			return true
		}
	}
	return false
}
