package core

import (
	"strings"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// Field names of the DRC violation record.
const (
	MetalShortField = "Metal Short"
	TotalDRCField   = "Total"
)

var drcFieldNames = []string{MetalShortField, TotalDRCField}

// ExtractDRC pulls the metal-short and total violation counts from a
// DRC summary. A missing file yields the plain sentinel; a file that
// exists but carries no matching row yields the explicit "No
// Violation" text. The two outcomes are distinct on purpose: the
// first means no evidence, the second means a clean report.
func ExtractDRC(reader contract.ReportReader, path string) schema.MetricRecord {
	if path == "" {
		return schema.MissingRecord(schema.DRCReport, drcFieldNames)
	}
	lines, err := reader.Lines(path)
	if err != nil {
		return schema.MissingRecord(schema.DRCReport, drcFieldNames)
	}

	metalShort := fieldOfMatchingLine(lines, "Metal Short", 3)
	total := fieldOfMatchingLine(lines, "Total", 2)
	return schema.MetricRecord{Kind: schema.DRCReport, Fields: []schema.Field{
		{Name: MetalShortField, Value: metalShort},
		{Name: TotalDRCField, Value: total},
	}}
}

// fieldOfMatchingLine returns the idx-th whitespace field of the first
// line containing marker, or the clean-report sentinel.
func fieldOfMatchingLine(lines []string, marker string, idx int) string {
	for _, line := range lines {
		if !strings.Contains(line, marker) {
			continue
		}
		tokens := strings.Fields(line)
		if idx < len(tokens) {
			return tokens[idx]
		}
	}
	return schema.NoViolation
}
