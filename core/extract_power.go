package core

import (
	"strings"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// Field names of the power and layout metric records.
const (
	TotalPowerField = "Total Power"
	DensityField    = "Density"
	CongestionField = "Congestion"
)

// ExtractPower pulls the total-power figure from a power report: the
// last whitespace token of the line containing "Total Power:".
func ExtractPower(reader contract.ReportReader, path string, kind schema.ReportKind) schema.MetricRecord {
	names := []string{TotalPowerField}
	if path == "" {
		return schema.MissingRecord(kind, names)
	}
	lines, err := reader.Lines(path)
	if err != nil {
		return schema.MissingRecord(kind, names)
	}
	for _, line := range lines {
		if strings.Contains(line, "Total Power:") {
			tokens := strings.Fields(line)
			if len(tokens) > 0 {
				return schema.MetricRecord{Kind: kind, Fields: []schema.Field{
					{Name: TotalPowerField, Value: tokens[len(tokens)-1]},
				}}
			}
		}
	}
	return schema.MissingRecord(kind, names)
}

// ExtractDensity pulls the placement density from a timing summary.
// Two report dialects occur: a line containing "Density" whose last
// token is the value, and a line containing "Density:" where the value
// follows the label token. The first line matching either wins.
func ExtractDensity(lines []string) string {
	for _, line := range lines {
		tokens := strings.Fields(line)
		for i, tok := range tokens {
			if tok == "Density:" && i+1 < len(tokens) {
				return tokens[i+1]
			}
		}
		if strings.Contains(line, "Density") && len(tokens) > 0 {
			return tokens[len(tokens)-1]
		}
	}
	return schema.MissingValue
}

// ExtractCongestion pulls the routing-overflow summary: the line
// containing "Routing Overflow" with both horizontal and vertical
// indicators. The four values sit at fixed offsets from line end
// (H percent, H marker, V percent, V marker) and are joined into one
// display cell.
func ExtractCongestion(lines []string) string {
	for _, line := range lines {
		if !strings.Contains(line, "Routing Overflow") {
			continue
		}
		if !strings.Contains(line, "H") || !strings.Contains(line, "V") {
			continue
		}
		tokens := strings.Fields(line)
		n := len(tokens)
		if n < 6 {
			continue
		}
		return strings.Join([]string{tokens[n-5], tokens[n-4], tokens[n-2], tokens[n-1]}, " ")
	}
	return schema.MissingValue
}

// ExtractLayout combines density and congestion from one timing
// summary into a single record.
func ExtractLayout(reader contract.ReportReader, path string) schema.MetricRecord {
	names := []string{DensityField, CongestionField}
	if path == "" {
		return schema.MissingRecord(schema.TimingSummary, names)
	}
	lines, err := reader.Lines(path)
	if err != nil {
		return schema.MissingRecord(schema.TimingSummary, names)
	}
	return schema.MetricRecord{Kind: schema.TimingSummary, Fields: []schema.Field{
		{Name: DensityField, Value: ExtractDensity(lines)},
		{Name: CongestionField, Value: ExtractCongestion(lines)},
	}}
}
