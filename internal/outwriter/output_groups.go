package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/internal/parquet"
	"github.com/edakit/pnrlens/schema"
)

// WriteGroupReport outputs the timing path groups, dispatching based
// on the output format configured.
func WriteGroupReport(report schema.GroupReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		switch cfg.Output {
		case schema.JSONOut:
			return writeJSON(w, report)
		case schema.CSVOut:
			return writeGroupCSV(w, report)
		case schema.ParquetOut:
			return parquet.WriteGroupReport(w, report)
		default:
			return writeGroupText(w, report)
		}
	}, "Groups written")
}

// writeGroupText renders the group listing. The summary modes print
// one line per group with no nested detail and no separator; the
// detail modes add the paired points in discovery order and a blank
// line between groups.
func writeGroupText(w io.Writer, report schema.GroupReport) error {
	detail := report.Display == schema.GroupDetailBegin || report.Display == schema.GroupDominated

	for _, group := range report.Groups {
		fmt.Fprintf(w, "%s  count=%d  min=%s  max=%s\n",
			group.Key, group.Count, formatSlack(group.MinSlack()), formatSlack(group.MaxSlack()))
		if !detail {
			continue
		}
		for _, sub := range group.SubOrder {
			st := group.Subs[sub]
			fmt.Fprintf(w, "    %s  count=%d  min=%s  max=%s\n",
				sub, st.Count, formatSlack(st.MinSlack()), formatSlack(st.MaxSlack()))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// writeGroupCSV renders one record per group and, in detail modes, one
// record per paired point.
func writeGroupCSV(w io.Writer, report schema.GroupReport) error {
	detail := report.Display == schema.GroupDetailBegin || report.Display == schema.GroupDominated

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"group", "paired", "count", "min_slack", "max_slack"}); err != nil {
		return err
	}
	for _, group := range report.Groups {
		record := []string{group.Key, "", strconv.Itoa(group.Count),
			formatSlack(group.MinSlack()), formatSlack(group.MaxSlack())}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
		if !detail {
			continue
		}
		for _, sub := range group.SubOrder {
			st := group.Subs[sub]
			record := []string{group.Key, sub, strconv.Itoa(st.Count),
				formatSlack(st.MinSlack()), formatSlack(st.MaxSlack())}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatSlack prints a slack value without trailing zeros beyond the
// report's three-decimal precision.
func formatSlack(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
