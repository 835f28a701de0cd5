package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/internal/parquet"
	"github.com/edakit/pnrlens/schema"
)

// WriteCompareResult outputs the comparison, dispatching based on the
// output format configured. In text mode an additional CSV copy is
// written when --csv-file is set.
func WriteCompareResult(result *schema.CompareResult, cfg *contract.Config) error {
	err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		switch cfg.Output {
		case schema.JSONOut:
			return writeJSON(w, result)
		case schema.CSVOut:
			return writeCompareCSV(w, result)
		case schema.ParquetOut:
			return parquet.WriteCompareResult(w, result)
		default:
			return writeCompareText(w, result, cfg)
		}
	}, "Comparison written")
	if err != nil {
		return err
	}

	if cfg.CSVFile != "" && cfg.Output == schema.TextOut {
		return writeWithFile(cfg.CSVFile, func(w io.Writer) error {
			return writeCompareCSV(w, result)
		}, "CSV copy written")
	}
	return nil
}

// writeCompareText renders the bordered console tables: a readiness
// summary, then one table per metric family per stage.
func writeCompareText(w io.Writer, result *schema.CompareResult, cfg *contract.Config) error {
	width := GetColumnWidth(cfg, len(result.RunDirs))

	if result.Design != "" {
		fmt.Fprintf(w, "Design: %s (dialect %s)\n", result.Design, result.Dialect)
	} else {
		fmt.Fprintf(w, "Design: <unresolved> (dialect %s)\n", result.Dialect)
	}
	for _, r := range result.Readiness {
		fmt.Fprintf(w, "  %-12s %d/%d runs ready\n", r.Stage, r.Ready, len(result.RunDirs))
	}
	fmt.Fprintln(w)

	for _, stage := range result.Stages {
		for _, table := range stage.Tables {
			if err := writeTextTable(w, table, cfg, width); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

// writeTextTable renders one comparison table with truncated cells.
func writeTextTable(w io.Writer, ct schema.ComparisonTable, cfg *contract.Config, width int) error {
	fmt.Fprintf(w, "%s [%s]\n", ct.Title, ct.Stage)

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	headers := make([]string, 0, len(ct.Columns)+1)
	headers = append(headers, "Metric")
	for _, col := range ct.Columns {
		headers = append(headers, contract.TruncateCell(col, width, schema.TruncateMarker))
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range ct.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, contract.TruncateCell(row.Name, width, schema.TruncateMarker))
		for _, cell := range row.Cells {
			cell = contract.TruncateCell(cell, width, schema.TruncateMarker)
			if cfg.UseColors {
				cell = contract.ColorizeCell(cell)
			}
			cells = append(cells, cell)
		}
		data = append(data, cells)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCompareCSV renders the CSV record stream: per-table header
// rows, one row per line, and a blank line between stage blocks. Cells
// are never truncated in CSV output.
func writeCompareCSV(w io.Writer, result *schema.CompareResult) error {
	csvWriter := csv.NewWriter(w)
	for i, stage := range result.Stages {
		if i > 0 {
			// Blank line between stage blocks.
			csvWriter.Flush()
			if err := csvWriter.Error(); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, table := range stage.Tables {
			header := append([]string{fmt.Sprintf("%s [%s]", table.Title, table.Stage)}, table.Columns...)
			if err := csvWriter.Write(header); err != nil {
				return err
			}
			for _, row := range table.Rows {
				record := append([]string{row.Name}, row.Cells...)
				if err := csvWriter.Write(record); err != nil {
					return err
				}
			}
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
