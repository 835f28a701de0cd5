package cmd

import (
	"github.com/spf13/cobra"

	"github.com/edakit/pnrlens/core"
	"github.com/edakit/pnrlens/internal/iocache"
	"github.com/edakit/pnrlens/internal/outwriter"
)

// compareCmd renders cross-run comparison tables.
var compareCmd = &cobra.Command{
	Use:   "compare <run-dir> [run-dir...]",
	Short: "Compare PnR metrics across run directories",
	Long: `Compare timing, power, density, congestion, DRC and VT metrics
across two or more PnR run directories, one table set per flow stage.

Stages enter the comparison only when at least one run carries a
complete log chain up to that stage; a run missing a report still
occupies its column, rendered as dashes, so columns stay aligned
across invocations.

Examples:
  # Compare two runs across all ready stages
  pnrlens compare runs/run_a runs/run_b

  # Only the route stage, with a CSV copy
  pnrlens compare --stage route --csv-file route.csv runs/run_a runs/run_b

  # Legacy report format
  pnrlens compare --dialect v1 runs/old_a runs/old_b`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		result, err := core.ExecuteCompare(reader, cfg, iocache.Manager)
		if err != nil {
			return err
		}
		return outwriter.WriteCompareResult(result, cfg)
	},
}
