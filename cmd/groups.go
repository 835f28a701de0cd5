package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edakit/pnrlens/core"
	"github.com/edakit/pnrlens/internal/outwriter"
)

// groupsCmd groups violating timing paths by structural pattern.
var groupsCmd = &cobra.Command{
	Use:   "groups <timing-report>",
	Short: "Group violating timing paths by begin-point or end-point pattern",
	Long: `Stream a timing path report, pair each begin/end point with its
slack, and group the violating paths by begin-point (default) or
end-point. Underscore-delimited instance indices are normalized to a
wildcard token so bit-sliced instances merge into one group; disable
with --no-pattern.

Groups are printed by descending occurrence count with min/max slack.

Examples:
  # Group by begin-point with nested endpoints
  pnrlens groups rpts/timing_paths.rpt.gz

  # Endpoint-dominated view
  pnrlens groups --dominated rpts/timing_paths.rpt.gz

  # Raw names, one line per group
  pnrlens groups --begin-only --no-pattern rpts/timing_paths.rpt.gz`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is a report file, not a run directory.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		path := args[0]
		if !reader.Exists(path) {
			return fmt.Errorf("timing report %s does not exist", path)
		}
		cfg.GroupReportPath = path

		report, err := core.GroupTimingPaths(reader, cfg, path)
		if err != nil {
			return err
		}
		return outwriter.WriteGroupReport(report, cfg)
	},
}
