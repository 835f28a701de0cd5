package core

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/internal/reportfs"
	"github.com/edakit/pnrlens/schema"
)

// RunReports holds the resolved report paths for one run directory at
// one stage. A missing artifact resolves to the empty string; the run
// still occupies its comparison column.
type RunReports struct {
	RunDir string
	Paths  map[schema.ReportKind]string
}

// Path returns the resolved path for a report kind, or "" when missing.
func (r *RunReports) Path(kind schema.ReportKind) string {
	return r.Paths[kind]
}

// LocateReports resolves the report files of interest for one stage
// across all configured runs, in run input order. Pattern lookups take
// the lexicographically last match as a proxy for most-recent, which
// holds for the zero-padded names the flow emits.
//
// When the primary timing summary is absent and --compress-alt-timing
// is set, an uncompressed alternative timing summary is gzipped in
// place before use; the returned cleanup paths must be restored with
// RestoreAltTiming once the stage's tables are out.
func LocateReports(reader contract.ReportReader, cfg *contract.Config, stage schema.StageDefinition) ([]RunReports, []string) {
	var compressed []string
	results := make([]RunReports, 0, len(cfg.RunDirs))

	for _, runDir := range cfg.RunDirs {
		rr := RunReports{RunDir: runDir, Paths: make(map[schema.ReportKind]string)}
		rptDir := StageReportDir(runDir, stage)
		if reader.Exists(rptDir) {
			rr.Paths[schema.VTReport] = existingPath(reader, filepath.Join(rptDir, "av_gate_count.rpt.gz"))
			rr.Paths[schema.PowerPreOptReport] = existingPath(reader, filepath.Join(rptDir, "Power_beforeOpt.rpt.gz"))
			rr.Paths[schema.PowerGlobalReport] = lastGlobMatch(filepath.Join(rptDir, cfg.Design+"*global.power.rpt.gz"))
			rr.Paths[schema.DRCReport] = existingPath(reader, filepath.Join(rptDir, "invs_drc_summary.gz"))
			rr.Paths[schema.TimingSummary] = locateTimingSummary(rptDir, cfg.Design)
			if rr.Paths[schema.TimingSummary] == "" {
				alt, didCompress := locateAltTimingSummary(rptDir, cfg.CompressAltTiming)
				rr.Paths[schema.AltTimingSummary] = alt
				if didCompress {
					compressed = append(compressed, alt)
				}
			}
		}
		results = append(results, rr)
	}
	return results, compressed
}

// RestoreAltTiming undoes the in-place compression of alternative
// timing summaries after a stage's tables are emitted. Failures are
// reported as warnings; the file stays compressed until a later
// invocation restores it.
func RestoreAltTiming(compressed []string) {
	for _, gzPath := range compressed {
		if _, err := reportfs.DecompressInPlace(gzPath); err != nil {
			contract.LogWarn("restoring alternative timing summary", err)
		}
	}
}

// locateTimingSummary finds the newest timing_0* directory and, inside
// it, the newest <design>*.summary.gz, excluding hold summaries so the
// setup-mode file wins when both exist.
func locateTimingSummary(rptDir, design string) string {
	timingDir := lastGlobMatch(filepath.Join(rptDir, "timing_0*"))
	if timingDir == "" {
		return ""
	}
	matches, err := filepath.Glob(filepath.Join(timingDir, design+"*.summary.gz"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	filtered := matches[:0]
	for _, m := range matches {
		if !strings.Contains(filepath.Base(m), "hold.summary") {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	sort.Strings(filtered)
	return filtered[len(filtered)-1]
}

// locateAltTimingSummary finds the newest invs_timing_summary* file.
// An uncompressed candidate is only usable after in-place compression,
// which the caller opts into; without the opt-in an uncompressed
// candidate resolves to missing.
func locateAltTimingSummary(rptDir string, compress bool) (string, bool) {
	path := lastGlobMatch(filepath.Join(rptDir, "invs_timing_summary*"))
	if path == "" {
		return "", false
	}
	if strings.HasSuffix(path, ".gz") {
		return path, false
	}
	if !compress {
		return "", false
	}
	gzPath, err := reportfs.CompressInPlace(path)
	if err != nil {
		contract.LogWarn("compressing alternative timing summary", err)
		return "", false
	}
	return gzPath, true
}

func existingPath(reader contract.ReportReader, path string) string {
	if reader.Exists(path) {
		return path
	}
	return ""
}

// lastGlobMatch returns the lexicographically last match for pattern,
// or "" when nothing matches.
func lastGlobMatch(pattern string) string {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}
