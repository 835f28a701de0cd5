package core

import (
	"fmt"
	"path/filepath"

	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// ErrInvalidStage is returned when an explicit stage name is not part
// of the selected catalog.
type ErrInvalidStage struct {
	Stage   string
	Dialect schema.ReportDialect
}

func (e *ErrInvalidStage) Error() string {
	return fmt.Sprintf("invalid stage '%s' for dialect %s", e.Stage, e.Dialect)
}

// StageLogPath returns the log file that evidences a stage completion
// inside one run directory.
func StageLogPath(runDir string, stage schema.StageDefinition) string {
	return filepath.Join(runDir, stage.Subdir, "logs", stage.LogStem+".log.gz")
}

// StageReportDir returns the report directory for one stage inside one
// run directory.
func StageReportDir(runDir string, stage schema.StageDefinition) string {
	return filepath.Join(runDir, stage.Subdir, "rpts")
}

// ResolveStages determines which stages have readiness evidence and
// returns them in catalog order, together with per-stage readiness
// counts. Mode "all" keeps every stage at least one run is ready for;
// an explicit stage keeps only that stage, whatever its readiness.
func ResolveStages(reader contract.ReportReader, cfg *contract.Config) ([]schema.StageDefinition, []schema.StageReadiness, error) {
	catalog := schema.StageCatalog(cfg.Dialect)
	readiness := make([]schema.StageReadiness, len(catalog))
	for i, stage := range catalog {
		readiness[i] = schema.StageReadiness{Stage: stage.Name}
	}

	for _, runDir := range cfg.RunDirs {
		depth := readyDepth(reader, runDir, catalog, cfg.Dialect)
		for i := 0; i < depth; i++ {
			readiness[i].Ready++
		}
	}

	if cfg.Stage != schema.StageAll {
		for i, stage := range catalog {
			if string(stage.Name) == cfg.Stage {
				return []schema.StageDefinition{stage}, readiness[i : i+1], nil
			}
		}
		return nil, nil, &ErrInvalidStage{Stage: cfg.Stage, Dialect: cfg.Dialect}
	}

	var selected []schema.StageDefinition
	var selectedReadiness []schema.StageReadiness
	for i, stage := range catalog {
		if readiness[i].Ready >= 1 {
			selected = append(selected, stage)
			selectedReadiness = append(selectedReadiness, readiness[i])
		}
	}
	return selected, selectedReadiness, nil
}

// readyDepth returns how many stages of the catalog chain one run has
// completed. The chain is strict: a missing or mis-ordered
// intermediate stage stops the count even when later logs exist, so
// stale artifacts past a rerun boundary never count as ready.
func readyDepth(reader contract.ReportReader, runDir string, catalog []schema.StageDefinition, dialect schema.ReportDialect) int {
	for i, stage := range catalog {
		logPath := StageLogPath(runDir, stage)
		if !reader.Exists(logPath) {
			return i
		}
		if dialect == schema.DialectV1 || i == 0 {
			continue
		}
		// V2 readiness additionally requires causal log ordering:
		// the prior stage's log must predate this stage's log.
		prev, err := reader.ModTime(StageLogPath(runDir, catalog[i-1]))
		if err != nil {
			return i
		}
		cur, err := reader.ModTime(logPath)
		if err != nil {
			return i
		}
		if !prev.Before(cur) {
			return i
		}
	}
	return len(catalog)
}
