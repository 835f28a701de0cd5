// Package main provides a performance benchmarking tool for the pnrlens CLI.
// It generates synthetic run directories of different sizes, times the compare
// command with the extract cache disabled and enabled, treating the first
// cached run as cold and averaging the rest as warm, and writes CSV output
// for performance analysis.
//
// Prerequisites:
// - pnrlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic run trees and the cache DB are created
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// BenchmarkResult holds the result of one benchmark case.
type BenchmarkResult struct {
	Case        string
	Runs        int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// benchCase is one synthetic workload: a number of run directories to
// compare against each other.
type benchCase struct {
	name    string
	runDirs int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	if _, err := exec.LookPath("pnrlens"); err != nil {
		fmt.Println("pnrlens binary not found in PATH")
		os.Exit(1)
	}

	cases := []benchCase{
		{name: "small", runDirs: 2},
		{name: "medium", runDirs: 5},
		{name: "large", runDirs: 10},
	}

	var results []BenchmarkResult
	for _, bc := range cases {
		result, err := runCase(workDir, bc)
		if err != nil {
			fmt.Printf("Case %s failed: %v\n", bc.name, err)
			os.Exit(1)
		}
		results = append(results, result)
		fmt.Printf("%-8s runs=%-3d no-cache=%s cold=%s warm=%s\n",
			result.Case, result.Runs, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}

	if err := writeResults(results); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

// runCase seeds the run directories and times the compare invocations.
func runCase(workDir string, bc benchCase) (BenchmarkResult, error) {
	caseDir := filepath.Join(workDir, "bench_"+bc.name)
	if err := os.RemoveAll(caseDir); err != nil {
		return BenchmarkResult{}, err
	}

	args := []string{"compare"}
	for i := 0; i < bc.runDirs; i++ {
		runDir := filepath.Join(caseDir, fmt.Sprintf("run_%02d", i))
		if err := seedRunDir(runDir); err != nil {
			return BenchmarkResult{}, err
		}
		args = append(args, runDir)
	}
	args = append(args, "--design", "benchdesign", "--output", "csv", "--output-file", filepath.Join(caseDir, "out.csv"))

	noCache, err := timeCommand(args)
	if err != nil {
		return BenchmarkResult{}, err
	}

	cacheDB := filepath.Join(caseDir, "cache.db")
	cachedArgs := append(args, "--cache-backend", "sqlite", "--cache-db-connect", cacheDB)

	cold, err := timeCommand(cachedArgs)
	if err != nil {
		return BenchmarkResult{}, err
	}

	const warmRuns = 3
	var warmTotal time.Duration
	for i := 0; i < warmRuns; i++ {
		d, err := timeCommand(cachedArgs)
		if err != nil {
			return BenchmarkResult{}, err
		}
		warmTotal += d
	}

	return BenchmarkResult{
		Case:        bc.name,
		Runs:        bc.runDirs,
		NoCacheTime: noCache.String(),
		ColdTime:    cold.String(),
		WarmTime:    (warmTotal / warmRuns).String(),
	}, nil
}

// timeCommand runs pnrlens with args and returns the wall time.
func timeCommand(args []string) (time.Duration, error) {
	start := time.Now()
	cmd := exec.Command("pnrlens", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("pnrlens %v: %w\n%s", args, err, output)
	}
	return time.Since(start), nil
}

// seedRunDir writes a run directory with a complete place stage.
func seedRunDir(runDir string) error {
	files := map[string]string{
		"place/logs/place.log.gz": "place finished\n",
		"place/rpts/av_gate_count.rpt.gz": "  benchdesign:\n" +
			"   SVT    40.1 : 12.5\n" +
			"   SVT8   42.5 : 10.2\n" +
			"   LVT    10.0 : 3.1\n" +
			"   ULVT    7.4 : 2.2\n" +
			"   Instances  : 120345\n" +
			"   Flops      : 20456\n" +
			"   Gates      : 99889\n",
		"place/rpts/Power_beforeOpt.rpt.gz": "Total Power: 245.678\n",
		"place/rpts/invs_drc_summary.gz":    "Metal Short count: 3\nTotal count: 5\n",
	}
	for rel, content := range files {
		path := filepath.Join(runDir, rel)
		if err := writeGzip(path, content); err != nil {
			return err
		}
	}
	return nil
}

func writeGzip(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		_ = f.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeResults dumps the benchmark table as CSV to stdout.
func writeResults(results []BenchmarkResult) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"case", "runs", "no_cache", "cold", "warm"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{r.Case, fmt.Sprintf("%d", r.Runs), r.NoCacheTime, r.ColdTime, r.WarmTime}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
