// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/edakit/pnrlens/internal/contract"
)

// NewMCPServer initializes and configures the pnrlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, reader contract.ReportReader, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"PnR Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		reader:  reader,
		mgr:     mgr,
	}

	// --- 1. Tool: compare_runs ---
	s.AddTool(mcp.NewTool("compare_runs",
		mcp.WithDescription("Compare PnR metrics (timing, power, density, congestion, DRC, VT distribution) across run directories."),
		mcp.WithString("run_dirs", mcp.Description("Comma-separated list of run directories to compare."), mcp.Required()),
		mcp.WithString("stage", mcp.Description("Flow stage to compare ('all' or one of place, clock, post_clock, route, route_opt). Defaults to 'all'.")),
		mcp.WithString("dialect", mcp.Description("Report dialect (v1 or v2). Defaults to 'v2'."), mcp.Enum("v1", "v2")),
		mcp.WithString("design", mcp.Description("Design name override for report filename patterns.")),
	), h.handleCompareRuns)

	// --- 2. Tool: group_timing_paths ---
	s.AddTool(mcp.NewTool("group_timing_paths",
		mcp.WithDescription("Group violating timing paths in a timing report by begin-point or end-point pattern, with per-group counts and slack ranges."),
		mcp.WithString("report_path", mcp.Description("Path to the timing path report (may be gzip-compressed)."), mcp.Required()),
		mcp.WithString("group_by", mcp.Description("Grouping key: 'begin' (default) or 'end'."), mcp.Enum("begin", "end")),
		mcp.WithBoolean("no_pattern", mcp.Description("Disable wildcard normalization of instance indices.")),
		mcp.WithString("pattern_token", mcp.Description("Replacement token for normalized instance indices.")),
	), h.handleGroupTimingPaths)

	return s
}

// StartMCPServer starts the pnrlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, reader contract.ReportReader, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, reader, mgr)
	return server.ServeStdio(s)
}
