package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/edakit/pnrlens/core"
	"github.com/edakit/pnrlens/internal/contract"
	"github.com/edakit/pnrlens/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	reader  contract.ReportReader
	mgr     contract.StoreManager
}

func (h *toolHandler) handleCompareRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	var runDirs []string
	for _, dir := range strings.Split(request.GetString("run_dirs", ""), ",") {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return mcp.NewToolResultError(fmt.Sprintf("run directory %s does not exist", dir)), nil
		}
		runDirs = append(runDirs, dir)
	}
	if len(runDirs) == 0 {
		return mcp.NewToolResultError("run_dirs must name at least one existing directory"), nil
	}
	cfg.RunDirs = runDirs

	if s := request.GetString("stage", ""); s != "" {
		cfg.Stage = s
	}
	if d := request.GetString("dialect", ""); d != "" {
		cfg.Dialect = schema.ReportDialect(d)
	}
	if name := request.GetString("design", ""); name != "" {
		cfg.Design = name
	}

	result, err := core.ExecuteCompare(h.reader, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGroupTimingPaths(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	path := request.GetString("report_path", "")
	if path == "" {
		return mcp.NewToolResultError("report_path is required"), nil
	}
	if !h.reader.Exists(path) {
		return mcp.NewToolResultError(fmt.Sprintf("timing report %s does not exist", path)), nil
	}

	cfg.GroupDisplay = schema.GroupDetailBegin
	if request.GetString("group_by", "begin") == "end" {
		cfg.GroupDisplay = schema.GroupDominated
	}
	cfg.Pattern = !request.GetBool("no_pattern", false)
	if tok := request.GetString("pattern_token", ""); tok != "" {
		cfg.PatternToken = tok
	}
	if cfg.PatternToken == "" {
		cfg.PatternToken = schema.DefaultPatternToken
	}
	if err := contract.ValidatePatternToken(cfg.PatternToken); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := core.GroupTimingPaths(h.reader, cfg, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grouping failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
