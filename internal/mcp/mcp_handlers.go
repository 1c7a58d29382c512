package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/worklog/core"
	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	factory summarize.Factory
}

// configFor applies the tool arguments on a copy of the base config.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if authors := request.GetStringSlice("authors", nil); len(authors) > 0 {
		cfg.Authors = authors
	}
	if repos := request.GetStringSlice("repo_paths", nil); len(repos) > 0 {
		cfg.RepoPaths = repos
	}
	if branches := request.GetStringSlice("branches", nil); len(branches) > 0 {
		cfg.Branches = branches
	}
	if d := request.GetString("date", ""); d != "" {
		date, err := contract.ParseDateOverride(d)
		if err != nil {
			return nil, err
		}
		cfg.Date = date
	}
	if err := contract.RevalidateTargets(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (h *toolHandler) handleGetWorkDigest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetDigestResults(core.WithSuppressHeader(ctx), cfg, h.client, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("harvest failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSummarizeWork(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.NoSummary = false

	report, err := core.GetDigestReport(core.WithSuppressHeader(ctx), cfg, h.client, h.factory, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return mcp.NewToolResultText(report.Summary), nil
}
