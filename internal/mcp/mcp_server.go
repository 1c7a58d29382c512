// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the worklog MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, factory summarize.Factory) *server.MCPServer {
	s := server.NewMCPServer(
		"Worklog Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		factory: factory,
	}

	// --- 1. Tool: get_work_digest ---
	s.AddTool(mcp.NewTool("get_work_digest",
		append([]mcp.ToolOption{
			mcp.WithDescription("Collect an author's recent commits across repositories and branches into a deduplicated, newest-first digest."),
		}, targetOptions()...)...,
	), h.handleGetWorkDigest)

	// --- 2. Tool: summarize_work ---
	s.AddTool(mcp.NewTool("summarize_work",
		append([]mcp.ToolOption{
			mcp.WithDescription("Summarize an author's work for a day in one sentence, based on the commit digest."),
		}, targetOptions()...)...,
	), h.handleSummarizeWork)

	return s
}

// targetOptions are the arguments shared by every tool. Omitted ones keep the configured values.
func targetOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithArray("authors", mcp.Description("Author names to include, matched exactly."), mcp.WithStringItems()),
		mcp.WithString("date", mcp.Description("Target date as YYYY-MM-DD, MM-DD or DD. Defaults to today.")),
		mcp.WithArray("repo_paths", mcp.Description("Paths of the Git repositories to scan."), mcp.WithStringItems()),
		mcp.WithArray("branches", mcp.Description("Branches to scan; remote branches such as origin/main are allowed."), mcp.WithStringItems()),
	}
}

// StartMCPServer starts the worklog MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg, contract.NewLocalGitClient(), summarize.New)
	return server.ServeStdio(s)
}
