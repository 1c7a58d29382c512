package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/worklog/internal/contract"
	mcp_internal "github.com/huangsam/worklog/internal/mcp"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/huangsam/worklog/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	text   string
	prompt summarize.Prompt
}

func (s *stubSummarizer) Summarize(_ context.Context, prompt summarize.Prompt) (string, error) {
	s.prompt = prompt
	return s.text, nil
}

func (s *stubSummarizer) Name() string { return "stub" }

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := h(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func today(hour int) int64 {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local).Unix()
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Branches: []string{"main"}}
	s := mcp_internal.NewMCPServer(baseCfg, new(contract.MockGitClient), summarize.New)

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{"digest without repositories", "get_work_digest", map[string]any{"authors": []any{"alice"}}, "no repositories"},
		{"digest without authors", "get_work_digest", map[string]any{"repo_paths": []any{"/repo"}}, "no authors"},
		{"malformed date", "get_work_digest", map[string]any{"repo_paths": []any{"/repo"}, "authors": []any{"alice"}, "date": "yesterday"}, "invalid date"},
		{"impossible date", "summarize_work", map[string]any{"repo_paths": []any{"/repo"}, "authors": []any{"alice"}, "date": "2023-02-30"}, "invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := s.GetTool(tt.tool)
			require.NotNil(t, tool, "Tool %s should exist", tt.tool)

			res := callTool(t, tool.Handler, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.contains)
		})
	}
}

func TestMCPServerHandlers_GetWorkDigest(t *testing.T) {
	client := new(contract.MockGitClient)
	client.On("WalkBranch", mock.Anything, "/repo", "main").Return([]schema.CommitRef{
		{Hash: "a", AuthorName: "alice", Time: today(9), Message: "Fix bug", ParentCount: 1},
		{Hash: "b", AuthorName: "bob", Time: today(10), Message: "Other work", ParentCount: 1},
	}, nil)

	baseCfg := &contract.Config{RepoPaths: []string{"/repo"}, Branches: []string{"main"}, Authors: []string{"bob"}}
	s := mcp_internal.NewMCPServer(baseCfg, client, summarize.New)
	tool := s.GetTool("get_work_digest")
	require.NotNil(t, tool)

	res := callTool(t, tool.Handler, "get_work_digest", map[string]any{"authors": []any{"alice"}})
	require.False(t, res.IsError, resultText(t, res))

	var result schema.DigestResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	require.Len(t, result.Lines, 1)
	assert.Contains(t, result.Lines[0], "Fix bug")
	assert.Equal(t, []string{"bob"}, baseCfg.Authors, "base config must not change")
}

func TestMCPServerHandlers_HarvestError(t *testing.T) {
	client := new(contract.MockGitClient)
	client.On("WalkBranch", mock.Anything, "/repo", "gone").
		Return(nil, &contract.BranchNotFoundError{Path: "/repo", Branch: "gone"})

	baseCfg := &contract.Config{RepoPaths: []string{"/repo"}, Branches: []string{"main"}, Authors: []string{"alice"}}
	s := mcp_internal.NewMCPServer(baseCfg, client, summarize.New)
	tool := s.GetTool("get_work_digest")
	require.NotNil(t, tool)

	res := callTool(t, tool.Handler, "get_work_digest", map[string]any{"branches": []any{"gone"}})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "gone")
}

func TestMCPServerHandlers_SummarizeWork(t *testing.T) {
	client := new(contract.MockGitClient)
	client.On("WalkBranch", mock.Anything, "/repo", "main").Return([]schema.CommitRef{
		{Hash: "a", AuthorName: "alice", Time: today(9), Message: "Fix bug", ParentCount: 1},
	}, nil)

	stub := &stubSummarizer{text: "Fixed a bug."}
	factory := func(summarize.Options) (summarize.Summarizer, error) { return stub, nil }

	baseCfg := &contract.Config{
		RepoPaths: []string{"/repo"}, Branches: []string{"main"}, Authors: []string{"alice"},
		PromptTemplate: "Day {date}", NoSummary: true,
	}
	s := mcp_internal.NewMCPServer(baseCfg, client, factory)
	tool := s.GetTool("summarize_work")
	require.NotNil(t, tool)

	res := callTool(t, tool.Handler, "summarize_work", nil)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, "Fixed a bug.", resultText(t, res))
	assert.Contains(t, stub.prompt.User, "Fix bug")
	assert.NotContains(t, stub.prompt.System, "{date}")
}

func TestMCPServerHandlers_SummarizeWorkNoCommits(t *testing.T) {
	client := new(contract.MockGitClient)
	client.On("WalkBranch", mock.Anything, "/repo", "main").Return([]schema.CommitRef{}, nil)

	called := false
	factory := func(summarize.Options) (summarize.Summarizer, error) {
		called = true
		return &stubSummarizer{}, nil
	}
	baseCfg := &contract.Config{RepoPaths: []string{"/repo"}, Branches: []string{"main"}, Authors: []string{"alice"}}
	s := mcp_internal.NewMCPServer(baseCfg, client, factory)
	tool := s.GetTool("summarize_work")
	require.NotNil(t, tool)

	res := callTool(t, tool.Handler, "summarize_work", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, schema.NoCommitsMessage, resultText(t, res))
	assert.False(t, called)
}
