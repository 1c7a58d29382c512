package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultDashScopeURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// DashScope implements the Summarizer interface for the DashScope native API.
type DashScope struct {
	authorization string
	model         string
	url           string
	client        *http.Client
}

// NewDashScope creates a DashScope backend. An empty BaseURL selects the public endpoint.
func NewDashScope(opts Options) *DashScope {
	url := strings.TrimSpace(opts.BaseURL)
	if url == "" {
		url = defaultDashScopeURL
	}
	return &DashScope{
		authorization: bearer(opts.Authorization),
		model:         opts.Model,
		url:           url,
		client:        &http.Client{Timeout: opts.Timeout},
	}
}

func (d *DashScope) Name() string { return "dashscope" }

func (d *DashScope) Summarize(ctx context.Context, prompt Prompt) (string, error) {
	body := dashscopeRequest{
		Model: d.model,
		Input: dashscopeInput{Messages: []dashscopeMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		}},
		Parameters: dashscopeParameters{EnableSearch: true},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var text string
	err = retryWithBackoff(ctx, maxRetries, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", d.authorization)

		httpResp, err := d.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer func() { _ = httpResp.Body.Close() }()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if httpResp.StatusCode != http.StatusOK {
			return statusError(httpResp.StatusCode, string(respBody))
		}

		var result dashscopeResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
		if result.Output.Text == "" {
			return fmt.Errorf("empty text in API response")
		}
		text = result.Output.Text
		return nil
	})
	return text, err
}

type dashscopeRequest struct {
	Model      string              `json:"model"`
	Input      dashscopeInput      `json:"input"`
	Parameters dashscopeParameters `json:"parameters"`
}

type dashscopeInput struct {
	Messages []dashscopeMessage `json:"messages"`
}

type dashscopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dashscopeParameters struct {
	EnableSearch bool `json:"enable_search"`
}

type dashscopeResponse struct {
	Output struct {
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"output"`
	Usage struct {
		TotalTokens  int `json:"total_tokens"`
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	RequestID string `json:"request_id"`
}
