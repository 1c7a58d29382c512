package summarize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements the Summarizer interface for OpenAI-compatible chat endpoints.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-compatible backend. BaseURL selects a self-hosted
// or third-party endpoint such as "http://localhost:11434/v1".
func NewOpenAI(opts Options) *OpenAI {
	config := openai.DefaultConfig(apiKey(opts.Authorization))
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		config.BaseURL = baseURL
	}
	if opts.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  opts.Model,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Summarize(ctx context.Context, prompt Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	}

	var text string
	err := retryWithBackoff(ctx, maxRetries, func() error {
		resp, err := o.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		if resp.Choices[0].Message.Content == "" {
			return fmt.Errorf("empty text content in API response")
		}
		text = resp.Choices[0].Message.Content
		return nil
	})
	return text, err
}

// classifyOpenAIError maps go-openai HTTP failures onto the retry error types.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return statusError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return statusError(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return err
}
