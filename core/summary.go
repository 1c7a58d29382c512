package core

import (
	"context"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/huangsam/worklog/schema"
)

// Summarize asks s for a summary of prompt. It never fails: any error is logged
// and replaced by schema.FallbackSummary.
func Summarize(ctx context.Context, s summarize.Summarizer, prompt summarize.Prompt) string {
	text, err := s.Summarize(ctx, prompt)
	if err != nil {
		contract.LogWarn("Summary request to "+s.Name()+" failed", err)
		return schema.FallbackSummary
	}
	return text
}

// summarizerOptions maps the validated config onto backend options.
func summarizerOptions(cfg *contract.Config) summarize.Options {
	return summarize.Options{
		Provider:      cfg.Provider,
		Authorization: cfg.Authorization,
		Model:         cfg.Model,
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.Timeout,
	}
}
