// Package core has core logic for harvesting, ordering and summarizing work logs.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/worklog/core/agg"
	"github.com/huangsam/worklog/core/algo"
	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/internal/outwriter"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/huangsam/worklog/schema"
)

// GetDigestResults harvests the configured targets and returns the ordered digest
// for the target date relative to now.
func GetDigestResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, now time.Time) (*schema.DigestResult, error) {
	loc := now.Location()
	window, err := schema.NewTimeWindow(cfg.Date, now, loc)
	if err != nil {
		return nil, err
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogDigestHeader(cfg, window)
	}

	set, stats, err := agg.Harvest(ctx, cfg, window, client, loc)
	if err != nil {
		return nil, err
	}

	return &schema.DigestResult{
		DateHint: DateHint(cfg.Date, now.In(loc)),
		Since:    window.Since,
		Until:    window.Until,
		Lines:    algo.Resort(set.Lines()),
		Stats:    stats,
	}, nil
}

// GetDigestReport builds the digest and, unless disabled, its summary.
// An empty digest never reaches the summarizer and is reported as schema.NoCommitsMessage.
func GetDigestReport(ctx context.Context, cfg *contract.Config, client contract.GitClient, factory summarize.Factory, now time.Time) (*schema.DigestReport, error) {
	result, err := GetDigestResults(ctx, cfg, client, now)
	if err != nil {
		return nil, err
	}

	report := &schema.DigestReport{DigestResult: *result}
	switch {
	case result.IsEmpty():
		report.Summary = schema.NoCommitsMessage
	case cfg.NoSummary:
		// Digest only
	default:
		s, err := factory(summarizerOptions(cfg))
		if err != nil {
			return report, fmt.Errorf("cannot create %s summarizer: %w", cfg.Provider, err)
		}
		prompt := BuildPrompt(cfg.PromptTemplate, result.DateHint, result.Lines)
		report.Summary = Summarize(ctx, s, prompt)
	}
	return report, nil
}

// ExecuteDigest runs the pipeline for cfg and prints the report.
// It serves as the main entry point for the root command.
func ExecuteDigest(ctx context.Context, cfg *contract.Config, client contract.GitClient, factory summarize.Factory) error {
	start := time.Now()
	report, err := GetDigestReport(ctx, cfg, client, factory, start)
	if report == nil {
		return err
	}
	// A summarizer setup failure still prints the digest before reporting the error.
	if writeErr := outwriter.NewOutWriter().WriteReport(report, cfg, time.Since(start)); writeErr != nil {
		return writeErr
	}
	return err
}
