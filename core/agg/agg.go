// Package agg harvests commits from repositories into a deduplicated set of log lines.
package agg

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/schema"
)

// Harvest walks every (repository, branch, author) triple of cfg in order and
// collects the accepted commits as log lines.
// The first commit-source error aborts the run; no partial set is returned.
func Harvest(ctx context.Context, cfg *contract.Config, window schema.TimeWindow, client contract.GitClient, loc *time.Location) (LogSet, schema.HarvestStats, error) {
	set := NewLogSet()
	var stats schema.HarvestStats

	for _, repoPath := range cfg.RepoPaths {
		for _, branch := range cfg.Branches {
			for _, author := range cfg.Authors {
				lines, err := harvestTriple(ctx, client, repoPath, branch, author, window, loc, &stats)
				if err != nil {
					return nil, stats, fmt.Errorf("harvest %s@%s for %q: %w", repoPath, branch, author, err)
				}
				set.Union(lines)
				stats.Triples++
			}
		}
	}

	stats.Unique = set.Len()
	return set, stats, nil
}

// harvestTriple collects the lines of a single (repository, branch, author) combination.
func harvestTriple(ctx context.Context, client contract.GitClient, repoPath, branch, author string, window schema.TimeWindow, loc *time.Location, stats *schema.HarvestStats) (LogSet, error) {
	lines := NewLogSet()
	err := client.WalkBranch(ctx, repoPath, branch, func(commit schema.CommitRef) error {
		stats.Visited++
		if !Accept(commit, author, window) {
			return nil
		}
		line, ok := FormatLogLine(commit, loc)
		if !ok {
			stats.Skipped++
			contract.LogDebug("skipping %s in %s: no summary", shortHash(commit.Hash), repoPath)
			return nil
		}
		stats.Accepted++
		lines.Add(line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	contract.LogDebug("%s@%s: %d lines for %s", repoPath, branch, lines.Len(), author)
	return lines, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
