// Package contract provides interfaces and shared utilities for worklog's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/worklog/schema"
)

// CommitFunc receives each commit produced by a traversal. Returning an error stops
// the traversal and the error is passed back to the caller.
type CommitFunc func(commit schema.CommitRef) error

// GitClient defines the read-only repository operations the harvesting pipeline needs.
// This allows the aggregation logic to be tested without real repositories.
type GitClient interface {
	// WalkBranch opens the repository at repoPath, resolves branch (local first, then
	// remote) and calls fn for every commit reachable from its tip, newest first.
	//
	// It returns a *RepositoryOpenError when repoPath is not a repository and a
	// *BranchNotFoundError when the branch cannot be resolved.
	WalkBranch(ctx context.Context, repoPath string, branch string, fn CommitFunc) error
}
