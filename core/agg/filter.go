package agg

import (
	"unicode/utf8"

	"github.com/huangsam/worklog/schema"
)

// mergeParentCount is the parent count of an ordinary two-way merge.
// Octopus merges (3+ parents) and root commits are kept.
const mergeParentCount = 2

// Accept reports whether commit belongs in the digest for author within window.
// The window bounds are exclusive and the author must match exactly.
func Accept(commit schema.CommitRef, author string, window schema.TimeWindow) bool {
	if !window.Contains(commit.Time) {
		return false
	}
	if commit.AuthorName == "" || !utf8.ValidString(commit.AuthorName) {
		return false
	}
	if commit.AuthorName != author {
		return false
	}
	return commit.ParentCount != mergeParentCount
}
