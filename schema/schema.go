// Package schema has models and constants shared by all parts of worklog.
package schema

import "time"

// CommitRef is a read-only view of a single commit as produced by the repository backend.
type CommitRef struct {
	Hash        string // Full commit hash
	AuthorName  string // Author name exactly as recorded in the commit
	Time        int64  // Committer time in unix seconds
	Message     string // Raw commit message, possibly multi-line
	ParentCount int    // Number of parent commits
}

// DateOverride is an optional (year, month, day) target date. Zero fields are "not given"
// and default to the matching field of the current local date.
type DateOverride struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// IsZero reports whether no field of the override was given.
func (d DateOverride) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Resolve fills missing fields from now.
func (d DateOverride) Resolve(now time.Time) (year int, month time.Month, day int) {
	year, month, day = now.Date()
	if d.Year != 0 {
		year = d.Year
	}
	if d.Month != 0 {
		month = time.Month(d.Month)
	}
	if d.Day != 0 {
		day = d.Day
	}
	return year, month, day
}

// HarvestStats counts what the aggregator saw while building a LogSet.
type HarvestStats struct {
	Triples  int `json:"triples"`  // (repository, branch, author) combinations scanned
	Visited  int `json:"visited"`  // Commits traversed across all triples
	Accepted int `json:"accepted"` // Commits that passed the filter and produced a line
	Skipped  int `json:"skipped"`  // Accepted commits without an extractable summary
	Unique   int `json:"unique"`   // Lines left after deduplication
}

// DigestResult is the outcome of one harvesting run.
type DigestResult struct {
	DateHint string       `json:"date"`
	Since    time.Time    `json:"since"`
	Until    time.Time    `json:"until"`
	Lines    []string     `json:"lines"`
	Stats    HarvestStats `json:"stats"`
}

// IsEmpty reports whether no commit satisfied the filter.
func (r *DigestResult) IsEmpty() bool {
	return r == nil || len(r.Lines) == 0
}

// DigestReport is a DigestResult together with the summary produced for it.
// Summary is empty when summarization was disabled.
type DigestReport struct {
	DigestResult
	Summary string `json:"summary,omitempty"`
}
