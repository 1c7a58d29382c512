package agg

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/huangsam/worklog/schema"
)

// Summary returns the first paragraph of a commit message with its lines joined
// by single spaces. Leading blank lines are skipped.
// The boolean is false for messages that are not valid UTF-8 or have no summary.
func Summary(message string) (string, bool) {
	if !utf8.ValidString(message) {
		return "", false
	}

	var parts []string
	for line := range strings.Lines(message) {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, line)
	}

	summary := strings.Join(parts, " ")
	return summary, summary != ""
}

// FormatLogLine renders commit as "[YYYY-MM-DD HH:MM] summary" in loc.
func FormatLogLine(commit schema.CommitRef, loc *time.Location) (string, bool) {
	summary, ok := Summary(commit.Message)
	if !ok {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}
	stamp := time.Unix(commit.Time, 0).In(loc).Format(schema.LogLineTimeLayout)
	return "[" + stamp + "] " + summary, true
}
