// Package algo orders harvested log lines.
package algo

import (
	"sort"

	"github.com/huangsam/worklog/schema"
)

// Resort returns the lines newest first by their embedded timestamp.
// Lines sharing a timestamp keep ascending text order, so the result does not
// depend on the order of the input.
func Resort(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	sort.Strings(out)
	sort.SliceStable(out, func(i, j int) bool {
		return schema.TimestampKey(out[i]) > schema.TimestampKey(out[j])
	})
	return out
}
