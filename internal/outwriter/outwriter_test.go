package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.DigestReport {
	return &schema.DigestReport{
		DigestResult: schema.DigestResult{
			DateHint: "2024-3-15",
			Lines: []string{
				"[2024-03-15 10:00] Add retry, with backoff",
				"[2024-03-14 09:00] Fix bug",
			},
			Stats: schema.HarvestStats{Triples: 2, Visited: 10, Accepted: 3, Unique: 2},
		},
		Summary: "Improved upload reliability.",
	}
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportText(&buf, sampleReport()))
	assert.Equal(t,
		"[2024-03-15 10:00] Add retry, with backoff\n"+
			"[2024-03-14 09:00] Fix bug\n"+
			"Improved upload reliability.\n",
		buf.String())

	buf.Reset()
	report := sampleReport()
	report.Summary = ""
	require.NoError(t, writeReportText(&buf, report))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"timestamp", "summary", "line"}, records[0])
	assert.Equal(t, []string{"2024-03-15 10:00", "Add retry, with backoff", "[2024-03-15 10:00] Add retry, with backoff"}, records[1])
	assert.Equal(t, "Fix bug", records[2][1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2024-3-15", decoded["date"])
	assert.Equal(t, "Improved upload reliability.", decoded["summary"])
	assert.Len(t, decoded["lines"], 2)
	stats, ok := decoded["stats"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 10, stats["visited"], 0)
	assert.Contains(t, buf.String(), "\n  \"date\"")
}

func TestWriteReportTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	cfg := &contract.Config{Width: 60}
	require.NoError(t, writeReportTable(&buf, sampleReport(), cfg, 1500*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "TIME")
	assert.Contains(t, out, "2024-03-15 10:00")
	assert.Contains(t, out, "Fix bug")
	assert.Contains(t, out, "Showing 2 lines (visited 10 commits across 2 targets)")
	assert.Contains(t, out, "Summary: Improved upload reliability.")
	assert.Contains(t, out, "Digest built in 1.5s for 2024-3-15")
}

func TestGetMaxTableSummaryWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 40, expected: 20},
		{width: 100, expected: 64},
		{width: 400, expected: 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxTableSummaryWidth(&contract.Config{Width: tt.width}))
	}
}

func TestPrintReport_ToFile(t *testing.T) {
	tests := []struct {
		output schema.OutputMode
		check  func(t *testing.T, data string)
	}{
		{schema.TextOut, func(t *testing.T, data string) {
			assert.True(t, strings.HasPrefix(data, "[2024-03-15 10:00]"))
		}},
		{schema.JSONOut, func(t *testing.T, data string) {
			assert.True(t, json.Valid([]byte(data)))
		}},
		{schema.CSVOut, func(t *testing.T, data string) {
			assert.True(t, strings.HasPrefix(data, "timestamp,summary,line\n"))
		}},
		{schema.TableOut, func(t *testing.T, data string) {
			assert.Contains(t, data, "SUMMARY")
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report")
			cfg := &contract.Config{Output: tt.output, OutputFile: path, Width: 100}
			require.NoError(t, NewOutWriter().WriteReport(sampleReport(), cfg, time.Second))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.check(t, string(data))
		})
	}
}

func TestPrintReport_BadOutputFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, OutputFile: filepath.Join(t.TempDir(), "missing", "out.txt")}
	assert.Error(t, PrintReport(sampleReport(), cfg, time.Second))
}
