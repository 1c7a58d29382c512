// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the digest and its summary using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.DigestReport, cfg *contract.Config, duration time.Duration) error {
	return PrintReport(report, cfg, duration)
}

// PrintReport dispatches on cfg.Output and writes to cfg.OutputFile or stdout.
func PrintReport(report *schema.DigestReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		// CSV holds lines only; the summary goes next to the progress output.
		if report.Summary != "" {
			fmt.Fprintf(os.Stderr, "📝 %s\n", report.Summary)
		}
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg, duration)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report)
		}, "Wrote digest")
	}
	return nil
}

// LogDigestHeader prints the run targets and the time window to stderr.
func LogDigestHeader(cfg *contract.Config, window schema.TimeWindow) {
	fmt.Fprintf(os.Stderr, "🔎 Repos: %s (Branches: %s)\n", strings.Join(cfg.RepoPaths, ", "), strings.Join(cfg.Branches, ", "))
	fmt.Fprintf(os.Stderr, "👤 Authors: %s\n", strings.Join(cfg.Authors, ", "))
	fmt.Fprintf(os.Stderr, "📅 Range: %s → %s\n", window.Since.Format(time.DateTime), window.Until.Format(time.DateTime))
}

// GetMaxTableSummaryWidth calculates the maximum width for commit summaries in
// table output based on terminal width.
func GetMaxTableSummaryWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Index and time columns plus borders, separators and padding
	baseWidth := 6 + 18 + 12

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 120 {
		return 120
	}
	return available
}
