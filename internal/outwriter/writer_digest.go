package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeReportText writes every line verbatim followed by the summary.
func writeReportText(w io.Writer, report *schema.DigestReport) error {
	for _, line := range report.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if report.Summary != "" {
		if _, err := fmt.Fprintln(w, report.Summary); err != nil {
			return err
		}
	}
	return nil
}

// writeReportCSV writes one row per line with the timestamp split out.
func writeReportCSV(w io.Writer, report *schema.DigestReport) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{"timestamp", "summary", "line"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, line := range report.Lines {
		row := []string{schema.TimestampKey(line), schema.LogLineSummary(line), line}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(w io.Writer, report *schema.DigestReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Time", "Summary"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := GetMaxTableSummaryWidth(cfg)
	data := make([][]string, 0, len(report.Lines))
	for i, line := range report.Lines {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TimeColor.Sprint(schema.TimestampKey(line)),
			contract.TruncateText(schema.LogLineSummary(line), maxWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	stats := report.Stats
	if _, err := fmt.Fprintf(w, "Showing %d lines (visited %d commits across %d targets)\n", len(report.Lines), stats.Visited, stats.Triples); err != nil {
		return err
	}
	if report.Summary != "" {
		if _, err := fmt.Fprintf(w, "Summary: %s\n", report.Summary); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Digest built in %v for %s\n", duration.Round(time.Millisecond), report.DateHint); err != nil {
		return err
	}
	return nil
}
