package schema

// LogLine layout: "[YYYY-MM-DD HH:MM] summary".
const (
	LogLineTimeLayout = "2006-01-02 15:04"
	timestampStart    = 1
	timestampEnd      = timestampStart + len(LogLineTimeLayout)
)

// TimestampKey returns the fixed-width timestamp portion of a log line.
// Comparing keys as strings orders lines chronologically because the layout is
// zero-padded and most-significant field first.
func TimestampKey(line string) string {
	if len(line) < timestampEnd {
		return line
	}
	return line[timestampStart:timestampEnd]
}

// LogLineSummary returns the text after the timestamp prefix of a log line.
func LogLineSummary(line string) string {
	if len(line) < timestampEnd+2 {
		return ""
	}
	return line[timestampEnd+2:]
}
