package contract

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger is the process-wide leveled logger. It writes to stderr so stdout stays
// reserved for results and for the MCP stdio protocol.
var Logger = newLogger()

// Level label colors for console output.
var (
	errorLabel = color.New(color.FgRed, color.Bold)
	warnLabel  = color.New(color.FgYellow, color.Bold)
	infoLabel  = color.New(color.FgGreen, color.Bold)
	debugLabel = color.New(color.FgCyan)
	colonLabel = color.New(color.Bold)
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&levelFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// levelFormatter renders entries as "level: message key=value".
type levelFormatter struct{}

// Format implements logrus.Formatter.
func (f *levelFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(levelLabel(entry.Level))
	b.WriteString(colonLabel.Sprint(":"))
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelLabel(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return errorLabel.Sprint("error")
	case logrus.WarnLevel:
		return warnLabel.Sprint("warning")
	case logrus.InfoLevel:
		return infoLabel.Sprint("info")
	default:
		return debugLabel.Sprint("debug")
	}
}

// SetVerbose toggles debug logging.
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetLevel(logrus.InfoLevel)
}

// SetColors enables or disables colored output for logs and tables.
func SetColors(enabled bool) {
	color.NoColor = !enabled
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.Errorf("Fatal %s: %v", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.Warnf("%s: %v", msg, err)
}

// LogInfo logs an informational message to stderr.
func LogInfo(format string, args ...any) {
	Logger.Infof(format, args...)
}

// LogDebug logs a message that is only shown with --verbose.
func LogDebug(format string, args ...any) {
	Logger.Debugf(format, args...)
}
