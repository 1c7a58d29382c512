package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/worklog/schema"
)

// AppName is used for the config directory and environment prefix.
const AppName = "worklog"

// ConfigFileName is the file looked up inside the config directory.
const ConfigFileName = "config.yml"

// TimeColor highlights timestamps in table output.
var TimeColor = color.New(color.FgCyan)

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetConfigDir returns the per-user worklog config directory, following the XDG
// layout on Linux and macOS (~/.config/worklog).
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(homeDir, ".config", AppName)
}

// GetConfigFilePath returns the path of the default config file.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// TruncateText truncates text to a maximum width (in runes) with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis leaves room for content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseDateOverride parses "YYYY-MM-DD", "MM-DD" or "DD" into a DateOverride.
// Omitted leading fields stay zero and default to today later on.
func ParseDateOverride(s string) (schema.DateOverride, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return schema.DateOverride{}, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return schema.DateOverride{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return schema.DateOverride{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
		}
		nums[i] = n
	}

	var d schema.DateOverride
	switch len(nums) {
	case 3:
		d.Year, d.Month, d.Day = nums[0], nums[1], nums[2]
	case 2:
		d.Month, d.Day = nums[0], nums[1]
	case 1:
		d.Day = nums[0]
	}
	return d, nil
}
