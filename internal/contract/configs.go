package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/worklog/schema"
)

// Default values for configuration.
const (
	DefaultBranch         = "master"
	DefaultDashScopeModel = "qwen-plus"
	DefaultOpenAIModel    = "gpt-4o-mini"
)

// DefaultPromptTemplate is the system prompt used when none is configured.
// The {date} placeholder is replaced by the target date hint.
const DefaultPromptTemplate = "You write daily work log entries from git commit history. " +
	"Focus on the commits made on {date}; leave out earlier commits unless they relate to that day's work. " +
	"Infer what changed and its scope from the touched classes and modules. " +
	"If there are no commits on {date}, continue the earlier work in the same style. " +
	"Answer with one sentence of 25 to 30 words that describes the work only and does not mention the date."

// Config holds the runtime configuration for a run.
// This struct is the "final, validated" config and is passed explicitly to the pipeline.
type Config struct {
	RepoPaths []string
	Branches  []string
	Authors   []string
	Date      schema.DateOverride

	Authorization  string // Please use env var as this is plaintext
	Provider       schema.ProviderName
	Model          string
	BaseURL        string
	Timeout        time.Duration // Zero means no timeout
	PromptTemplate string
	NoSummary      bool

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Verbose    bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually by commands, so no tag
	AuthorArgs        []string
	AllowEmptyTargets bool // Targets may be supplied later, e.g. per MCP tool call

	// --- Targets ---
	RepoPaths []string `mapstructure:"repo-path"`
	Branches  []string `mapstructure:"branches"`
	Authors   []string `mapstructure:"authors"`

	// --- Target date ---
	Year  int `mapstructure:"year"`
	Month int `mapstructure:"month"`
	Day   int `mapstructure:"day"`

	// --- Summarizer ---
	Authorization string `mapstructure:"authorization"`
	Provider      string `mapstructure:"provider"`
	Model         string `mapstructure:"model"`
	BaseURL       string `mapstructure:"base-url"`
	Timeout       string `mapstructure:"timeout"`
	Prompt        string `mapstructure:"prompt"`
	NoSummary     bool   `mapstructure:"no-summary"`

	// --- Output ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Verbose    bool   `mapstructure:"verbose"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.RepoPaths = append([]string(nil), c.RepoPaths...)
	clone.Branches = append([]string(nil), c.Branches...)
	clone.Authors = append([]string(nil), c.Authors...)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTargets(cfg, input); err != nil {
		return err
	}
	if err := processDate(cfg, input); err != nil {
		return err
	}
	if err := processSummarizer(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.NoSummary = input.NoSummary

	colors := true
	if input.Color != "" {
		parsed, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		colors = parsed
	}
	cfg.UseColors = colors

	cfg.Output = schema.TextOut
	if input.Output != "" {
		cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, table", input.Output)
	}

	if cfg.Width < 0 {
		return fmt.Errorf("width must not be negative (received %d)", cfg.Width)
	}
	return nil
}

// processTargets cleans the repository, branch and author lists.
// Positional author arguments replace the configured authors.
func processTargets(cfg *Config, input *ConfigRawInput) error {
	cfg.RepoPaths = nil
	for _, p := range cleanList(input.RepoPaths) {
		cfg.RepoPaths = append(cfg.RepoPaths, expandHome(p))
	}
	if len(cfg.RepoPaths) == 0 && !input.AllowEmptyTargets {
		return errNoRepositories()
	}

	cfg.Branches = cleanList(input.Branches)
	if len(cfg.Branches) == 0 {
		cfg.Branches = []string{DefaultBranch}
	}

	authors := input.Authors
	if len(cleanList(input.AuthorArgs)) > 0 {
		authors = input.AuthorArgs
	}
	cfg.Authors = cleanList(authors)
	if len(cfg.Authors) == 0 && !input.AllowEmptyTargets {
		return errNoAuthors()
	}
	return nil
}

// RevalidateTargets re-checks targets and the target date after cfg was changed
// outside of ProcessAndValidate, for example by MCP tool arguments.
func RevalidateTargets(cfg *Config) error {
	cfg.RepoPaths = cleanList(cfg.RepoPaths)
	for i, p := range cfg.RepoPaths {
		cfg.RepoPaths[i] = expandHome(p)
	}
	if len(cfg.RepoPaths) == 0 {
		return errNoRepositories()
	}
	cfg.Branches = cleanList(cfg.Branches)
	if len(cfg.Branches) == 0 {
		cfg.Branches = []string{DefaultBranch}
	}
	cfg.Authors = cleanList(cfg.Authors)
	if len(cfg.Authors) == 0 {
		return errNoAuthors()
	}
	_, err := schema.NewTimeWindow(cfg.Date, time.Now(), time.Local)
	return err
}

func errNoRepositories() error {
	return fmt.Errorf("no repositories configured. Set repo-path in %s or pass --repo-path", GetConfigFilePath())
}

func errNoAuthors() error {
	return fmt.Errorf("no authors configured. Set authors in %s or pass them as arguments", GetConfigFilePath())
}

// processDate validates the optional target date override.
func processDate(cfg *Config, input *ConfigRawInput) error {
	if input.Year < 0 {
		return fmt.Errorf("year must be positive (received %d)", input.Year)
	}
	if input.Month < 0 || input.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12 (received %d)", input.Month)
	}
	if input.Day < 0 || input.Day > 31 {
		return fmt.Errorf("day must be between 1 and 31 (received %d)", input.Day)
	}
	cfg.Date = schema.DateOverride{Year: input.Year, Month: input.Month, Day: input.Day}

	// Catches combinations such as February 30.
	if _, err := schema.NewTimeWindow(cfg.Date, time.Now(), time.Local); err != nil {
		return err
	}
	return nil
}

// processSummarizer validates the summarization backend settings.
func processSummarizer(cfg *Config, input *ConfigRawInput) error {
	cfg.Authorization = strings.TrimSpace(input.Authorization)
	cfg.BaseURL = strings.TrimSpace(input.BaseURL)
	cfg.PromptTemplate = input.Prompt
	if strings.TrimSpace(cfg.PromptTemplate) == "" {
		cfg.PromptTemplate = DefaultPromptTemplate
	}

	cfg.Provider = schema.DashScopeProvider
	if input.Provider != "" {
		cfg.Provider = schema.ProviderName(strings.ToLower(input.Provider))
	}
	if _, ok := schema.ValidProviders[cfg.Provider]; !ok {
		return fmt.Errorf("invalid provider '%s'. must be dashscope, openai", input.Provider)
	}

	cfg.Model = strings.TrimSpace(input.Model)
	if cfg.Model == "" {
		switch cfg.Provider {
		case schema.OpenAIProvider:
			cfg.Model = DefaultOpenAIModel
		default:
			cfg.Model = DefaultDashScopeModel
		}
	}

	cfg.Timeout = 0
	if t := strings.TrimSpace(input.Timeout); t != "" && t != "0" {
		d, err := parseTimeout(t)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must not be negative (received %s)", d)
		}
		cfg.Timeout = d
	}
	return nil
}

// parseTimeout parses a Go duration such as "30s". A bare integer counts as seconds.
func parseTimeout(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// cleanList trims entries, drops empty ones and removes duplicates while keeping order.
func cleanList(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, rest)
}
