// Package cmd defines the command-line interface for worklog.
package cmd

import (
	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add subcommands to the root command
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().StringSlice("repo-path", nil, "Comma-separated list of repositories to scan")
	rootCmd.PersistentFlags().StringSliceP("branches", "b", []string{contract.DefaultBranch}, "Comma-separated list of branches; remote names such as origin/main are allowed")
	rootCmd.PersistentFlags().StringSliceP("authors", "a", nil, "Comma-separated list of author names to include")
	rootCmd.PersistentFlags().IntP("year", "y", 0, "Target year (default: current year)")
	rootCmd.PersistentFlags().IntP("month", "m", 0, "Target month (default: current month)")
	rootCmd.PersistentFlags().IntP("day", "d", 0, "Target day (default: today)")
	rootCmd.PersistentFlags().String("authorization", "", "Credential for the summary service; prefer the WORKLOG_AUTHORIZATION env var")
	rootCmd.PersistentFlags().String("provider", string(schema.DashScopeProvider), "Summary provider: dashscope or openai")
	rootCmd.PersistentFlags().String("model", "", "Model name (default depends on provider)")
	rootCmd.PersistentFlags().String("base-url", "", "Override the provider endpoint")
	rootCmd.PersistentFlags().String("timeout", "", "Timeout per summary request, e.g. 30s or 30 for seconds (default: none)")
	rootCmd.PersistentFlags().String("prompt", "", "System prompt template; {date} is replaced by the target date")
	rootCmd.PersistentFlags().Bool("no-summary", false, "Only print the digest, skip the summary request")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or json or csv or table")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// configCmd flags
	configCmd.Flags().Bool("default", false, "Write a default profile to the config path")
	configCmd.Flags().Bool("force", false, "Overwrite an existing config file with --default")
	configCmd.Flags().Bool("open", false, "Open the config file with the system editor")
}
