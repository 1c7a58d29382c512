package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/worklog/core"
	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/huangsam/worklog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd harvests commits and prints the daily work log.
var rootCmd = &cobra.Command{
	Use:   "worklog [author...]",
	Short: "Turn recent git commits into a one-line daily work log.",
	Long: `Worklog collects the commits an author made in the last few days across several
repositories and branches, removes duplicates, orders them newest first and asks a
language model for a one-sentence summary of the target day's work.

Merge commits with exactly two parents are left out. Positional arguments replace
the authors from the config file.

Examples:
  # Summarize today's work for the configured authors
  worklog

  # Summarize work for a given author on March 15th of this year
  worklog alice -m 3 -d 15

  # Only print the digest as a table
  worklog --no-summary --output table

  # Use an OpenAI-compatible endpoint
  worklog --provider openai --base-url http://localhost:11434/v1 --model llama3`,
	Args:               cobra.ArbitraryArgs,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()
		if err := core.ExecuteDigest(rootCtx, cfg, client, summarize.New); err != nil {
			contract.LogFatal("Cannot build work log", err)
		}
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(contract.GetConfigDir())
		viper.AddConfigPath(".")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix(strings.ToUpper(contract.AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("branches", []string{contract.DefaultBranch})
	viper.SetDefault("provider", schema.DashScopeProvider)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
}

// readConfigFile merges the config file into viper. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	// Older profiles spell the repository key with an underscore.
	if !viper.IsSet("repo-path") && viper.IsSet("repo_path") {
		viper.Set("repo-path", viper.GetStringSlice("repo_path"))
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, cmd *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.AuthorArgs = args
	input.AllowEmptyTargets = cmd.Name() == "mcp"

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	contract.SetColors(cfg.UseColors)
	contract.SetVerbose(cfg.Verbose)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
