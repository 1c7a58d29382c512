package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd manages the worklog config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create or open the worklog config file.",
	Long: `Print the location of the config file and a short overview of its content.

The config file lives in $XDG_CONFIG_HOME/worklog/config.yml (usually
~/.config/worklog/config.yml) unless --config points elsewhere.

Examples:
  # Create a profile with placeholder values
  worklog config --default

  # Edit it
  worklog config --open`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		path := configPath()
		writeDefault, _ := cmd.Flags().GetBool("default")
		force, _ := cmd.Flags().GetBool("force")
		openFlag, _ := cmd.Flags().GetBool("open")

		if writeDefault {
			if err := createDefaultProfile(path, force); err != nil {
				contract.LogFatal("Cannot write default profile", err)
			}
		}

		profile, err := contract.ReadProfile(path)
		if errors.Is(err, fs.ErrNotExist) {
			cmd.Printf("No config file at %s\n", path)
			cmd.Println("Run 'worklog config --default' to create one.")
			return
		}
		if err != nil {
			contract.LogFatal("Cannot read config file", err)
		}

		cmd.Printf("Config file: %s\n", path)
		cmd.Printf("  Repositories: %d\n", len(profile.RepoPath))
		cmd.Printf("  Branches:     %v\n", profile.Branches)
		cmd.Printf("  Authors:      %v\n", profile.Authors)
		cmd.Printf("  Provider:     %s (%s)\n", profile.Provider, profile.Model)

		if openFlag {
			if err := openFile(path); err != nil {
				contract.LogFatal("Cannot open config file", err)
			}
		}
	},
}

// configPath returns the --config value or the default config file path.
func configPath() string {
	if p := viper.GetString("config"); p != "" {
		return p
	}
	return contract.GetConfigFilePath()
}

// createDefaultProfile writes the placeholder profile unless a file already exists.
func createDefaultProfile(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		contract.LogInfo("Keeping existing config file %s (use --force to overwrite)", path)
		return nil
	}
	if err := contract.WriteDefaultProfile(path); err != nil {
		return err
	}
	contract.LogInfo("Wrote default profile to %s", path)
	return nil
}

// openFile hands path to the platform opener without waiting for the editor to close.
func openFile(path string) error {
	if err := open.Start(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	return nil
}
