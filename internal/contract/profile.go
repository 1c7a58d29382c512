package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is the on-disk shape of a worklog config file.
type Profile struct {
	RepoPath      []string `yaml:"repo-path"`
	Branches      []string `yaml:"branches"`
	Authors       []string `yaml:"authors"`
	Authorization string   `yaml:"authorization"`
	Provider      string   `yaml:"provider"`
	Model         string   `yaml:"model"`
}

// DefaultProfile returns the placeholder profile written by `worklog config --default`.
func DefaultProfile() Profile {
	return Profile{
		RepoPath:      []string{"/path/to/your/repo"},
		Branches:      []string{DefaultBranch},
		Authors:       []string{"your_name"},
		Authorization: "Bearer your_token",
		Provider:      "dashscope",
		Model:         DefaultDashScopeModel,
	}
}

// WriteDefaultProfile writes DefaultProfile as YAML to path, creating parent directories.
func WriteDefaultProfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultProfile())
	if err != nil {
		return fmt.Errorf("cannot encode default profile: %w", err)
	}
	// The file holds a credential.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// ReadProfile loads a config file written in the Profile layout.
// Older profiles spell the repository key repo_path; it is used when repo-path is absent.
func ReadProfile(path string) (Profile, error) {
	var raw struct {
		Profile        `yaml:",inline"`
		LegacyRepoPath []string `yaml:"repo_path"`
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return raw.Profile, err
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return raw.Profile, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if len(raw.RepoPath) == 0 {
		raw.RepoPath = raw.LegacyRepoPath
	}
	return raw.Profile, nil
}
