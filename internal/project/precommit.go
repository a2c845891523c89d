package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PreCommitConfigFile is the pre-commit framework's configuration file.
const PreCommitConfigFile = ".pre-commit-config.yaml"

// PreCommitConfig is the subset of .pre-commit-config.yaml we read.
type PreCommitConfig struct {
	Repos []PreCommitRepo `yaml:"repos"`
}

// PreCommitRepo is one entry of the top-level repos list. Repo is a URL,
// or one of the special values "local" and "meta".
type PreCommitRepo struct {
	Repo  string          `yaml:"repo"`
	Rev   string          `yaml:"rev,omitempty"`
	Hooks []PreCommitHook `yaml:"hooks"`
}

// PreCommitHook identifies a hook within a repo.
type PreCommitHook struct {
	ID string `yaml:"id"`
}

// LoadPreCommitConfig parses the .pre-commit-config.yaml at path.
func LoadPreCommitConfig(path string) (*PreCommitConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg PreCommitConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// RepoNames returns the repo of every entry, in file order.
func (c *PreCommitConfig) RepoNames() []string {
	names := make([]string, 0, len(c.Repos))
	for _, r := range c.Repos {
		names = append(names, r.Repo)
	}
	return names
}

// HookIDs returns every hook id across all repos, in file order.
func (c *PreCommitConfig) HookIDs() []string {
	var ids []string
	for _, r := range c.Repos {
		for _, h := range r.Hooks {
			ids = append(ids, h.ID)
		}
	}
	return ids
}
