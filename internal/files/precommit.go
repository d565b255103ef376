package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const preCommitConfig = ".pre-commit-config.yaml"

type preCommitFile struct {
	Repos []preCommitRepo `yaml:"repos"`
}

type preCommitRepo struct {
	Repo  string          `yaml:"repo"`
	Rev   string          `yaml:"rev,omitempty"`
	Hooks []preCommitHook `yaml:"hooks"`
}

type preCommitHook struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name,omitempty"`
	Entry       string   `yaml:"entry,omitempty"`
	Language    string   `yaml:"language,omitempty"`
	PassFiles   bool     `yaml:"pass_filenames,omitempty"`
	AlwaysRun   bool     `yaml:"always_run,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Stages      []string `yaml:"stages,omitempty"`
}

// InstallPreCommitHook adds a local shredguard hook to .pre-commit-config.yaml
// at root, creating the file when absent. A hook with id "shredguard" already
// present anywhere in the file is left untouched.
func InstallPreCommitHook(root string) error {
	path := filepath.Join(root, preCommitConfig)

	var cfg preCommitFile
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return fmt.Errorf("parse %s: %w", preCommitConfig, err)
		}
		for _, repo := range cfg.Repos {
			for _, h := range repo.Hooks {
				if h.ID == "shredguard" {
					return nil
				}
			}
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	cfg.Repos = append(cfg.Repos, preCommitRepo{
		Repo: "local",
		Hooks: []preCommitHook{{
			ID:        "shredguard",
			Name:      "shredguard",
			Entry:     "shredguard check",
			Language:  "system",
			PassFiles: true,
		}},
	})

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
