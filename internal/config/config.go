package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/BurntSushi/toml"
	"github.com/shredguard/shredguard/internal/rules"
)

// searchNames are candidate config file names, checked in order in each
// directory from the scan root upward.
var searchNames = []string{".shredguard.toml", "shredguard.toml"}

const hint = `Add a config file with at least one pattern:

    # shredguard.toml
    [[patterns]]
    regex = "SUB-\\d{4,6}"
    description = "Subject ID"
`

// File is the on-disk TOML configuration shape for ShredGuard.
type File struct {
	Patterns []rules.Definition `toml:"patterns"`
	Prefix   *string            `toml:"prefix"`
	Threads  *int               `toml:"threads"`
	NoColor  *bool              `toml:"no_color"`

	// Path is where the config was found; not part of the file format.
	Path string `toml:"-"`
}

// Load resolves configuration. An explicit path wins; otherwise the scan
// root and its parents are searched for a shredguard.toml (dotfile first).
func Load(explicit, root string) (File, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}
	dir, err := filepath.Abs(root)
	if err != nil {
		dir = root
	}
	for {
		for _, name := range searchNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return LoadFile(p)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return File{}, &rules.ConfigError{Msg: "no shredguard configuration found\n\n" + hint}
}

// LoadFile reads and decodes a TOML config file from the provided path.
func LoadFile(path string) (File, error) {
	var cfg File
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &rules.ConfigError{Msg: fmt.Sprintf("config file not found: %s", path), Err: err}
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, &rules.ConfigError{Msg: fmt.Sprintf("invalid TOML in %s", path), Err: err}
	}
	if len(cfg.Patterns) == 0 {
		return cfg, &rules.ConfigError{Msg: fmt.Sprintf("no patterns defined in %s\n\n%s", path, hint)}
	}
	cfg.Path = path
	return cfg, nil
}

// Rules compiles the loaded pattern definitions into a Set.
func (f File) Rules() (*rules.Set, error) {
	return rules.Compile(f.Patterns)
}
