package rules

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// ConfigError indicates an invalid pattern definition (bad regex, missing
// required field). It is fatal: the run aborts before any file is touched.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Definition is one pattern entry as it appears in the config file.
type Definition struct {
	Regex        string   `toml:"regex"`
	Description  string   `toml:"description"`
	Files        []string `toml:"files"`
	ExcludeFiles []string `toml:"exclude_files"`
}

// Pattern is a compiled definition with its stable display code. Codes are
// assigned by 1-based definition order (SG001, SG002, ...).
type Pattern struct {
	Code         string
	Regex        *regexp.Regexp
	Description  string
	Files        []string
	ExcludeFiles []string
}

// Set is an ordered, validated collection of patterns. It is built once and
// shared read-only across all scanned files.
type Set struct {
	patterns []Pattern
}

// Compile validates an ordered list of definitions into a Set. The first
// invalid definition aborts compilation with a ConfigError.
func Compile(defs []Definition) (*Set, error) {
	if len(defs) == 0 {
		return nil, &ConfigError{Msg: "no patterns defined"}
	}
	ps := make([]Pattern, 0, len(defs))
	for i, d := range defs {
		if d.Regex == "" {
			return nil, &ConfigError{Msg: fmt.Sprintf("pattern %d missing 'regex' field", i+1)}
		}
		re, err := regexp.Compile(d.Regex)
		if err != nil {
			return nil, &ConfigError{Msg: fmt.Sprintf("invalid regex in pattern %d (%q)", i+1, d.Description), Err: err}
		}
		desc := d.Description
		if desc == "" {
			desc = fmt.Sprintf("Pattern %d", i+1)
		}
		ps = append(ps, Pattern{
			Code:         fmt.Sprintf("SG%03d", i+1),
			Regex:        re,
			Description:  desc,
			Files:        d.Files,
			ExcludeFiles: d.ExcludeFiles,
		})
	}
	return &Set{patterns: ps}, nil
}

// Patterns returns all patterns in definition order.
func (s *Set) Patterns() []Pattern { return s.patterns }

// Len returns the number of patterns in the set.
func (s *Set) Len() int { return len(s.patterns) }

// ApplicableTo returns the ordered subset of patterns that apply to the
// given path (relative to the scan root). A pattern applies when its
// include globs are empty or one matches, and no exclude glob matches.
// Exclude globs always win.
func (s *Set) ApplicableTo(rel string) []Pattern {
	rp := filepath.ToSlash(rel)
	var out []Pattern
	for _, p := range s.patterns {
		if len(p.ExcludeFiles) > 0 && matchAnyGlob(rp, p.ExcludeFiles) {
			continue
		}
		if len(p.Files) > 0 && !matchAnyGlob(rp, p.Files) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchAnyGlob matches with doublestar semantics against the full relative
// path and, as a fallback, the basename so that `*.csv` hits nested files.
func matchAnyGlob(rp string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(rp)); ok {
			return true
		}
	}
	return false
}
