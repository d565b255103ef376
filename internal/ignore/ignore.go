// Package ignore evaluates gitignore exclusion rules for the scan root.
// It wraps go-git's gitignore parser, so nested .gitignore files, deeper-rule
// precedence, and `!pattern` re-includes behave the way git behaves.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher reports whether a path relative to the scan root is excluded.
// The zero value matches nothing.
type Matcher struct {
	m gitignore.Matcher
}

// Load collects .gitignore rules under root (recursively, nearest-enclosing
// semantics). When enabled is false, or no ignore files exist, the returned
// Matcher matches nothing. Unreadable ignore files are skipped.
func Load(root string, enabled bool) Matcher {
	if !enabled {
		return Matcher{}
	}
	fs := osfs.New(root)
	ps, err := gitignore.ReadPatterns(fs, nil)
	if err != nil || len(ps) == 0 {
		return Matcher{}
	}
	return Matcher{m: gitignore.NewMatcher(ps)}
}

// Match reports whether rel (slash- or OS-separated, relative to the scan
// root) is ignored.
func (m Matcher) Match(rel string, isDir bool) bool {
	if m.m == nil {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return m.m.Match(parts, isDir)
}
