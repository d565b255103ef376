package engine

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/shredguard/shredguard/internal/ignore"
)

// binarySniffLen is the prefix examined for the NUL-byte binary heuristic.
// Downstream consumers depend on the exact 8KB/null-byte contract.
const binarySniffLen = 8192

// Discover walks the configured roots and returns the candidate file list,
// relative to cfg.Root, lexicographically ordered and deduplicated.
// Unreadable or vanished entries are skipped with a warning, never fatal.
func Discover(cfg Config, ign ignore.Matcher) ([]string, error) {
	roots := cfg.Paths
	if len(roots) == 0 {
		roots = []string{cfg.Root}
	}

	seen := map[string]bool{}
	var out []string
	add := func(rel string) {
		rel = filepath.ToSlash(rel)
		if !seen[rel] {
			seen[rel] = true
			out = append(out, rel)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			cfg.warnf("skipping %s: %v", root, err)
			continue
		}
		if !info.IsDir() {
			rel := relTo(cfg.Root, root)
			// Explicit file arguments bypass gitignore under --all-files.
			if !cfg.AllFiles && ign.Match(rel, false) {
				continue
			}
			if skip := sniffSkip(cfg, root); !skip {
				add(rel)
			}
			continue
		}
		walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				cfg.warnf("skipping %s: %v", p, err)
				return nil
			}
			rel := relTo(cfg.Root, p)
			if d.IsDir() {
				name := d.Name()
				if isVCSDir(name) {
					return filepath.SkipDir
				}
				if !cfg.AllFiles && isDefaultDirExcluded(name) && rel != "." {
					return filepath.SkipDir
				}
				if rel != "." && ign.Match(rel, true) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if ign.Match(rel, false) {
				return nil
			}
			if skip := sniffSkip(cfg, p); skip {
				return nil
			}
			add(rel)
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	sort.Strings(out)
	return out, nil
}

// sniffSkip applies the binary heuristic: a NUL byte within the first 8192
// bytes classifies the file as binary. Unreadable files are skipped too.
func sniffSkip(cfg Config, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		cfg.warnf("skipping %s: %v", path, err)
		return true
	}
	defer f.Close()
	buf := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		cfg.warnf("skipping %s: %v", path, err)
		return true
	}
	if bytes.IndexByte(buf[:n], 0) >= 0 {
		if cfg.Verbose {
			cfg.warnf("skipping %s (binary file)", path)
		}
		return true
	}
	return false
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func isVCSDir(name string) bool {
	switch name {
	case ".git", ".hg", ".svn":
		return true
	}
	return false
}
