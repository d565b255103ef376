package engine

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shredguard/shredguard/internal/ignore"
	"github.com/shredguard/shredguard/internal/rules"
	"github.com/shredguard/shredguard/internal/types"
)

// Config controls scanning behavior including scope and filters.
type Config struct {
	// Root anchors relative paths and the gitignore search. Paths lists the
	// explicit roots to scan (files or directories); when empty, Root itself
	// is scanned.
	Root  string
	Paths []string

	// AllFiles disables gitignore filtering of explicit file arguments and
	// the built-in noise-directory excludes.
	AllFiles bool
	// RespectGitignore honors .gitignore files found under Root.
	RespectGitignore bool

	Threads int
	Verbose bool
	// Warn receives per-file diagnostics (skipped binaries, unreadable
	// files). Nil discards them.
	Warn func(format string, args ...any)
}

func (c Config) warnf(format string, args ...any) {
	if c.Warn != nil {
		c.Warn(format, args...)
	}
}

// Result contains matches and basic scan statistics.
type Result struct {
	Matches      []types.Match
	Files        []string
	FilesScanned int
	Duration     time.Duration
}

// Run discovers candidate files under cfg and scans them with the pattern
// set. Matches are ordered by (path, line, column) with files in discovery
// order; the ordering is deterministic for a fixed tree and pattern set.
func Run(cfg Config, set *rules.Set) (Result, error) {
	var res Result
	started := time.Now()

	ign := ignore.Load(cfg.Root, cfg.RespectGitignore)
	files, err := Discover(cfg, ign)
	if err != nil {
		return res, err
	}
	res.Files = files

	matches, scanned, err := scanAll(cfg, set, files)
	if err != nil {
		return res, err
	}
	res.Matches = matches
	res.FilesScanned = scanned
	res.Duration = time.Since(started)
	return res, nil
}

// clampThreads mirrors the worker sizing used elsewhere in the CLI: zero
// means GOMAXPROCS, bounded to a sane range.
func clampThreads(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads < 1 {
		threads = 1
	}
	if threads > 32 {
		threads = 32
	}
	return threads
}

// readFull reads a candidate file, distinguishing access errors from
// content. Callers treat errors as a per-file skip, not a fatal failure.
func readFull(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
