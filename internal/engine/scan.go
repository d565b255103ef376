package engine

import (
	"path/filepath"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/shredguard/shredguard/internal/rules"
	"github.com/shredguard/shredguard/internal/types"
)

// ScanContent applies the applicable patterns to a file's content and
// returns position-annotated matches. Matching is global, non-overlapping,
// leftmost-first per pattern; matches from different patterns are reported
// independently and ordered by (line, column, pattern definition order).
func ScanContent(rel string, content []byte, patterns []rules.Pattern) []types.Match {
	var out []types.Match
	nl := newlineOffsets(content)
	for _, p := range patterns {
		for _, span := range p.Regex.FindAllIndex(content, -1) {
			if span[1] == span[0] {
				continue // zero-width match, nothing to report or replace
			}
			line, col := lineCol(nl, span[0])
			out = append(out, types.Match{
				Path:        rel,
				Line:        line,
				Column:      col,
				Text:        string(content[span[0]:span[1]]),
				Code:        p.Code,
				Description: p.Description,
				Start:       span[0],
				End:         span[1],
			})
		}
	}
	// Stable sort keeps definition order for spans starting at the same
	// offset.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// newlineOffsets returns the byte offsets of every '\n' in content.
func newlineOffsets(content []byte) []int {
	var nl []int
	for i, b := range content {
		if b == '\n' {
			nl = append(nl, i)
		}
	}
	return nl
}

// lineCol converts a byte offset into 1-based line and column. The column
// is the byte offset from the most recent newline (or start of file) plus
// one, matching common diagnostic-tool conventions.
func lineCol(nl []int, off int) (int, int) {
	line := sort.SearchInts(nl, off) + 1
	lineStart := 0
	if line > 1 {
		lineStart = nl[line-2] + 1
	}
	return line, off - lineStart + 1
}

type fileResult struct {
	matches []types.Match
	scanned bool
}

// scanAll runs files through a small worker pool and reassembles results in
// discovery order, so output ordering and downstream pseudonym assignment
// stay deterministic regardless of worker scheduling.
func scanAll(cfg Config, set *rules.Set, files []string) ([]types.Match, int, error) {
	threads := clampThreads(cfg.Threads)
	results := make([]fileResult, len(files))
	warnings := make([]string, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rel := files[i]
				content, err := readFull(filepath.Join(cfg.Root, filepath.FromSlash(rel)))
				if err != nil {
					warnings[i] = err.Error()
					continue
				}
				if !utf8.Valid(content) {
					// Decode failure is a binary-classification miss.
					warnings[i] = "skipping " + rel + " (not valid text)"
					continue
				}
				ps := set.ApplicableTo(rel)
				results[i] = fileResult{matches: ScanContent(rel, content, ps), scanned: true}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []types.Match
	scanned := 0
	for i := range files {
		if w := warnings[i]; w != "" {
			cfg.warnf("%s", w)
			continue
		}
		if results[i].scanned {
			scanned++
			out = append(out, results[i].matches...)
		}
	}
	return out, scanned, nil
}
