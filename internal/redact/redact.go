package redact

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/shredguard/shredguard/internal/types"
)

// FileError records a per-file failure during rewriting. It does not abort
// the remaining files; the run's exit code reflects it.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

// Result summarizes one fix invocation.
type Result struct {
	FilesModified int
	Replacements  int
	UniqueValues  int
	Failed        []FileError
}

// Rewrite substitutes every matched span with its assigned pseudonym.
// Matches must arrive ordered by (file discovery order, span start): that
// ordering defines first-seen pseudonym identity. Paths are resolved
// relative to root. When dryRun is set, assignment runs but no file is
// written, so the mapping can be previewed.
//
// Per file, spans are applied from rightmost to leftmost so earlier
// replacements never shift later offsets. Duplicate spans are collapsed
// and a span overlapping an already-kept one is dropped (its value still
// receives a pseudonym).
func Rewrite(root string, matches []types.Match, a *Assigner, dryRun bool) Result {
	var res Result

	// group by path, preserving first-appearance order
	order := []string{}
	byPath := map[string][]types.Match{}
	for _, m := range matches {
		if _, ok := byPath[m.Path]; !ok {
			order = append(order, m.Path)
		}
		byPath[m.Path] = append(byPath[m.Path], m)
	}

	for _, rel := range order {
		fm := byPath[rel]
		abs := filepath.Join(root, filepath.FromSlash(rel))
		n, err := rewriteFile(abs, fm, a, dryRun)
		if err != nil {
			res.Failed = append(res.Failed, FileError{Path: rel, Err: err})
			continue
		}
		if n > 0 {
			res.Replacements += n
			res.FilesModified++
		}
	}
	res.UniqueValues = a.Len()
	return res
}

func rewriteFile(abs string, fm []types.Match, a *Assigner, dryRun bool) (int, error) {
	content, err := os.ReadFile(abs)
	if err != nil {
		return 0, err
	}

	// Resolve every matched value in ascending span order first: assignment
	// order is defined by position, not by which spans survive overlap
	// pruning.
	kept := fm[:0:0]
	lastEnd := -1
	for _, m := range fm {
		a.Assign(m.Text)
		if m.Start < lastEnd {
			continue // duplicate of or overlapping a span already kept
		}
		kept = append(kept, m)
		lastEnd = m.End
	}

	// Verify spans still hold before touching the file.
	for _, m := range kept {
		if m.End > len(content) || string(content[m.Start:m.End]) != m.Text {
			return 0, fmt.Errorf("content changed since scan")
		}
	}

	out := append([]byte(nil), content...)
	for i := len(kept) - 1; i >= 0; i-- {
		m := kept[i]
		p := a.Assign(m.Text)
		out = append(out[:m.Start], append([]byte(p), out[m.End:]...)...)
	}

	if bytes.Equal(out, content) {
		return 0, nil
	}
	if dryRun {
		return len(kept), nil
	}
	if err := writeAtomic(abs, out); err != nil {
		return 0, err
	}
	return len(kept), nil
}

// writeAtomic writes via a temp file in the same directory plus rename, so
// an interrupt never leaves a half-rewritten file. The original mode is
// preserved when it can be read.
func writeAtomic(abs string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(abs); err == nil {
		mode = st.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(abs), filepath.Base(abs)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, abs); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Collision is an existing occurrence of the pseudonym prefix in a file.
type Collision struct {
	Path string
	Line int
	Text string
}

// CheckPrefix scans candidate files for pre-existing "{prefix}-N" tokens.
// Fixing over those would make the mapping ambiguous, so the caller aborts
// when any are found. Unreadable files are skipped.
func CheckPrefix(root string, files []string, prefix string) []Collision {
	re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `-\d+`)
	var out []Collision
	for _, rel := range files {
		f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)
		line := 0
		for sc.Scan() {
			line++
			for _, m := range re.FindAllString(sc.Text(), -1) {
				out = append(out, Collision{Path: rel, Line: line, Text: m})
			}
		}
		_ = f.Close()
	}
	return out
}
