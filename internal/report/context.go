package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/shredguard/shredguard/internal/types"
)

// WriteContext prints up to n source lines on each side of the match, with
// a line-number gutter and a marker on the matching line. When color is on,
// the excerpt is syntax-highlighted by file type.
func WriteContext(w io.Writer, root string, m types.Match, n int, color bool) error {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(m.Path)))
	if err != nil {
		return err
	}
	lines := strings.Split(string(content), "\n")
	start := m.Line - 1 - n
	if start < 0 {
		start = 0
	}
	end := m.Line + n
	if end > len(lines) {
		end = len(lines)
	}
	excerpt := lines[start:end]
	if color {
		excerpt = highlightLines(strings.Join(excerpt, "\n"), m.Path)
	}
	for i, ln := range excerpt {
		no := start + i + 1
		marker := "  "
		if no == m.Line {
			marker = "> "
		}
		fmt.Fprintf(w, "  %s%4d | %s\n", marker, no, ln)
	}
	return nil
}

// highlightLines runs the excerpt through chroma and returns it split back
// into lines. On any failure the plain text comes back unchanged.
func highlightLines(code, filename string) []string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return strings.Split(code, "\n")
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, it); err != nil {
		return strings.Split(code, "\n")
	}
	return strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
}
