// Package report renders matches and summaries for the terminal, plus the
// machine-readable SARIF and baseline artifacts.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/shredguard/shredguard/internal/redact"
	"github.com/shredguard/shredguard/internal/types"
)

// ANSI color codes.
const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Formatter renders diagnostic output. Color and unicode are auto-detected
// unless forced by flags or environment.
type Formatter struct {
	Color   bool
	Unicode bool
}

// NewFormatter auto-detects terminal capabilities. NO_COLOR and FORCE_COLOR
// override TTY detection, as does the noColor flag.
func NewFormatter(noColor bool) Formatter {
	return Formatter{
		Color:   !noColor && colorSupported(),
		Unicode: unicodeSupported(),
	}
}

func colorSupported() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func unicodeSupported() bool {
	for _, k := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return strings.Contains(strings.ToUpper(v), "UTF-8") || strings.Contains(strings.ToUpper(v), "UTF8")
		}
	}
	return false
}

func (f Formatter) paint(text string, codes ...string) string {
	if !f.Color {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

func (f Formatter) checkMark() string {
	if f.Unicode {
		return "✓"
	}
	return "[OK]"
}

func (f Formatter) xMark() string {
	if f.Unicode {
		return "✗"
	}
	return "[X]"
}

// Match renders one match in the line-oriented diagnostic form:
// path:line:col: CODE description [matched text]
func (f Formatter) Match(m types.Match) string {
	loc := f.paint(m.Location()+":", ansiBold)
	code := f.paint(m.Code, ansiRed, ansiBold)
	matched := f.paint("["+m.Text+"]", ansiYellow)
	if m.Description == "" {
		return fmt.Sprintf("%s %s %s", loc, code, matched)
	}
	return fmt.Sprintf("%s %s %s %s", loc, code, m.Description, matched)
}

// PrintMatches writes one line per match in order.
func (f Formatter) PrintMatches(w io.Writer, ms []types.Match) {
	for _, m := range ms {
		fmt.Fprintln(w, f.Match(m))
	}
}

// CheckSummary is the final line of check mode output.
func (f Formatter) CheckSummary(matchCount, fileCount, patternCount int) string {
	if matchCount == 0 {
		return fmt.Sprintf("%s No PHI patterns found (%d %s checked)",
			f.paint(f.checkMark(), ansiGreen, ansiBold), patternCount, plural(patternCount, "pattern", "patterns"))
	}
	return fmt.Sprintf("%s Found %d %s in %d %s",
		f.paint(f.xMark(), ansiRed, ansiBold),
		matchCount, plural(matchCount, "match", "matches"),
		fileCount, plural(fileCount, "file", "files"))
}

// FixSummary is the final line of fix mode output.
func (f Formatter) FixSummary(res redact.Result) string {
	if res.Replacements == 0 {
		return fmt.Sprintf("%s No replacements needed", f.paint(f.checkMark(), ansiGreen, ansiBold))
	}
	return fmt.Sprintf("%s Replaced %d occurrences of %d unique %s in %d %s",
		f.paint(f.checkMark(), ansiGreen, ansiBold),
		res.Replacements,
		res.UniqueValues, plural(res.UniqueValues, "value", "values"),
		res.FilesModified, plural(res.FilesModified, "file", "files"))
}

// CollisionError explains why fixing with an already-present prefix was
// refused. Output is capped; the full list rarely helps.
func (f Formatter) CollisionError(prefix string, cs []redact.Collision) string {
	var b strings.Builder
	b.WriteString(f.paint(fmt.Sprintf("Error: prefix %q already exists in files", prefix), ansiRed, ansiBold))
	b.WriteString("\n\nThe following collisions were found:\n")
	const maxShown = 10
	for i, c := range cs {
		if i == maxShown {
			fmt.Fprintf(&b, "  ... and %d more\n", len(cs)-maxShown)
			break
		}
		fmt.Fprintf(&b, "  %s:%d: %s\n", c.Path, c.Line, c.Text)
	}
	b.WriteString("\nChoose a different prefix with --prefix")
	return b.String()
}

// Error renders a fatal error message for stderr.
func (f Formatter) Error(msg string) string {
	return f.paint("Error:", ansiRed, ansiBold) + " " + msg
}

// Warning renders a non-fatal diagnostic for stderr.
func (f Formatter) Warning(msg string) string {
	return f.paint("Warning:", ansiYellow, ansiBold) + " " + msg
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
