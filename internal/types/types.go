package types

import "fmt"

// Match describes a single pattern hit at a path, line, and column. Line and
// Column are 1-based; Column is a byte offset within the line. Start and End
// are byte offsets of the matched span within the file content and are used
// by the rewriter; they are not part of the wire format.
type Match struct {
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Text        string `json:"match"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`

	Start int `json:"-"`
	End   int `json:"-"`
}

// Location formats the match position in the conventional path:line:col form.
func (m Match) Location() string {
	return fmt.Sprintf("%s:%d:%d", m.Path, m.Line, m.Column)
}
