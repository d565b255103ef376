package wizard

import (
	"fmt"
	"strings"

	"github.com/shredguard/shredguard/internal/rules"
)

// RenderConfig builds the .shredguard.toml text for the chosen patterns.
// Regexes are emitted as TOML literal strings so backslashes survive intact;
// a regex containing a single quote falls back to a basic string with
// escaping.
func RenderConfig(defs []rules.Definition, prefix string) string {
	var b strings.Builder
	b.WriteString("# shredguard configuration\n")
	b.WriteString("# Each [[patterns]] entry is a regular expression scanned against file content.\n")
	b.WriteString("# Scope a pattern with `files` / `exclude_files` globs (e.g. [\"*.csv\", \"data/**\"]).\n\n")
	if prefix != "" && prefix != "REDACTED" {
		fmt.Fprintf(&b, "prefix = %s\n\n", tomlString(prefix))
	}
	for _, d := range defs {
		b.WriteString("[[patterns]]\n")
		fmt.Fprintf(&b, "regex = %s\n", tomlString(d.Regex))
		if d.Description != "" {
			fmt.Fprintf(&b, "description = %s\n", tomlString(d.Description))
		}
		if len(d.Files) > 0 {
			fmt.Fprintf(&b, "files = %s\n", tomlList(d.Files))
		}
		if len(d.ExcludeFiles) > 0 {
			fmt.Fprintf(&b, "exclude_files = %s\n", tomlList(d.ExcludeFiles))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func tomlString(s string) string {
	if !strings.ContainsAny(s, "'\n") {
		return "'" + s + "'"
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func tomlList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = tomlString(it)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
