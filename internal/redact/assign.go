// Package redact assigns deterministic pseudonyms to matched values and
// rewrites files in place. Assignment state is scoped to exactly one fix
// invocation across all files; identical original values anywhere in the
// batch collapse to one shared pseudonym.
package redact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Assigner hands out sequential pseudonyms of the form "{prefix}-{n}",
// n starting at 0, in order of first encounter. It is not safe for
// concurrent use; callers serialize assignment (scanning may be parallel,
// assignment is a single ordered pass).
type Assigner struct {
	prefix  string
	byValue map[string]string
	order   []string
}

// Entry is one original→pseudonym pair in first-seen order.
type Entry struct {
	Original  string
	Pseudonym string
}

func NewAssigner(prefix string) *Assigner {
	return &Assigner{prefix: prefix, byValue: map[string]string{}}
}

// Assign returns the pseudonym for value, allocating the next sequential
// index on first sight. Subsequent calls with the same value return the
// recorded pseudonym without consuming a new index.
func (a *Assigner) Assign(value string) string {
	if p, ok := a.byValue[value]; ok {
		return p
	}
	p := fmt.Sprintf("%s-%d", a.prefix, len(a.order))
	a.byValue[value] = p
	a.order = append(a.order, value)
	return p
}

// Len returns the number of distinct values assigned so far.
func (a *Assigner) Len() int { return len(a.order) }

// Mapping returns all pairs in first-seen order.
func (a *Assigner) Mapping() []Entry {
	out := make([]Entry, len(a.order))
	for i, v := range a.order {
		out[i] = Entry{Original: v, Pseudonym: a.byValue[v]}
	}
	return out
}

// WriteMap serializes the mapping as a flat JSON object at path, keys in
// first-seen order. An existing file is overwritten.
func (a *Assigner) WriteMap(path string) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	entries := a.Mapping()
	for i, e := range entries {
		k, err := json.Marshal(e.Original)
		if err != nil {
			return err
		}
		v, err := json.Marshal(e.Pseudonym)
		if err != nil {
			return err
		}
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(entries)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
