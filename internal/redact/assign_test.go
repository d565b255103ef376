package redact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssign_FirstSeenOrdering(t *testing.T) {
	a := NewAssigner("REDACTED")
	if got := a.Assign("SUB-1234"); got != "REDACTED-0" {
		t.Fatalf("got %q", got)
	}
	if got := a.Assign("SUB-5678"); got != "REDACTED-1" {
		t.Fatalf("got %q", got)
	}
	// repeated value returns the recorded pseudonym without a new index
	if got := a.Assign("SUB-1234"); got != "REDACTED-0" {
		t.Fatalf("got %q", got)
	}
	if got := a.Assign("MRN123456"); got != "REDACTED-2" {
		t.Fatalf("got %q", got)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 distinct values, got %d", a.Len())
	}
}

func TestAssign_DistinctValuesDistinctPseudonyms(t *testing.T) {
	a := NewAssigner("ANON")
	seen := map[string]string{}
	values := []string{"a", "b", "c", "a", "d", "b"}
	for _, v := range values {
		p := a.Assign(v)
		if prev, ok := seen[v]; ok && prev != p {
			t.Fatalf("value %q mapped to both %q and %q", v, prev, p)
		}
		seen[v] = p
	}
	uniq := map[string]bool{}
	for _, p := range seen {
		if uniq[p] {
			t.Fatalf("pseudonym %q assigned to two values", p)
		}
		uniq[p] = true
	}
}

func TestWriteMap_FirstSeenOrder(t *testing.T) {
	a := NewAssigner("ANON")
	a.Assign("zzz")
	a.Assign("aaa")
	a.Assign("mmm")

	p := filepath.Join(t.TempDir(), "map.json")
	if err := a.WriteMap(p); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	// insertion order, not lexicographic
	if !(strings.Index(s, `"zzz"`) < strings.Index(s, `"aaa"`) && strings.Index(s, `"aaa"`) < strings.Index(s, `"mmm"`)) {
		t.Fatalf("mapping not in first-seen order:\n%s", s)
	}
	if !strings.Contains(s, `"zzz": "ANON-0"`) {
		t.Fatalf("unexpected mapping content:\n%s", s)
	}
}
