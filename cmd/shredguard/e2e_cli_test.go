package shredguard

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	buildPath string
	buildErr  error
)

// binary builds the CLI once per test run; commands exec it as a subprocess
// to exercise real exit codes.
func binary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "shredguard-e2e")
		if err != nil {
			buildErr = err
			return
		}
		buildPath = filepath.Join(dir, "shredguard")
		cmd := exec.Command("go", "build", "-o", buildPath, ".")
		cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("build output:\n%s", out)
		}
	})
	if buildErr != nil {
		t.Fatalf("build: %v", buildErr)
	}
	return buildPath
}

const e2eConfig = `[[patterns]]
regex = 'SUB-\d{4,6}'
description = 'Subject identifier'

[[patterns]]
regex = '\d{3}-\d{2}-\d{4}'
description = 'Social Security number'
`

func writeRepo(t *testing.T, fileBodies map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".shredguard.toml"), []byte(e2eConfig), 0644); err != nil {
		t.Fatal(err)
	}
	for name, body := range fileBodies {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binary(t), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if ee, ok := err.(*exec.ExitError); ok {
		code = ee.ExitCode()
	} else if err != nil {
		t.Fatalf("execute: %v", err)
	}
	return stdout.String(), stderr.String(), code
}

func TestCLI_Check_ReportsMatchesAndExits1(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"notes.txt": "enrolled\nSUB-1234 visited today\n",
	})
	stdout, _, code := run(t, dir, "check")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "notes.txt:2:1: SG001 Subject identifier [SUB-1234]") {
		t.Fatalf("match line missing or malformed:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Found 1 match in 1 file") {
		t.Fatalf("summary missing:\n%s", stdout)
	}
	// match lines are separated from the summary by a blank line
	if !strings.Contains(stdout, "[SUB-1234]\n\n") {
		t.Fatalf("expected a blank line before the summary:\n%s", stdout)
	}
}

func TestCLI_Check_CleanTreeExitsZero(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"notes.txt": "nothing sensitive here\n",
	})
	stdout, _, code := run(t, dir, "check")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "No PHI patterns found (2 patterns checked)") {
		t.Fatalf("summary missing:\n%s", stdout)
	}
}

func TestCLI_Check_JSONShape(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"data.csv": "123-45-6789,SUB-9999\n",
	})
	stdout, _, code := run(t, dir, "check", "--json")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	var arr []map[string]any
	if err := json.Unmarshal([]byte(stdout), &arr); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, stdout)
	}
	if len(arr) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(arr))
	}
	first := arr[0]
	if first["path"] != "data.csv" || first["line"] != float64(1) || first["column"] != float64(1) {
		t.Fatalf("unexpected first match: %v", first)
	}
	if first["code"] != "SG002" {
		t.Fatalf("expected SSN pattern first by position, got %v", first["code"])
	}
}

func TestCLI_Check_MissingConfigIsExit1(t *testing.T) {
	dir := t.TempDir()
	_, stderr, code := run(t, dir, "check")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "no shredguard configuration found") {
		t.Fatalf("expected config hint on stderr:\n%s", stderr)
	}
}

func TestCLI_Check_RespectsGitignore(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		".gitignore":     "ignored.txt\n",
		"ignored.txt":    "SUB-1234\n",
		"committed.txt":  "clean\n",
		".git/HEAD":      "ref: refs/heads/main\n",
		".git/dummy.txt": "SUB-9999 must never be scanned\n",
	})
	stdout, _, code := run(t, dir, "check")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout)
	}
	// --no-gitignore brings the gitignored file back, but never .git
	stdout, _, code = run(t, dir, "check", "--no-gitignore")
	if code != 1 {
		t.Fatalf("expected exit 1 with --no-gitignore, got %d\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "ignored.txt:1:1:") {
		t.Fatalf("gitignored file not scanned with --no-gitignore:\n%s", stdout)
	}
	if strings.Contains(stdout, ".git/") {
		t.Fatalf(".git contents must never be scanned:\n%s", stdout)
	}
}

func TestCLI_Fix_RewritesAndWritesMap(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"a.txt": "SUB-1234 and SUB-5678\n",
		"b.txt": "SUB-1234 again\n",
	})
	stdout, _, code := run(t, dir, "fix", "--output-map", "out.map.json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout)
	}
	a, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(a) != "REDACTED-0 and REDACTED-1\n" {
		t.Fatalf("a.txt: %q", a)
	}
	b, _ := os.ReadFile(filepath.Join(dir, "b.txt"))
	if string(b) != "REDACTED-0 again\n" {
		t.Fatalf("repeated value must reuse its pseudonym: %q", b)
	}
	if !strings.Contains(stdout, "Replaced 3 occurrences of 2 unique values in 2 files") {
		t.Fatalf("summary missing:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Mapping written to: out.map.json") {
		t.Fatalf("map path notice missing:\n%s", stdout)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "out.map.json"))
	if err != nil {
		t.Fatal(err)
	}
	var mapping map[string]string
	if err := json.Unmarshal(raw, &mapping); err != nil {
		t.Fatalf("map json: %v\n%s", err, raw)
	}
	if mapping["SUB-1234"] != "REDACTED-0" || mapping["SUB-5678"] != "REDACTED-1" {
		t.Fatalf("unexpected mapping: %v", mapping)
	}
	// first-seen order on disk, not alphabetical
	if idx1, idx2 := bytes.Index(raw, []byte("SUB-1234")), bytes.Index(raw, []byte("SUB-5678")); idx1 > idx2 {
		t.Fatalf("map not in first-seen order:\n%s", raw)
	}
}

func TestCLI_Fix_CustomPrefixAndCollisionGuard(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"a.txt": "SUB-1234\n",
	})
	stdout, _, code := run(t, dir, "fix", "--prefix", "ANON")
	if code != 0 {
		t.Fatalf("first fix failed: %d\n%s", code, stdout)
	}
	a, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(a) != "ANON-0\n" {
		t.Fatalf("a.txt: %q", a)
	}

	// a second run against the rewritten tree must refuse the same prefix
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("SUB-9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, stderr, code := run(t, dir, "fix", "--prefix", "ANON")
	if code != 1 {
		t.Fatalf("expected collision exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "ANON") {
		t.Fatalf("collision message missing prefix:\n%s", stderr)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "new.txt")); string(got) != "SUB-9999\n" {
		t.Fatalf("collision run must not modify files: %q", got)
	}
}

func TestCLI_Fix_CleanTreeReportsNoReplacements(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"a.txt": "nothing sensitive\n",
	})
	stdout, _, code := run(t, dir, "fix")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "No replacements needed") {
		t.Fatalf("fix summary missing:\n%s", stdout)
	}
}

func TestCLI_Fix_DryRunLeavesFilesAlone(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"a.txt": "SUB-1234\n",
	})
	stdout, _, code := run(t, dir, "fix", "--dry-run")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout)
	}
	a, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(a) != "SUB-1234\n" {
		t.Fatalf("dry run modified a.txt: %q", a)
	}
	if !strings.Contains(stdout, "Dry run") {
		t.Fatalf("dry run notice missing:\n%s", stdout)
	}
}

func TestCLI_Init_YesWritesConfig(t *testing.T) {
	dir := t.TempDir()
	stdout, _, code := run(t, dir, "init", "--yes")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout)
	}
	raw, err := os.ReadFile(filepath.Join(dir, ".shredguard.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "[[patterns]]") {
		t.Fatalf("config missing patterns:\n%s", raw)
	}
	// generated config must be loadable
	_, _, code = run(t, dir, "check")
	if code != 0 && code != 1 {
		t.Fatalf("generated config not usable, exit %d", code)
	}
	// second init without --force refuses
	_, _, code = run(t, dir, "init", "--yes")
	if code != 1 {
		t.Fatalf("expected exit 1 on existing config, got %d", code)
	}
}

func TestCLI_BaselineSuppressesKnownMatches(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"a.txt": "SUB-1234\n",
	})
	_, _, code := run(t, dir, "baseline", "create")
	if code != 0 {
		t.Fatalf("baseline create failed: %d", code)
	}
	stdout, _, code := run(t, dir, "check", "--baseline", "shredguard.baseline.json")
	if code != 0 {
		t.Fatalf("baselined match still fails check: %d\n%s", code, stdout)
	}
	// a new value is still reported
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("SUB-1234\nSUB-5678\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, code = run(t, dir, "check", "--baseline", "shredguard.baseline.json")
	if code != 1 {
		t.Fatalf("new match not reported: %d\n%s", code, stdout)
	}
	if strings.Contains(stdout, "SUB-1234") || !strings.Contains(stdout, "SUB-5678") {
		t.Fatalf("baseline filtering wrong:\n%s", stdout)
	}
}
