package engine

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shredguard/shredguard/internal/ignore"
)

func write(t *testing.T, dir, name string, body []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, body, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDiscover_OrderAndGitignore(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.txt", []byte("b"))
	write(t, dir, "a.txt", []byte("a"))
	write(t, dir, "ignored.txt", []byte("x"))
	write(t, dir, ".gitignore", []byte("ignored.txt\n"))

	cfg := Config{Root: dir, RespectGitignore: true}
	ign := ignore.Load(dir, true)
	files, err := Discover(cfg, ign)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".gitignore", "a.txt", "b.txt"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("got %v want %v", files, want)
	}
}

func TestDiscover_BinarySkip(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "text.txt", []byte("SUB-1234"))
	bin := make([]byte, 100)
	bin[50] = 0x00
	write(t, dir, "blob.bin", bin)

	var warned []string
	cfg := Config{Root: dir, Verbose: true, Warn: func(f string, a ...any) {
		warned = append(warned, f)
	}}
	files, err := Discover(cfg, ignore.Matcher{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(files, []string{"text.txt"}) {
		t.Fatalf("expected binary excluded, got %v", files)
	}
	if len(warned) == 0 {
		t.Fatal("expected a verbose warning for the skipped binary")
	}
}

func TestDiscover_NulBeyondSniffWindow(t *testing.T) {
	dir := t.TempDir()
	// NUL after the first 8192 bytes: the heuristic deliberately misses it.
	body := make([]byte, binarySniffLen+10)
	for i := range body {
		body[i] = 'a'
	}
	body[binarySniffLen+5] = 0x00
	write(t, dir, "late-nul.dat", body)

	files, err := Discover(Config{Root: dir}, ignore.Matcher{})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected file kept when NUL is beyond sniff window, got %v", files)
	}
}

func TestDiscover_SkipsVCSAndNoiseDirs(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "keep.txt", []byte("x"))
	write(t, dir, ".git/objects/aa", []byte("x"))
	write(t, dir, "node_modules/pkg/index.js", []byte("x"))

	files, err := Discover(Config{Root: dir}, ignore.Matcher{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(files, []string{"keep.txt"}) {
		t.Fatalf("got %v", files)
	}

	// --all-files keeps noise dirs but never VCS metadata
	files, err = Discover(Config{Root: dir, AllFiles: true}, ignore.Matcher{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"keep.txt", "node_modules/pkg/index.js"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("got %v want %v", files, want)
	}
}

func TestDiscover_ExplicitFileRoots(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, "data.csv", []byte("SUB-1234"))
	write(t, dir, ".gitignore", []byte("data.csv\n"))
	ign := ignore.Load(dir, true)

	cfg := Config{Root: dir, Paths: []string{p}}
	files, err := Discover(cfg, ign)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("explicitly ignored file should be filtered, got %v", files)
	}

	cfg.AllFiles = true
	files, err = Discover(cfg, ign)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(files, []string{"data.csv"}) {
		t.Fatalf("--all-files should bypass gitignore for explicit files, got %v", files)
	}
}

func TestDiscover_MissingRootNotFatal(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "ok.txt", []byte("x"))
	cfg := Config{Root: dir, Paths: []string{filepath.Join(dir, "gone.txt"), filepath.Join(dir, "ok.txt")}}
	files, err := Discover(cfg, ignore.Matcher{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(files, []string{"ok.txt"}) {
		t.Fatalf("got %v", files)
	}
}
