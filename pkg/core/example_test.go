package core_test

import (
	"fmt"
	"os"

	"github.com/shredguard/shredguard/pkg/core"
)

// ExampleCheck demonstrates how to scan a directory for PHI patterns.
func ExampleCheck() {
	// 1. Compile a pattern set (usually loaded from shredguard.toml)
	set, err := core.CompileRules([]core.Definition{
		{Regex: `SUB-\d{4,6}`, Description: "Subject identifier"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad pattern: %v\n", err)
		return
	}

	// 2. Run the scan
	matches, err := core.Check(core.Config{
		Root:             ".",
		RespectGitignore: true,
		Threads:          4,
	}, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		return
	}

	// 3. Process matches
	if len(matches) == 0 {
		fmt.Println("No PHI found.")
	} else {
		fmt.Printf("Found %d matches.\n", len(matches))
		_ = core.MarshalMatches(os.Stdout, matches)
	}
}

// ExampleFix shows how to rewrite matches with stable pseudonyms.
func ExampleFix() {
	set, err := core.CompileRules(core.CommonDefinitions())
	if err != nil {
		panic(err)
	}

	res, mapping, err := core.Fix(core.Config{Root: "testdata/repo"}, set, "REDACTED")
	if err != nil {
		panic(err)
	}

	fmt.Printf("Replaced %d occurrences in %d files\n", res.Replacements, res.FilesModified)
	for _, e := range mapping {
		fmt.Printf("%s -> %s\n", e.Original, e.Pseudonym)
	}
}
