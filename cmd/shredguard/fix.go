package shredguard

import (
	"fmt"
	"os"
	"time"

	"github.com/shredguard/shredguard/internal/audit"
	"github.com/shredguard/shredguard/internal/engine"
	"github.com/shredguard/shredguard/internal/redact"
	"github.com/spf13/cobra"
)

var (
	flagFixPrefix      string
	flagFixOutputMap   string
	flagFixDryRun      bool
	flagFixAllFiles    bool
	flagFixNoGitignore bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Replace PHI matches with stable pseudonyms",
		Long:  "Fix rewrites every match in place with {prefix}-{n} pseudonyms. The same value always maps to the same pseudonym within a run, numbered in the order values are first seen.",
		RunE:  runFix,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagFixPrefix, "prefix", "", "pseudonym prefix (default REDACTED)")
	cmd.Flags().StringVar(&flagFixOutputMap, "output-map", "", "write the value-to-pseudonym map to this JSON file")
	cmd.Flags().BoolVar(&flagFixDryRun, "dry-run", false, "report what would change without writing files")
	cmd.Flags().BoolVar(&flagFixAllFiles, "all-files", false, "scan gitignored files and default-excluded directories too")
	cmd.Flags().BoolVar(&flagFixNoGitignore, "no-gitignore", false, "ignore .gitignore files entirely")
}

func runFix(_ *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}
	prefix := pickString(flagFixPrefix, s.cfg.Prefix)
	if prefix == "" {
		prefix = "REDACTED"
	}

	started := time.Now()
	res, err := engine.Run(s.engineConfig(args, flagFixAllFiles, flagFixNoGitignore), s.set)
	if err != nil {
		return err
	}

	// Refuse to run when the tree already carries pseudonyms with this
	// prefix: a second pass could renumber or double-replace them.
	if collisions := redact.CheckPrefix(s.root, res.Files, prefix); len(collisions) > 0 {
		fmt.Fprintln(os.Stderr, s.fmtr.CollisionError(prefix, collisions))
		os.Exit(1)
	}

	if len(res.Matches) == 0 {
		fmt.Fprintln(os.Stdout, s.fmtr.FixSummary(redact.Result{}))
		return nil
	}

	assigner := redact.NewAssigner(prefix)
	fixed := redact.Rewrite(s.root, res.Matches, assigner, flagFixDryRun)

	if flagFixOutputMap != "" && !flagFixDryRun {
		if err := assigner.WriteMap(flagFixOutputMap); err != nil {
			return fmt.Errorf("write map: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Mapping written to: %s\n", flagFixOutputMap)
	}

	for _, fe := range fixed.Failed {
		fmt.Fprintln(os.Stderr, s.fmtr.Warning("skipped "+fe.Error()))
	}
	if flagFixDryRun {
		fmt.Fprintln(os.Stdout, "Dry run, no files written.")
	}
	fmt.Fprintln(os.Stdout, s.fmtr.FixSummary(fixed))

	if !flagFixDryRun {
		record := audit.FixRecord{
			Timestamp:     started,
			Root:          s.root,
			Prefix:        prefix,
			FilesModified: fixed.FilesModified,
			Replacements:  fixed.Replacements,
			UniqueValues:  fixed.UniqueValues,
			MapPath:       flagFixOutputMap,
			Duration:      time.Since(started).Round(time.Millisecond).String(),
		}
		for _, fe := range fixed.Failed {
			record.Failed = append(record.Failed, fe.Path)
		}
		if err := audit.NewLog(s.root).Append(record); err != nil && flagVerbose {
			fmt.Fprintln(os.Stderr, s.fmtr.Warning(err.Error()))
		}
	}

	if len(fixed.Failed) > 0 {
		os.Exit(1)
	}
	return nil
}
