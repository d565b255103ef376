package shredguard

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shredguard/shredguard/internal/engine"
	"github.com/shredguard/shredguard/internal/report"
	"github.com/shredguard/shredguard/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagCheckAllFiles    bool
	flagCheckNoGitignore bool
	flagCheckJSON        bool
	flagCheckSARIF       bool
	flagCheckBaseline    string
	flagCheckContext     int
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Scan for PHI patterns and report matches",
		Long:  "Check scans the given paths (default: current directory) against the configured patterns and prints one line per match. Exits 1 when anything is found.",
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagCheckAllFiles, "all-files", false, "scan gitignored files and default-excluded directories too")
	cmd.Flags().BoolVar(&flagCheckNoGitignore, "no-gitignore", false, "ignore .gitignore files entirely")
	cmd.Flags().BoolVar(&flagCheckJSON, "json", false, "emit matches as JSON")
	cmd.Flags().BoolVar(&flagCheckSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().StringVar(&flagCheckBaseline, "baseline", "", "suppress matches recorded in this baseline file")
	cmd.Flags().IntVar(&flagCheckContext, "context", 0, "show N lines of context around each match")
}

func runCheck(_ *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	if !flagCheckJSON && !flagCheckSARIF {
		maybeNotifyUpdate()
	}

	res, err := engine.Run(s.engineConfig(args, flagCheckAllFiles, flagCheckNoGitignore), s.set)
	if err != nil {
		return err
	}

	matches := res.Matches
	if flagCheckBaseline != "" {
		base, err := report.LoadBaseline(flagCheckBaseline)
		if err != nil {
			return fmt.Errorf("load baseline: %w", err)
		}
		matches = report.FilterNew(matches, base)
	}
	if matches == nil {
		matches = []types.Match{} // no `null` in JSON
	}

	switch {
	case flagCheckSARIF:
		if err := report.WriteSARIF(os.Stdout, version, matches); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagCheckJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(matches); err != nil {
			return err
		}
	default:
		s.fmtr.PrintMatches(os.Stdout, matches)
		if flagCheckContext > 0 {
			for _, m := range matches {
				fmt.Fprintln(os.Stdout)
				if err := report.WriteContext(os.Stdout, s.root, m, flagCheckContext, s.fmtr.Color); err != nil && flagVerbose {
					fmt.Fprintln(os.Stderr, s.fmtr.Warning(err.Error()))
				}
			}
		}
		if len(matches) > 0 {
			fmt.Fprintln(os.Stdout)
		}
		files := map[string]bool{}
		for _, m := range matches {
			files[m.Path] = true
		}
		fmt.Fprintln(os.Stdout, s.fmtr.CheckSummary(len(matches), len(files), s.set.Len()))
	}

	if len(matches) > 0 {
		os.Exit(1)
	}
	return nil
}
