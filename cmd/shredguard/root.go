package shredguard

import (
	"fmt"
	"os"

	"github.com/shredguard/shredguard/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagConfig        string
	flagNoColor       bool
	flagVerbose       bool
	flagThreads       int
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the ShredGuard CLI.
var rootCmd = &cobra.Command{
	Use:           "shredguard",
	Short:         "Find and pseudonymize PHI in your files",
	Long:          "ShredGuard scans files for user-defined PHI patterns and replaces occurrences with stable pseudonyms before data leaves a trusted environment.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the ShredGuard CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		f := report.NewFormatter(flagNoColor)
		fmt.Fprintln(os.Stderr, f.Error(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: search for .shredguard.toml upward)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "report skipped files and other diagnostics")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
