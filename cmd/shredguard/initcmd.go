package shredguard

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/shredguard/shredguard/internal/files"
	"github.com/shredguard/shredguard/internal/rules"
	"github.com/shredguard/shredguard/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagInitYes       bool
	flagInitForce     bool
	flagInitPreCommit bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .shredguard.toml",
		Long:  "Init walks through pattern selection interactively and writes a config file to the current directory. Use --yes to accept the full starter catalog without prompts.",
		RunE:  runInit,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVarP(&flagInitYes, "yes", "y", false, "accept defaults without prompting")
	cmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing config file")
	cmd.Flags().BoolVar(&flagInitPreCommit, "pre-commit", false, "also add a shredguard hook to .pre-commit-config.yaml (implied interactively)")
}

func runInit(_ *cobra.Command, _ []string) error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	target := filepath.Join(root, ".shredguard.toml")
	if _, err := os.Stat(target); err == nil && !flagInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}

	var choice wizard.Result
	if flagInitYes || !isInteractive() {
		choice = wizard.Result{
			Definitions:   rules.CommonDefinitions(),
			Prefix:        "REDACTED",
			InstallHook:   flagInitPreCommit,
			AppendIgnores: true,
			Accepted:      true,
		}
	} else {
		choice, err = wizard.Run(rules.CommonDefinitions())
		if err != nil {
			return err
		}
		if !choice.Accepted {
			fmt.Fprintln(os.Stderr, "Aborted, no config written.")
			return nil
		}
	}

	content := wizard.RenderConfig(choice.Definitions, choice.Prefix)
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s with %d patterns.\n", target, len(choice.Definitions))

	if choice.AppendIgnores {
		for _, pattern := range files.DefaultSensitiveIgnores() {
			if err := files.AppendIgnore(root, pattern); err != nil {
				fmt.Fprintln(os.Stderr, "warning: could not update .gitignore:", err)
				break
			}
		}
	}
	if choice.InstallHook {
		if err := files.InstallPreCommitHook(root); err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not update .pre-commit-config.yaml:", err)
		} else {
			fmt.Fprintln(os.Stdout, "Added shredguard hook to .pre-commit-config.yaml.")
		}
	}
	if choice.CopyConfig {
		if err := clipboard.WriteAll(content); err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not copy to clipboard:", err)
		} else {
			fmt.Fprintln(os.Stdout, "Copied config to clipboard.")
		}
	}
	fmt.Fprintln(os.Stdout, "Run 'shredguard check' to scan.")
	return nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
