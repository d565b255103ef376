package shredguard

import (
	"fmt"
	"os"

	"github.com/shredguard/shredguard/internal/update"
	"github.com/spf13/cobra"
)

func updateCheck(current string) (string, bool, error) {
	return update.Check(current, false)
}

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update shredguard to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := updateCheck(version)
			if err == nil && !newer && latest != "" {
				fmt.Fprintf(os.Stdout, "Already up to date (v%s).\n", latest)
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Fprintln(os.Stdout, "Updated to the latest release.")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
