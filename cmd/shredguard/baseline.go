package shredguard

import (
	"fmt"
	"os"

	"github.com/shredguard/shredguard/internal/engine"
	"github.com/shredguard/shredguard/internal/report"
	"github.com/spf13/cobra"
)

var flagBaselinePath string

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	create := &cobra.Command{
		Use:   "create [path...]",
		Short: "Record current matches so check only reports new ones",
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadSetup()
			if err != nil {
				return err
			}
			res, err := engine.Run(s.engineConfig(args, false, false), s.set)
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(flagBaselinePath, res.Matches); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Baseline written to %s (%d matches).\n", flagBaselinePath, len(res.Matches))
			return nil
		},
	}
	create.Flags().StringVar(&flagBaselinePath, "baseline", report.DefaultBaselinePath, "baseline file to write")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(create)
}
