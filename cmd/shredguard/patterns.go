package shredguard

import (
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shredguard/shredguard/internal/rules"
	"github.com/spf13/cobra"
)

var flagPatternsBuiltin bool

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List configured patterns",
		Long:  "Patterns prints the compiled pattern set from the active config, or the built-in starter catalog with --builtin.",
		RunE:  runPatterns,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagPatternsBuiltin, "builtin", false, "list the built-in starter catalog instead of the configured set")
}

func runPatterns(_ *cobra.Command, _ []string) error {
	var set *rules.Set
	if flagPatternsBuiltin {
		compiled, err := rules.Compile(rules.CommonDefinitions())
		if err != nil {
			return err
		}
		set = compiled
	} else {
		s, err := loadSetup()
		if err != nil {
			return err
		}
		set = s.set
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("CODE", "DESCRIPTION", "REGEX", "FILES")
	for _, p := range set.Patterns() {
		scope := "*"
		if len(p.Files) > 0 {
			scope = strings.Join(p.Files, ", ")
		}
		if len(p.ExcludeFiles) > 0 {
			scope += " !" + strings.Join(p.ExcludeFiles, " !")
		}
		_ = table.Append(p.Code, p.Description, p.Regex.String(), scope)
	}
	return table.Render()
}
