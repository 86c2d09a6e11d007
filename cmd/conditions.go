package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
)

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List every condition with its recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		table, err := advice.Lookup(cfg.ContentSet)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Content set: %s\n", table.Name())
		for _, c := range assessment.AllConditions() {
			fmt.Fprintf(out, "\n%s\n  %s\n", c, table.Recommend(c))
		}
		return nil
	},
}
