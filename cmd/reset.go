package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every recorded assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete history without --yes")
		}

		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := repo.PurgeAssessments(cmd.Context(), time.Now().Add(time.Second))
		if err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d assessments\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
