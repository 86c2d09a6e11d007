package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each condition was predicted",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts store.QueryOpts
		if since, _ := cmd.Flags().GetString("since"); since != "" {
			t, err := parseDay(since)
			if err != nil {
				return err
			}
			opts.From = t
		}

		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		counts, err := repo.CountByCondition(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("count assessments: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintln(out, "No assessments recorded yet.")
			return nil
		}

		total := 0
		for _, c := range counts {
			total += c.Count
		}

		fmt.Fprintf(out, "%-22s  %6s  %6s\n", "Condition", "Count", "Share")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, c := range counts {
			fmt.Fprintf(out, "%-22s  %6d  %5.1f%%\n",
				c.Condition, c.Count, float64(c.Count)/float64(total)*100)
		}
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-22s  %6d\n", "TOTAL", total)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("since", "", "Only count assessments on or after this date (YYYY-MM-DD)")
}
