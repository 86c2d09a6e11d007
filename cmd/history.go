package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/report"
	"github.com/abhisek/mindcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded assessments",
}

// openHistory opens the store for a read-only history command.
func openHistory(cmd *cobra.Command) (*env, store.EventRepo, error) {
	e, err := setup(cmd, setupOpts{store: true})
	if err != nil {
		return nil, nil, err
	}
	repo := e.Repo()
	if repo == nil {
		e.Close()
		return nil, nil, fmt.Errorf("history is disabled")
	}
	return e, repo, nil
}

// parseDay accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (local midnight).
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

func historyOpts(cmd *cobra.Command) (store.QueryOpts, error) {
	var opts store.QueryOpts
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Condition, _ = cmd.Flags().GetString("condition")
	if since, _ := cmd.Flags().GetString("since"); since != "" {
		t, err := parseDay(since)
		if err != nil {
			return opts, err
		}
		opts.From = t
	}
	return opts, nil
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := historyOpts(cmd)
		if err != nil {
			return err
		}
		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := repo.QueryAssessments(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No assessments found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-20s  %-8s  %s\n",
			"ID", "Timestamp", "Condition", "Strategy", "Rule")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, ev := range events {
			fmt.Fprintf(out, "%-36s  %-19s  %-20s  %-8s  %s\n",
				ev.AssessmentID,
				ev.Timestamp.Local().Format(timeLayout),
				ev.Condition,
				ev.Strategy,
				ev.MatchedRule,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <assessment-id>",
	Short: "Show one assessment with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := repo.GetAssessment(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get assessment: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("assessment %s not found", args[0])
		}

		out := cmd.OutOrStdout()
		f := ev.Features
		fmt.Fprintf(out, "ID:          %s\n", ev.AssessmentID)
		fmt.Fprintf(out, "Time:        %s\n", ev.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(out, "Strategy:    %s\n", ev.Strategy)
		fmt.Fprintf(out, "Content set: %s\n", ev.ContentSet)
		fmt.Fprintf(out, "Condition:   %s\n", ev.Condition)
		if ev.MatchedRule != "" {
			fmt.Fprintf(out, "Rule:        %s\n", ev.MatchedRule)
		}

		sep := strings.Repeat("─", 60)
		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "ANSWERS")
		fmt.Fprintln(out, sep)
		fmt.Fprintf(out, "Sleep hours:          %d\n", f.SleepHours)
		fmt.Fprintf(out, "Academic performance: %s\n", f.AcademicPerformance)
		fmt.Fprintf(out, "Bullied:              %v\n", f.Bullied)
		fmt.Fprintf(out, "Close friends:        %v\n", f.HasCloseFriends)
		fmt.Fprintf(out, "Homesick level:       %d\n", f.HomesickLevel)
		fmt.Fprintf(out, "Mess food rating:     %d\n", f.MessFoodRating)
		fmt.Fprintf(out, "Sports:               %v\n", f.SportsParticipation)
		fmt.Fprintf(out, "Social activities:    %d\n", f.SocialActivities)
		fmt.Fprintf(out, "Study hours:          %d\n", f.StudyHours)
		fmt.Fprintf(out, "Screen time:          %d\n", f.ScreenTime)

		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "RECOMMENDATION")
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, ev.Recommendation)
		if ev.Note != "" {
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, "NOTE")
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, ev.Note)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export assessments and a per-condition summary to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := historyOpts(cmd)
		if err != nil {
			return err
		}
		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		events, err := repo.QueryAssessments(ctx, opts)
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		counts, err := repo.CountByCondition(ctx, store.QueryOpts{From: opts.From, Condition: opts.Condition})
		if err != nil {
			return fmt.Errorf("count assessments: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := report.WriteHistory(f, events, counts); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d assessments to %s\n", len(events), args[0])
		return nil
	},
}

var historyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete assessments recorded before a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		beforeStr, _ := cmd.Flags().GetString("before")
		before, err := parseDay(beforeStr)
		if err != nil {
			return err
		}

		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := repo.PurgeAssessments(cmd.Context(), before)
		if err != nil {
			return fmt.Errorf("purge assessments: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d assessments recorded before %s\n",
			n, before.Local().Format(timeLayout))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("condition", "", "Only include assessments with this outcome")
		c.Flags().String("since", "", "Only include assessments on or after this date (YYYY-MM-DD)")
	}
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	historyExportCmd.Flags().IntP("limit", "n", 0, "Maximum assessments to export (0 = all)")

	historyPurgeCmd.Flags().String("before", "", "Delete assessments recorded before this date (YYYY-MM-DD)")
	_ = historyPurgeCmd.MarkFlagRequired("before")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyPurgeCmd)
}
