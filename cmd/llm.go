package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/llm"
	"github.com/abhisek/mindcheck/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

func rule(out io.Writer, width int) {
	fmt.Fprintln(out, strings.Repeat("─", width))
}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded coach-note model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts store.QueryOpts
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")

		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := repo.QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}

		const row = "%-5v  %-19s  %-12s  %-30s  %6v  %6v  %7v  %s\n"
		fmt.Fprintf(out, row, "ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		rule(out, 100)
		for _, ev := range events {
			status := "✓"
			if !ev.Success {
				status = "✗"
			}
			fmt.Fprintf(out, row,
				ev.ID, ev.Timestamp.Local().Format(timeLayout), ev.Purpose, clip(ev.Model, 30),
				ev.InputTokens, ev.OutputTokens, ev.LatencyMs, status)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event id must be a number, got %q", args[0])
		}

		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := repo.GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("llm event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", ev.ID)
		fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(out, "Provider:  %s (%s)\n", ev.Provider, ev.Model)
		fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
		fmt.Fprintf(out, "Tokens:    %d in, %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
		if ev.Success {
			fmt.Fprintln(out, "Status:    ok")
		} else {
			fmt.Fprintf(out, "Status:    failed: %s\n", ev.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"PROMPT", ev.RequestBody},
			{"REPLY", ev.ResponseBody},
		} {
			fmt.Fprintln(out)
			rule(out, 60)
			fmt.Fprintln(out, part.title)
			rule(out, 60)
			if part.body == "" {
				fmt.Fprintln(out, "(empty)")
			} else {
				fmt.Fprintln(out, part.body)
			}
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, repo, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		printPurposeUsage(out, byPurpose)
		fmt.Fprintln(out)
		printModelCost(out, byModel)
		return nil
	},
}

func printPurposeUsage(out io.Writer, usage []store.LLMUsage) {
	const row = "%-16s  %6v  %10v  %10v  %8v\n"
	fmt.Fprintf(out, row, "Purpose", "Calls", "Input", "Output", "Avg ms")
	rule(out, 60)
	var calls, in, outTok int
	for _, u := range usage {
		fmt.Fprintf(out, row, u.Key, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	rule(out, 60)
	fmt.Fprintf(out, row, "TOTAL", calls, in, outTok, "")
}

func printModelCost(out io.Writer, usage []store.LLMUsage) {
	const row = "%-32s  %6v  %10v  %10v  %9s\n"
	fmt.Fprintln(out, "Estimated cost (USD)")
	fmt.Fprintf(out, row, "Model", "Calls", "Input", "Output", "Cost")
	rule(out, 76)

	var total float64
	var unpriced []string
	for _, u := range usage {
		price := "?"
		if c := llm.LookupCost(u.Key); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			price = formatUSD(usd)
		} else {
			unpriced = append(unpriced, u.Key)
		}
		fmt.Fprintf(out, row, clip(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, price)
	}
	rule(out, 76)

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, row, label, "", "", "", formatUSD(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func formatUSD(v float64) string {
	if v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose, e.g. coach-note")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
