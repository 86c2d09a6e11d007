package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/logger"
	"github.com/abhisek/mindcheck/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Smoke-test a running assessment API",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "mindcheck-probe", cfg.LogFile)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		out := cmd.OutOrStdout()
		failed := 0
		for _, c := range probe.New(url, timeout, log).Run(cmd.Context()) {
			mark := "✓"
			if !c.OK {
				mark = "✗"
				failed++
			}
			fmt.Fprintf(out, "%s %-8s %-14s %d\n", mark, c.Name, c.Path, c.Status)
			if c.Err != nil {
				fmt.Fprintf(out, "    error: %v\n", c.Err)
			}
			if len(c.Body) > 0 {
				fmt.Fprintf(out, "    %s\n", c.Body)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func init() {
	probeCmd.Flags().String("url", "http://localhost:5000", "Base URL of the running API")
	probeCmd.Flags().Duration("timeout", 10*time.Second, "Per-request timeout")
}
