package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindcheck",
	Short: "Student wellbeing screening",
	Long: `MindCheck screens students for common mental-health conditions from ten
questions about sleep, study and school life, and returns a recommendation.

It is a screening aid, not a diagnosis.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "History database path or postgres:// DSN (overrides MINDCHECK_DB)")
	pf.String("strategy", "", "Decision strategy: rules or forest (overrides MINDCHECK_STRATEGY)")
	pf.String("content", "", "Recommendation content set (overrides MINDCHECK_CONTENT)")
	pf.String("model-dir", "", "Forest artifact directory (overrides MINDCHECK_MODEL_DIR)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: json or console")
	pf.String("env-file", "", "Env file to load before reading MINDCHECK_* variables (default .env)")
	pf.Bool("no-history", false, "Do not record assessments")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(conditionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured DSN, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = configured
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
