package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/assessment"
)

var assessCmd = &cobra.Command{
	Use:   "assess [file]",
	Short: "Assess a JSON record from a file or stdin and print the JSON result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		rec, err := assessment.DecodeRecord(data)
		if err != nil {
			return err
		}

		e, err := setup(cmd, setupOpts{store: true, service: true})
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.svc.Assess(cmd.Context(), rec)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return data, nil
}
