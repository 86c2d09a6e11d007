package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/prompt"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer the questionnaire line by line",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, setupOpts{store: true, service: true})
		if err != nil {
			return err
		}
		defer e.Close()

		_, err = prompt.Run(cmd.Context(), prompt.New(os.Stdin, cmd.OutOrStdout()), e.svc)
		if errors.Is(err, prompt.ErrClosed) {
			fmt.Fprintln(cmd.ErrOrStderr(), "\nInput closed, no assessment made.")
			return nil
		}
		return err
	},
}
