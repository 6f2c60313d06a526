package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/voca-career/internal/advisor"
	"github.com/jonathan/voca-career/internal/observability"
	"github.com/jonathan/voca-career/internal/profile"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <profile.json>",
	Short: "Print the prompt built for a profile",
	Long:  "Normalize a profile file and print the exact prompt that would be sent to the provider. No credential is needed and no request is made.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrompt,
}

var promptContextOnly bool

func init() {
	promptCmd.Flags().BoolVar(&promptContextOnly, "context-only", false, "Print only the normalized profile line")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	req, err := readProfileRequest(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	pctx, err := profile.Normalize(req.UserType, req.FormData)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintContext(pctx)
	}

	if promptContextOnly {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), pctx)
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), advisor.BuildPrompt(pctx))
	return err
}
