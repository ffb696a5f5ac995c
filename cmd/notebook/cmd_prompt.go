package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [INDEX]",
	Short: "Print a review prompt for a pair (the cursor pair when INDEX is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 0 {
		_, prompt, err := current.pairs.CheckPrompt(cmd.Context())
		if err != nil {
			return err
		}
		text = prompt
	} else {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if text, err = current.pairs.CheckPromptAt(cmd.Context(), index); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
