package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"translation-notebook/internal/infrastructure/filesystem"
)

var seedCmd = &cobra.Command{
	Use:   "seed TEXTFILE",
	Short: "Split a text file into paragraphs and store those not yet in the notebook",
	Long: `Each paragraph becomes the english side of the pair at its position. Pairs
that already have english text are left alone; new ones get the configured
placeholder as their spanish side.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	loader := filesystem.NewParagraphLoader(current.cfg.Seed.MinSentences)
	paragraphs, err := loader.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	seeded, err := current.pairs.Seed(cmd.Context(), paragraphs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d paragraphs, %d new pairs\n", len(paragraphs), seeded)
	return nil
}
