package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

var getCmd = &cobra.Command{
	Use:   "get INDEX",
	Short: "Print the pair stored at INDEX",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var putCmd = &cobra.Command{
	Use:   "put INDEX ENGLISH SPANISH",
	Short: "Store a pair at INDEX, replacing what was there",
	Args:  cobra.ExactArgs(3),
	RunE:  runPut,
}

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Read or write metadata (currentIndex, maxIndex)",
}

var metaGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a metadata value",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetaGet,
}

var metaSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a metadata value",
	Args:  cobra.ExactArgs(2),
	RunE:  runMetaSet,
}

func init() {
	metaCmd.AddCommand(metaGetCmd, metaSetCmd)
	rootCmd.AddCommand(getCmd, putCmd, metaCmd)
}

func parseIndex(s string) (pair.Index, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	index := pair.Index(n)
	if err := index.Validate(); err != nil {
		return 0, err
	}
	return index, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	p, err := current.pairs.GetPair(cmd.Context(), index)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d: absent\n", index)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "#%d\nenglish: %s\nspanish: %s\n", index, p.English, p.Spanish)
	return nil
}

func runPut(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return current.pairs.PutPair(cmd.Context(), index, pair.Pair{English: args[1], Spanish: args[2]})
}

func runMetaGet(cmd *cobra.Command, args []string) error {
	key, err := meta.ParseKey(args[0])
	if err != nil {
		return err
	}

	value, ok, err := current.pairs.GetMeta(cmd.Context(), key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: absent\n", key)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", key, value)
	return nil
}

func runMetaSet(cmd *cobra.Command, args []string) error {
	key, err := meta.ParseKey(args[0])
	if err != nil {
		return err
	}
	value, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}
	return current.pairs.SetMeta(cmd.Context(), key, value)
}
