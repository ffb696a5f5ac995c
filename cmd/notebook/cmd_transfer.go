package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/infrastructure/filesystem"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the whole notebook as JSON (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the whole notebook with a JSON export (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Import every JSON export dropped into DIR",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of export documents",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, watchCmd, schemaCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := current.transfer.ExportJSON(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := filesystem.WriteExport(args[0], data); err != nil {
		return err
	}
	current.logger.Info("exported notebook", "file", args[0], "bytes", len(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := filesystem.ReadImport(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	return current.transfer.Import(cmd.Context(), data)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create inbox: %w", err)
	}
	inbox := filesystem.NewInbox(dir, current.transfer.Import, current.logger)
	return inbox.Run(cmd.Context(), nil)
}

func runSchema(cmd *cobra.Command, args []string) error {
	schema, err := dataset.Schema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
	return err
}
