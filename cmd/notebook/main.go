// Command notebook keeps a numbered list of english paragraphs and their
// spanish translations in SQLite, and moves the whole notebook in and out
// as a single JSON document.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"translation-notebook/internal/application/usecases"
	"translation-notebook/internal/config"
	"translation-notebook/internal/infrastructure/persistence"
	"translation-notebook/internal/logging"
)

var version = "dev"

// app holds everything the subcommands share
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	session  *persistence.Session
	pairs    *usecases.PairUseCase
	transfer *usecases.TransferUseCase
}

var (
	configFile string
	envFile    string
	dbPath     string
	current    *app
)

var rootCmd = &cobra.Command{
	Use:           "notebook",
	Short:         "Bilingual translation notebook",
	Long:          `Stores english paragraphs with their spanish translations and exports or imports the whole notebook as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		return current.session.Close()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment if present")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config and $"+config.EnvDBPath+")")

	rootCmd.AddCommand(versionCmd)
}

func newApp() (*app, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	session := persistence.NewSession(persistence.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		Logger: logger,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		session:  session,
		pairs:    usecases.NewPairUseCase(session, cfg.Seed.Placeholder, logger).WithCheckPrompt(cfg.Prompt.Text),
		transfer: usecases.NewTransferUseCase(session, logger),
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "notebook: %v\n", err)
		os.Exit(1)
	}
}
