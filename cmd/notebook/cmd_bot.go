package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"translation-notebook/internal/config"
	"translation-notebook/internal/infrastructure/telegram"
	"translation-notebook/internal/interfaces/telegram/handlers"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot used to read and translate pairs",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := current.cfg
	if cfg.Telegram.Token == "" {
		return errors.New(config.EnvBotToken + " environment variable is required")
	}

	// Open eagerly so a broken database stops the bot before it starts polling.
	if err := current.session.Open(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	bot, err := telegram.NewBot(cfg.Telegram.Token, current.logger)
	if err != nil {
		return err
	}

	if err := bot.SetupCommands(); err != nil {
		current.logger.Warn("failed to setup bot commands, they won't show in Telegram's menu", "err", err)
	}

	handler := handlers.NewBotHandler(bot, current.pairs, current.transfer, cfg.Telegram.AllowedChatID, current.logger)
	defer handler.Watch(current.session)()

	updates := bot.GetUpdatesChan()
	defer bot.StopReceivingUpdates()

	return handler.Start(ctx, updates)
}
