package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/carlmjohnson/requests"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram bot API
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

// NewBot creates a new Telegram bot
func NewBot(token string, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = false
	logger.Info("authorized on telegram", "account", api.Self.UserName)

	return &Bot{api: api, logger: logger}, nil
}

// GetUpdatesChan returns a channel for receiving updates
func (b *Bot) GetUpdatesChan() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return b.api.GetUpdatesChan(u)
}

// StopReceivingUpdates stops the long polling loop
func (b *Bot) StopReceivingUpdates() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a plain text message
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

// SendMessageWithKeyboard sends a message with inline keyboard
func (b *Bot) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

// AnswerCallbackQuery answers a callback query
func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := b.api.Request(callback)
	return err
}

// SendDocument uploads data as a file named name
func (b *Bot) SendDocument(chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	_, err := b.api.Send(doc)
	return err
}

// DownloadFile fetches the content of a file users sent to the bot
func (b *Bot) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file URL: %w", err)
	}

	var buf bytes.Buffer
	if err := requests.URL(url).ToBytesBuffer(&buf).Fetch(ctx); err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return buf.Bytes(), nil
}

// SetupCommands configures the bot commands with BotFather
func (b *Bot) SetupCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "show", Description: "Show the current pair"},
		{Command: "next", Description: "Move to the next pair"},
		{Command: "prev", Description: "Move to the previous pair"},
		{Command: "goto", Description: "Jump to a pair by index"},
		{Command: "english", Description: "Replace the english text"},
		{Command: "spanish", Description: "Replace the spanish translation"},
		{Command: "check", Description: "Get a review prompt for the current pair"},
		{Command: "export", Description: "Download every pair as data.json"},
		{Command: "help", Description: "Get help and instructions"},
	}

	setCommands := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(setCommands); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	b.logger.Info("bot commands configured")
	return nil
}
