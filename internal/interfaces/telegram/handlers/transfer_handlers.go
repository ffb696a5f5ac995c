package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/infrastructure/filesystem"
)

// handleExport processes the /export command
func (h *BotHandler) handleExport(ctx context.Context, message *tgbotapi.Message) error {
	data, err := h.transfer.ExportJSON(ctx)
	if err != nil {
		h.bot.SendMessage(message.Chat.ID, "Sorry, the export failed.")
		return err
	}
	return h.bot.SendDocument(message.Chat.ID, filesystem.DefaultExportName, data)
}

// handleDocument imports an uploaded export document
func (h *BotHandler) handleDocument(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	doc := message.Document
	if doc.FileSize > maxUploadBytes {
		return h.bot.SendMessage(chatID, fmt.Sprintf("That file is too large (limit %d MB).", maxUploadBytes>>20))
	}

	data, err := h.bot.DownloadFile(ctx, doc.FileID)
	if err != nil {
		h.bot.SendMessage(chatID, "Sorry, I could not download that file.")
		return err
	}

	err = h.transfer.Import(ctx, data)
	switch {
	case err == nil:
		h.logger.Info("imported uploaded document", "chat", chatID, "file", doc.FileName)
		return h.bot.SendMessage(chatID, "✅ Notebook replaced. Use /show to continue.")
	case errors.Is(err, dataset.ErrImportMalformed):
		return h.bot.SendMessage(chatID, "That file is not a notebook export. Nothing was changed.")
	case errors.Is(err, dataset.ErrTransactionAborted):
		h.bot.SendMessage(chatID, "The import failed halfway and was rolled back. Nothing was changed.")
		return err
	default:
		h.bot.SendMessage(chatID, "Sorry, the notebook is unavailable right now.")
		return err
	}
}
