package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"translation-notebook/internal/domain/pair"
	"translation-notebook/internal/interfaces/telegram/handlers/shared"
)

// handleCallbackQuery processes the navigation keyboard
func (h *BotHandler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || !h.allowed(callback.Message.Chat) {
		return
	}

	// Answer the callback to remove loading state
	if err := h.bot.AnswerCallbackQuery(callback.ID, ""); err != nil {
		h.logger.Warn("failed to answer callback query", "err", err)
	}

	chatID := callback.Message.Chat.ID
	var err error
	switch callback.Data {
	case shared.CallbackPrev:
		err = h.move(ctx, chatID, -1)
	case shared.CallbackNext:
		err = h.move(ctx, chatID, 1)
	case shared.CallbackShow:
		err = h.showCurrent(ctx, chatID)
	default:
		h.logger.Warn("unknown callback data", "data", callback.Data)
		return
	}
	if err != nil {
		h.logger.Error("failed to handle callback", "data", callback.Data, "err", err)
	}
}

// showCurrent sends the pair under the cursor
func (h *BotHandler) showCurrent(ctx context.Context, chatID int64) error {
	index, p, err := h.pairs.Current(ctx)
	if err != nil {
		h.bot.SendMessage(chatID, "Sorry, there was an error reading the notebook.")
		return err
	}
	return h.sendPair(chatID, index, p)
}

// move shifts the cursor and sends the pair it lands on
func (h *BotHandler) move(ctx context.Context, chatID int64, delta int64) error {
	index, p, err := h.pairs.Move(ctx, delta)
	if err != nil {
		h.bot.SendMessage(chatID, "Sorry, I could not move the cursor.")
		return err
	}
	return h.sendPair(chatID, index, p)
}

// edit replaces one side of the pair under the cursor with the command argument
func (h *BotHandler) edit(ctx context.Context, message *tgbotapi.Message, apply func(p *pair.Pair, text string)) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.CommandArguments())
	if text == "" {
		return h.bot.SendMessage(chatID, "Write the new text after the command, e.g. /"+message.Command()+" Hola")
	}

	index, current, err := h.pairs.Current(ctx)
	if err != nil {
		h.bot.SendMessage(chatID, "Sorry, there was an error reading the notebook.")
		return err
	}

	var updated pair.Pair
	if current != nil {
		updated = *current
	}
	apply(&updated, text)

	if err := h.pairs.PutPair(ctx, index, updated); err != nil {
		h.bot.SendMessage(chatID, "Sorry, your change was not saved.")
		return err
	}
	return h.sendPair(chatID, index, &updated)
}

func (h *BotHandler) sendPair(chatID int64, index pair.Index, p *pair.Pair) error {
	return h.bot.SendMessageWithKeyboard(chatID, shared.FormatPair(index, p), shared.CreateNavigationKeyboard())
}
