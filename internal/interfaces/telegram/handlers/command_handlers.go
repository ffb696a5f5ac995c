package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"translation-notebook/internal/domain/pair"
	"translation-notebook/internal/interfaces/telegram/handlers/shared"
)

// handleHelp processes the /start and /help commands
func (h *BotHandler) handleHelp(ctx context.Context, message *tgbotapi.Message) error {
	return h.bot.SendMessage(message.Chat.ID, shared.GetHelpText(h.version.Load()))
}

// handleShow processes the /show command
func (h *BotHandler) handleShow(ctx context.Context, message *tgbotapi.Message) error {
	return h.showCurrent(ctx, message.Chat.ID)
}

// handleNext processes the /next command
func (h *BotHandler) handleNext(ctx context.Context, message *tgbotapi.Message) error {
	return h.move(ctx, message.Chat.ID, 1)
}

// handlePrev processes the /prev command
func (h *BotHandler) handlePrev(ctx context.Context, message *tgbotapi.Message) error {
	return h.move(ctx, message.Chat.ID, -1)
}

// handleGoto processes the /goto command
func (h *BotHandler) handleGoto(ctx context.Context, message *tgbotapi.Message) error {
	arg := strings.TrimSpace(message.CommandArguments())
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n < 0 {
		return h.bot.SendMessage(message.Chat.ID, "Usage: /goto N, where N is 0 or more.")
	}

	index, p, err := h.pairs.Goto(ctx, pair.Index(n))
	if err != nil {
		h.bot.SendMessage(message.Chat.ID, "Sorry, I could not move the cursor.")
		return err
	}
	return h.sendPair(message.Chat.ID, index, p)
}

// handleEnglish processes the /english command
func (h *BotHandler) handleEnglish(ctx context.Context, message *tgbotapi.Message) error {
	return h.edit(ctx, message, func(p *pair.Pair, text string) { p.English = text })
}

// handleSpanish processes the /spanish command
func (h *BotHandler) handleSpanish(ctx context.Context, message *tgbotapi.Message) error {
	return h.edit(ctx, message, func(p *pair.Pair, text string) { p.Spanish = text })
}

// handleCheck processes the /check command. The reply is meant to be pasted
// into a chat assistant.
func (h *BotHandler) handleCheck(ctx context.Context, message *tgbotapi.Message) error {
	index, text, err := h.pairs.CheckPrompt(ctx)
	if err != nil {
		h.bot.SendMessage(message.Chat.ID, "Sorry, I could not load the current pair.")
		return err
	}
	h.logger.Debug("built check prompt", "index", index)
	return h.bot.SendMessage(message.Chat.ID, text)
}
