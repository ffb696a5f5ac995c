package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"translation-notebook/internal/application/usecases"
	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/interfaces/telegram"
)

// maxUploadBytes caps the size of documents accepted for import
const maxUploadBytes = 20 << 20

// Messenger is the part of the Telegram bot the handler talks to
type Messenger interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	AnswerCallbackQuery(callbackID string, text string) error
	SendDocument(chatID int64, name string, data []byte) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// BotHandler handles Telegram bot interactions
type BotHandler struct {
	bot           Messenger
	pairs         *usecases.PairUseCase
	transfer      *usecases.TransferUseCase
	dispatcher    telegram.Dispatcher
	allowedChatID int64
	version       atomic.Uint64
	logger        *slog.Logger
}

// NewBotHandler creates a new bot handler. A non-zero allowedChatID makes
// the bot ignore every other chat.
func NewBotHandler(
	bot Messenger,
	pairs *usecases.PairUseCase,
	transfer *usecases.TransferUseCase,
	allowedChatID int64,
	logger *slog.Logger,
) *BotHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &BotHandler{
		bot:           bot,
		pairs:         pairs,
		transfer:      transfer,
		dispatcher:    telegram.NewDispatcher(),
		allowedChatID: allowedChatID,
		logger:        logger,
	}

	h.dispatcher.RegisterHandler("start", h.handleHelp)
	h.dispatcher.RegisterHandler("help", h.handleHelp)
	h.dispatcher.RegisterHandler("show", h.handleShow)
	h.dispatcher.RegisterHandler("next", h.handleNext)
	h.dispatcher.RegisterHandler("prev", h.handlePrev)
	h.dispatcher.RegisterHandler("goto", h.handleGoto)
	h.dispatcher.RegisterHandler("english", h.handleEnglish)
	h.dispatcher.RegisterHandler("spanish", h.handleSpanish)
	h.dispatcher.RegisterHandler("check", h.handleCheck)
	h.dispatcher.RegisterHandler("export", h.handleExport)
	h.dispatcher.RegisterDocumentHandler(h.handleDocument)

	return h
}

// Watch follows dataset version changes so the handler can report them
func (h *BotHandler) Watch(store dataset.Store) (cancel func()) {
	h.version.Store(store.Version())
	return store.Subscribe(func(version uint64) {
		h.version.Store(version)
		h.logger.Info("dataset changed", "version", version)
	})
}

// Start handles updates until ctx is cancelled or the channel closes.
// Updates are processed one at a time so edits never race each other.
func (h *BotHandler) Start(ctx context.Context, updates <-chan tgbotapi.Update) error {
	h.logger.Info("bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes a single update
func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		if !h.allowed(update.Message.Chat) {
			h.logger.Warn("ignoring message from foreign chat", "chat", update.Message.Chat.ID)
			return
		}
		err := h.dispatcher.Dispatch(ctx, update)
		if errors.Is(err, telegram.ErrUnhandled) {
			h.send(update.Message.Chat.ID, "Use /help to see what I can do.")
			return
		}
		if err != nil {
			h.logger.Error("failed to handle message", "chat", update.Message.Chat.ID, "err", err)
		}
	case update.CallbackQuery != nil:
		h.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func (h *BotHandler) allowed(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	return h.allowedChatID == 0 || chat.ID == h.allowedChatID
}

func (h *BotHandler) send(chatID int64, text string) {
	if err := h.bot.SendMessage(chatID, text); err != nil {
		h.logger.Error("failed to send message", "chat", chatID, "err", err)
	}
}
