package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrUnhandled is returned by Dispatch when no handler matches the update
var ErrUnhandled = errors.New("no handler for update")

// HandlerFunc is a function that handles a Telegram message
type HandlerFunc func(ctx context.Context, message *tgbotapi.Message) error

// Dispatcher handles routing of Telegram updates to appropriate handlers
type Dispatcher interface {
	// RegisterHandler registers a handler for a specific command
	RegisterHandler(command string, handler HandlerFunc)
	// RegisterDocumentHandler registers the handler for uploaded files
	RegisterDocumentHandler(handler HandlerFunc)
	// Dispatch dispatches an update to the appropriate handler
	Dispatch(ctx context.Context, update tgbotapi.Update) error
}

// NewDispatcher creates a new dispatcher instance
func NewDispatcher() Dispatcher {
	return &defaultDispatcher{
		handlers: make(map[string]HandlerFunc),
	}
}

type defaultDispatcher struct {
	handlers  map[string]HandlerFunc
	documents HandlerFunc
}

func (d *defaultDispatcher) RegisterHandler(command string, handler HandlerFunc) {
	d.handlers[command] = handler
}

func (d *defaultDispatcher) RegisterDocumentHandler(handler HandlerFunc) {
	d.documents = handler
}

func (d *defaultDispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) error {
	message := update.Message
	if message == nil {
		return ErrUnhandled
	}

	if message.Document != nil && d.documents != nil {
		return d.documents(ctx, message)
	}

	handler, exists := d.handlers[message.Command()]
	if !exists {
		return ErrUnhandled
	}

	return handler(ctx, message)
}
