package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func commandUpdate(text string, length int) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 1},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestDispatch(t *testing.T) {
	d := NewDispatcher()
	var called []string
	d.RegisterHandler("next", func(_ context.Context, m *tgbotapi.Message) error {
		called = append(called, "next:"+m.CommandArguments())
		return nil
	})
	d.RegisterDocumentHandler(func(_ context.Context, m *tgbotapi.Message) error {
		called = append(called, "doc:"+m.Document.FileName)
		return nil
	})

	assert.NoError(t, d.Dispatch(context.Background(), commandUpdate("/next", 5)))
	assert.NoError(t, d.Dispatch(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 1},
		Document: &tgbotapi.Document{FileID: "f", FileName: "data.json"},
	}}))

	err := d.Dispatch(context.Background(), commandUpdate("/nope", 5))
	assert.True(t, errors.Is(err, ErrUnhandled))
	err = d.Dispatch(context.Background(), tgbotapi.Update{})
	assert.True(t, errors.Is(err, ErrUnhandled))

	assert.Equal(t, []string{"next:", "doc:data.json"}, called)
}
