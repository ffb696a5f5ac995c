package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-notebook/internal/application/usecases"
	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
	"translation-notebook/internal/infrastructure/persistence"
	"translation-notebook/internal/interfaces/telegram/handlers/shared"
)

type sentDocument struct {
	name string
	data []byte
}

type fakeMessenger struct {
	messages  []string
	documents []sentDocument
	files     map[string][]byte
	answered  []string
}

func (f *fakeMessenger) SendMessage(_ int64, text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeMessenger) SendMessageWithKeyboard(_ int64, text string, _ tgbotapi.InlineKeyboardMarkup) error {
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeMessenger) AnswerCallbackQuery(callbackID string, _ string) error {
	f.answered = append(f.answered, callbackID)
	return nil
}

func (f *fakeMessenger) SendDocument(_ int64, name string, data []byte) error {
	f.documents = append(f.documents, sentDocument{name: name, data: data})
	return nil
}

func (f *fakeMessenger) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func (f *fakeMessenger) last() string {
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

type fixture struct {
	store   *persistence.Session
	pairs   *usecases.PairUseCase
	bot     *fakeMessenger
	handler *BotHandler
}

func newFixture(t *testing.T, allowedChatID int64) *fixture {
	t.Helper()
	store := persistence.NewSession(persistence.Options{Path: filepath.Join(t.TempDir(), "bot.db")})
	t.Cleanup(func() { store.Close() })

	pairs := usecases.NewPairUseCase(store, "", nil)
	bot := &fakeMessenger{files: make(map[string][]byte)}
	handler := NewBotHandler(bot, pairs, usecases.NewTransferUseCase(store, nil), allowedChatID, nil)
	t.Cleanup(handler.Watch(store))

	return &fixture{store: store, pairs: pairs, bot: bot, handler: handler}
}

func command(chatID int64, name, args string) tgbotapi.Update {
	text := "/" + name
	if args != "" {
		text += " " + args
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name) + 1}},
	}}
}

func TestNavigationCommands(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.pairs.Seed(ctx, []string{"First paragraph.", "Second paragraph."})
	require.NoError(t, err)

	f.handler.HandleUpdate(ctx, command(1, "show", ""))
	assert.Contains(t, f.bot.last(), "First paragraph.")

	f.handler.HandleUpdate(ctx, command(1, "next", ""))
	assert.Contains(t, f.bot.last(), "#1")
	assert.Contains(t, f.bot.last(), "Second paragraph.")

	f.handler.HandleUpdate(ctx, command(1, "prev", ""))
	f.handler.HandleUpdate(ctx, command(1, "prev", ""))
	assert.Contains(t, f.bot.last(), "#0")

	f.handler.HandleUpdate(ctx, command(1, "goto", "5"))
	assert.Contains(t, f.bot.last(), "nothing stored")

	cursor, _, err := f.pairs.GetMeta(ctx, meta.KeyCurrentIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cursor)

	f.handler.HandleUpdate(ctx, command(1, "goto", "minus one"))
	assert.Contains(t, f.bot.last(), "Usage: /goto")
}

func TestEditCommands(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	f.handler.HandleUpdate(ctx, command(1, "goto", "2"))
	f.handler.HandleUpdate(ctx, command(1, "english", "Good morning"))
	f.handler.HandleUpdate(ctx, command(1, "spanish", "Buenos días"))

	got, err := f.pairs.GetPair(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, &pair.Pair{English: "Good morning", Spanish: "Buenos días"}, got)

	f.handler.HandleUpdate(ctx, command(1, "spanish", ""))
	assert.Contains(t, f.bot.last(), "Write the new text")
}

func TestExportAndImportDocument(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, f.pairs.PutPair(ctx, 0, pair.Pair{English: "Hi", Spanish: "Hola"}))

	f.handler.HandleUpdate(ctx, command(1, "export", ""))
	require.Len(t, f.bot.documents, 1)
	assert.Equal(t, "data.json", f.bot.documents[0].name)
	assert.JSONEq(t, `{"pairs": [{"english": "Hi", "spanish": "Hola"}], "meta": {}}`, string(f.bot.documents[0].data))

	f.bot.files["good"] = []byte(`{"pairs": [{"english": "Bye", "spanish": "Adiós"}], "meta": {"currentIndex": 0}}`)
	f.bot.files["bad"] = []byte(`{not json`)

	before := f.store.Version()
	f.handler.HandleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 1},
		Document: &tgbotapi.Document{FileID: "bad", FileName: "data.json"},
	}})
	assert.Contains(t, f.bot.last(), "not a notebook export")
	assert.Equal(t, before, f.store.Version())

	f.handler.HandleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 1},
		Document: &tgbotapi.Document{FileID: "good", FileName: "data.json"},
	}})
	assert.Contains(t, f.bot.last(), "Notebook replaced")
	assert.Equal(t, before+1, f.store.Version())

	got, err := f.pairs.GetPair(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Adiós", got.Spanish)

	f.handler.HandleUpdate(ctx, command(1, "help", ""))
	assert.Contains(t, f.bot.last(), "Dataset version: 2")
}

func TestCallbackNavigation(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	f.handler.HandleUpdate(ctx, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    shared.CallbackNext,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}},
	}})

	assert.Equal(t, []string{"cb1"}, f.bot.answered)
	assert.Contains(t, f.bot.last(), "#1")
}

func TestForeignChatIgnored(t *testing.T) {
	f := newFixture(t, 42)
	ctx := context.Background()

	f.handler.HandleUpdate(ctx, command(7, "show", ""))
	assert.Empty(t, f.bot.messages)

	f.handler.HandleUpdate(ctx, command(42, "show", ""))
	assert.Len(t, f.bot.messages, 1)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t, 0)

	f.handler.HandleUpdate(context.Background(), command(1, "translate", ""))
	assert.Contains(t, f.bot.last(), "/help")
}

func TestStartStopsOnClosedChannel(t *testing.T) {
	f := newFixture(t, 0)
	updates := make(chan tgbotapi.Update, 1)
	updates <- command(1, "show", "")
	close(updates)

	require.NoError(t, f.handler.Start(context.Background(), updates))
	assert.Len(t, f.bot.messages, 1)
}

func TestCheckCommand(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, f.pairs.PutPair(ctx, 1, pair.Pair{English: "The sun rose.", Spanish: "El sol salió."}))
	f.handler.HandleUpdate(ctx, command(1, "goto", "1"))
	f.handler.HandleUpdate(ctx, command(1, "check", ""))

	got := f.bot.last()
	assert.True(t, strings.HasPrefix(got, usecases.DefaultCheckPrompt), got)
	assert.Contains(t, got, "The sun rose.")
	assert.Contains(t, got, "El sol salió.")
}
