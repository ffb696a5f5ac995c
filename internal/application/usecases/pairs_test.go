package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

func TestPutThenGetPair(t *testing.T) {
	uc := NewPairUseCase(newTestStore(t), "", nil)
	ctx := context.Background()

	for _, index := range []pair.Index{0, 1, 17, 1000} {
		want := pair.Pair{English: "text", Spanish: "texto"}
		require.NoError(t, uc.PutPair(ctx, index, want))
		got, err := uc.GetPair(ctx, index)
		require.NoError(t, err)
		assert.Equal(t, &want, got)
	}

	missing, err := uc.GetPair(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMetaCursorScenario(t *testing.T) {
	uc := NewPairUseCase(newTestStore(t), "", nil)
	ctx := context.Background()

	require.NoError(t, uc.SetMeta(ctx, meta.KeyCurrentIndex, 5))

	value, ok, err := uc.GetMeta(ctx, meta.KeyCurrentIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), value)

	_, ok, err = uc.GetMeta(ctx, meta.KeyMaxIndex)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeed(t *testing.T) {
	store := newTestStore(t)
	uc := NewPairUseCase(store, "", nil)
	ctx := context.Background()

	require.NoError(t, uc.PutPair(ctx, 1, pair.Pair{English: "edited", Spanish: "editado"}))
	require.NoError(t, uc.PutPair(ctx, 2, pair.Pair{English: "", Spanish: "huérfano"}))

	seeded, err := uc.Seed(ctx, []string{"first", "second", "third"})
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)

	got, err := uc.GetPair(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, &pair.Pair{English: "first", Spanish: DefaultPlaceholder}, got)

	got, err = uc.GetPair(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &pair.Pair{English: "edited", Spanish: "editado"}, got, "existing text is never re-seeded")

	got, err = uc.GetPair(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, &pair.Pair{English: "third", Spanish: DefaultPlaceholder}, got)

	maxIndex, ok, err := uc.GetMeta(ctx, meta.KeyMaxIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), maxIndex)

	// seeding again is a no-op
	seeded, err = uc.Seed(ctx, []string{"first", "second", "third"})
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
}

func TestSeedKeepsHigherMaxIndex(t *testing.T) {
	uc := NewPairUseCase(newTestStore(t), "pendiente", nil)
	ctx := context.Background()

	require.NoError(t, uc.SetMeta(ctx, meta.KeyMaxIndex, 10))
	_, err := uc.Seed(ctx, []string{"only"})
	require.NoError(t, err)

	maxIndex, _, err := uc.GetMeta(ctx, meta.KeyMaxIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(10), maxIndex)

	got, err := uc.GetPair(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "pendiente", got.Spanish)
}

func TestSeedIsAtomic(t *testing.T) {
	store := newTestStore(t)
	uc := NewPairUseCase(&failingStore{Store: store, failAfter: 1}, "", nil)
	ctx := context.Background()

	_, err := uc.Seed(ctx, []string{"a", "b"})
	assert.True(t, errors.Is(err, errInjected), "got %v", err)

	entries, err := store.Pairs().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCursorNavigation(t *testing.T) {
	uc := NewPairUseCase(newTestStore(t), "", nil)
	ctx := context.Background()

	_, err := uc.Seed(ctx, []string{"zero", "one"})
	require.NoError(t, err)

	index, p, err := uc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair.Index(0), index)
	assert.Equal(t, "zero", p.English)

	index, p, err = uc.Move(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, pair.Index(1), index)
	assert.Equal(t, "one", p.English)

	// moving past the end is allowed; the pair is simply absent
	index, p, err = uc.Move(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, pair.Index(2), index)
	assert.Nil(t, p)

	index, _, err = uc.Move(ctx, -10)
	require.NoError(t, err)
	assert.Equal(t, pair.Index(0), index, "cursor stops at 0")

	_, _, err = uc.Goto(ctx, -1)
	assert.True(t, errors.Is(err, pair.ErrNegativeIndex))

	index, _, err = uc.Goto(ctx, 1)
	require.NoError(t, err)
	value, _, err := uc.GetMeta(ctx, meta.KeyCurrentIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(index), value)
}

func TestCheckPrompt(t *testing.T) {
	uc := NewPairUseCase(newTestStore(t), "", nil)
	ctx := context.Background()

	require.NoError(t, uc.PutPair(ctx, 0, pair.Pair{English: "Hello there.", Spanish: "Hola allí."}))
	require.NoError(t, uc.PutPair(ctx, 3, pair.Pair{English: "Good night.", Spanish: "Buenas noches."}))

	index, text, err := uc.CheckPrompt(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair.Index(0), index)
	assert.Equal(t, DefaultCheckPrompt+"\n\nEnglish:\nHello there.\n\nMy translation:\nHola allí.", text)

	_, _, err = uc.Goto(ctx, 3)
	require.NoError(t, err)
	_, text, err = uc.CheckPrompt(ctx)
	require.NoError(t, err)
	assert.Contains(t, text, "Good night.")
	assert.Contains(t, text, "Buenas noches.")

	// the cursor stays where it was
	text, err = uc.WithCheckPrompt("Revisa:").CheckPromptAt(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Revisa:\n\nEnglish:\nHello there.\n\nMy translation:\nHola allí.", text)
	cursor, _, err := uc.GetMeta(ctx, meta.KeyCurrentIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cursor)

	text, err = uc.CheckPromptAt(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Revisa:\n\nEnglish:\n\n\nMy translation:\n", text)

	_, err = uc.WithCheckPrompt("   ").CheckPromptAt(ctx, -1)
	assert.True(t, errors.Is(err, pair.ErrNegativeIndex))
}
