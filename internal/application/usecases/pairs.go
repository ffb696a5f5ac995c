package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

// DefaultPlaceholder is the spanish text given to freshly seeded pairs
const DefaultPlaceholder = "A hacer"

// DefaultCheckPrompt asks a chat assistant to review a translation. The
// english paragraph and the translation are appended to it.
const DefaultCheckPrompt = "Ignore all previous chats / instructions. Check my translation. " +
	"I'm doing this to learn spanish. Correct my spelling, grammar, word choice, etc. " +
	"Give the corrections and commentary in spanish. You should use no english in the response. " +
	"Prefer latin american spanish. Note all changes in bold in the corrected text with footnotes " +
	"giving the explanation of the change. If what I wrote is correct gramatically only give a " +
	"correction if its unnatural / ackward in its phrasing."

// PairUseCase handles reading and editing pairs and the cursor
type PairUseCase struct {
	store       dataset.Store
	placeholder string
	checkPrompt string
	logger      *slog.Logger
}

// NewPairUseCase creates a new pair use case. An empty placeholder falls
// back to DefaultPlaceholder.
func NewPairUseCase(store dataset.Store, placeholder string, logger *slog.Logger) *PairUseCase {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PairUseCase{
		store:       store,
		placeholder: placeholder,
		checkPrompt: DefaultCheckPrompt,
		logger:      logger,
	}
}

// WithCheckPrompt replaces the review prompt. An empty text keeps the
// current one.
func (uc *PairUseCase) WithCheckPrompt(text string) *PairUseCase {
	if text = strings.TrimSpace(text); text != "" {
		uc.checkPrompt = text
	}
	return uc
}

// GetPair retrieves the pair at index, or nil when none is stored
func (uc *PairUseCase) GetPair(ctx context.Context, index pair.Index) (*pair.Pair, error) {
	p, err := uc.store.Pairs().Get(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to get pair: %w", err)
	}
	return p, nil
}

// PutPair stores the pair at index
func (uc *PairUseCase) PutPair(ctx context.Context, index pair.Index, p pair.Pair) error {
	if err := uc.store.Pairs().Put(ctx, index, p); err != nil {
		return fmt.Errorf("failed to put pair: %w", err)
	}
	return nil
}

// GetMeta retrieves a meta value; ok is false when it is unset
func (uc *PairUseCase) GetMeta(ctx context.Context, key meta.Key) (int64, bool, error) {
	value, ok, err := uc.store.Meta().Get(ctx, key)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get meta: %w", err)
	}
	return value, ok, nil
}

// SetMeta stores a meta value
func (uc *PairUseCase) SetMeta(ctx context.Context, key meta.Key, value int64) error {
	if err := uc.store.Meta().Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set meta: %w", err)
	}
	return nil
}

// Seed stores each paragraph as the english side of the pair at its position
// unless that pair already has english text. It returns how many pairs were
// written and raises maxIndex to the last paragraph index.
func (uc *PairUseCase) Seed(ctx context.Context, paragraphs []string) (int, error) {
	seeded := 0

	err := uc.store.Update(ctx, func(pairs pair.Repository, metas meta.Repository) error {
		seeded = 0
		for i, text := range paragraphs {
			index := pair.Index(i)
			existing, err := pairs.Get(ctx, index)
			if err != nil {
				return err
			}
			if !existing.NeedsSeed() {
				continue
			}
			if err := pairs.Put(ctx, index, pair.Pair{English: text, Spanish: uc.placeholder}); err != nil {
				return err
			}
			seeded++
		}

		if len(paragraphs) == 0 {
			return nil
		}
		last := int64(len(paragraphs) - 1)
		current, ok, err := metas.Get(ctx, meta.KeyMaxIndex)
		if err != nil {
			return err
		}
		if ok && current >= last {
			return nil
		}
		return metas.Set(ctx, meta.KeyMaxIndex, last)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed pairs: %w", err)
	}

	uc.logger.Info("seeded pairs", "paragraphs", len(paragraphs), "written", seeded)
	return seeded, nil
}

// Current returns the cursor position and the pair under it. An unset or
// negative cursor reads as 0.
func (uc *PairUseCase) Current(ctx context.Context) (pair.Index, *pair.Pair, error) {
	value, _, err := uc.GetMeta(ctx, meta.KeyCurrentIndex)
	if err != nil {
		return 0, nil, err
	}
	index := pair.Index(max(value, 0))

	p, err := uc.GetPair(ctx, index)
	if err != nil {
		return 0, nil, err
	}
	return index, p, nil
}

// Move shifts the cursor by delta, stopping at 0, and returns the new position
func (uc *PairUseCase) Move(ctx context.Context, delta int64) (pair.Index, *pair.Pair, error) {
	index, _, err := uc.Current(ctx)
	if err != nil {
		return 0, nil, err
	}
	return uc.Goto(ctx, pair.Index(max(int64(index)+delta, 0)))
}

// Goto moves the cursor to index and returns the pair stored there
func (uc *PairUseCase) Goto(ctx context.Context, index pair.Index) (pair.Index, *pair.Pair, error) {
	if err := index.Validate(); err != nil {
		return 0, nil, err
	}
	if err := uc.SetMeta(ctx, meta.KeyCurrentIndex, int64(index)); err != nil {
		return 0, nil, err
	}
	p, err := uc.GetPair(ctx, index)
	if err != nil {
		return 0, nil, err
	}
	return index, p, nil
}

// CheckPrompt builds the review prompt for the pair under the cursor
func (uc *PairUseCase) CheckPrompt(ctx context.Context) (pair.Index, string, error) {
	index, p, err := uc.Current(ctx)
	if err != nil {
		return 0, "", err
	}
	return index, uc.buildCheckPrompt(p), nil
}

// CheckPromptAt builds the review prompt for the pair at index without
// moving the cursor
func (uc *PairUseCase) CheckPromptAt(ctx context.Context, index pair.Index) (string, error) {
	p, err := uc.GetPair(ctx, index)
	if err != nil {
		return "", err
	}
	return uc.buildCheckPrompt(p), nil
}

func (uc *PairUseCase) buildCheckPrompt(p *pair.Pair) string {
	var english, spanish string
	if p != nil {
		english, spanish = p.English, p.Spanish
	}

	var b strings.Builder
	b.WriteString(uc.checkPrompt)
	b.WriteString("\n\nEnglish:\n")
	b.WriteString(english)
	b.WriteString("\n\nMy translation:\n")
	b.WriteString(spanish)
	return b.String()
}
