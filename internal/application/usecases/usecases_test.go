package usecases

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
	"translation-notebook/internal/infrastructure/persistence"
)

func newTestStore(t *testing.T) *persistence.Session {
	t.Helper()
	s := persistence.NewSession(persistence.Options{
		Path: filepath.Join(t.TempDir(), "notebook.db"),
	})
	t.Cleanup(func() { s.Close() })
	return s
}

// failingStore wraps a store so that the Nth pair write inside Update fails
type failingStore struct {
	dataset.Store
	failAfter int
}

func (s *failingStore) Update(ctx context.Context, fn dataset.TxFunc) error {
	return s.Store.Update(ctx, func(pairs pair.Repository, metas meta.Repository) error {
		return fn(&failingPairs{Repository: pairs, remaining: s.failAfter}, metas)
	})
}

var errInjected = errors.New("injected write failure")

type failingPairs struct {
	pair.Repository
	remaining int
}

func (r *failingPairs) Put(ctx context.Context, index pair.Index, p pair.Pair) error {
	if r.remaining == 0 {
		return errInjected
	}
	r.remaining--
	return r.Repository.Put(ctx, index, p)
}
