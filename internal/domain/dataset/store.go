package dataset

import (
	"context"

	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

// TxFunc receives repositories bound to a single transaction
type TxFunc func(pairs pair.Repository, metas meta.Repository) error

// Store is the aggregate of the pair and meta repositories
type Store interface {
	// Open initializes the store if needed; it is safe to call repeatedly
	Open(ctx context.Context) error

	// Pairs returns the pair repository
	Pairs() pair.Repository

	// Meta returns the meta repository
	Meta() meta.Repository

	// Update runs fn in one transaction, committing only if fn returns nil
	Update(ctx context.Context, fn TxFunc) error

	// View runs fn against a consistent snapshot of both repositories
	View(ctx context.Context, fn TxFunc) error

	// Version returns the current change counter
	Version() uint64

	// MarkChanged increments the change counter and notifies observers
	MarkChanged() uint64

	// Subscribe registers an observer of version changes
	Subscribe(fn func(version uint64)) (cancel func())
}
