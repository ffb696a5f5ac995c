package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"translation-notebook/internal/domain/dataset"
	"translation-notebook/internal/domain/meta"
	"translation-notebook/internal/domain/pair"
)

// TransferUseCase exports the whole store as a document and restores it from one
type TransferUseCase struct {
	store  dataset.Store
	logger *slog.Logger
}

// NewTransferUseCase creates a new transfer use case
func NewTransferUseCase(store dataset.Store, logger *slog.Logger) *TransferUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransferUseCase{store: store, logger: logger}
}

// Export reads both tables from one snapshot. Pairs are listed in index
// order with gaps collapsed.
func (uc *TransferUseCase) Export(ctx context.Context) (*dataset.Document, error) {
	doc := dataset.NewDocument()

	err := uc.store.View(ctx, func(pairs pair.Repository, metas meta.Repository) error {
		entries, err := pairs.All(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			doc.Pairs = append(doc.Pairs, e.Pair)
		}

		values, err := metas.All(ctx)
		if err != nil {
			return err
		}
		for key, value := range values {
			doc.Meta[key] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export dataset: %w", err)
	}

	return doc, nil
}

// ExportJSON returns the export document as indented JSON
func (uc *TransferUseCase) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := uc.Export(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Encode()
}

// Import replaces the whole store with the content of data. Malformed input
// leaves the store untouched; a failure while writing rolls everything back.
func (uc *TransferUseCase) Import(ctx context.Context, data []byte) error {
	doc, err := dataset.Parse(data)
	if err != nil {
		uc.logger.Warn("rejected import", "bytes", len(data), "err", err)
		return err
	}

	if err := uc.store.Open(ctx); err != nil {
		return err
	}

	err = uc.store.Update(ctx, func(pairs pair.Repository, metas meta.Repository) error {
		if err := pairs.ClearAll(ctx); err != nil {
			return err
		}
		if err := metas.ClearAll(ctx); err != nil {
			return err
		}
		for i, p := range doc.Pairs {
			if err := pairs.Put(ctx, pair.Index(i), p); err != nil {
				return err
			}
		}
		for _, key := range meta.Keys() {
			value, ok := doc.Meta[key]
			if !ok {
				continue
			}
			if err := metas.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("import rolled back", "err", err)
		return fmt.Errorf("%w: %w", dataset.ErrTransactionAborted, err)
	}

	version := uc.store.MarkChanged()
	uc.logger.Info("dataset imported", "pairs", len(doc.Pairs), "meta", len(doc.Meta), "version", version)
	return nil
}
