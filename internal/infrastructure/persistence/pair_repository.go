package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"translation-notebook/internal/domain/pair"
)

type pairRepository struct {
	conn connector
}

// Get retrieves the pair stored at index
func (r *pairRepository) Get(ctx context.Context, index pair.Index) (*pair.Pair, error) {
	if err := index.Validate(); err != nil {
		return nil, err
	}
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT english, spanish FROM pairs WHERE idx = ?`

	var p pair.Pair
	err = q.QueryRowContext(ctx, query, int64(index)).Scan(&p.English, &p.Spanish)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pair %d: %w", index, err)
	}

	return &p, nil
}

// Put stores the pair at index, replacing the whole record
func (r *pairRepository) Put(ctx context.Context, index pair.Index, p pair.Pair) error {
	if err := index.Validate(); err != nil {
		return err
	}
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT OR REPLACE INTO pairs (idx, english, spanish)
		VALUES (?, ?, ?)
	`

	if _, err := q.ExecContext(ctx, query, int64(index), p.English, p.Spanish); err != nil {
		return fmt.Errorf("failed to save pair %d: %w", index, err)
	}

	return nil
}

// All retrieves every pair ordered by index
func (r *pairRepository) All(ctx context.Context) ([]pair.Entry, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `SELECT idx, english, spanish FROM pairs ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs: %w", err)
	}
	defer rows.Close()

	var entries []pair.Entry
	for rows.Next() {
		var e pair.Entry
		if err := rows.Scan(&e.Index, &e.Pair.English, &e.Pair.Spanish); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return entries, nil
}

// ClearAll deletes every pair
func (r *pairRepository) ClearAll(ctx context.Context) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM pairs`); err != nil {
		return fmt.Errorf("failed to clear pairs: %w", err)
	}

	return nil
}
