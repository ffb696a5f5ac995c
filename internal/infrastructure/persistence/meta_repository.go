package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"translation-notebook/internal/domain/meta"
)

type metaRepository struct {
	conn connector
}

// Get retrieves the value stored under key
func (r *metaRepository) Get(ctx context.Context, key meta.Key) (int64, bool, error) {
	if !meta.IsValidKey(key) {
		return 0, false, fmt.Errorf("%w: %q", meta.ErrUnknownKey, key)
	}
	q, err := r.conn(ctx)
	if err != nil {
		return 0, false, err
	}

	var value int64
	err = q.QueryRowContext(ctx, `SELECT meta_value FROM meta WHERE meta_key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find meta %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key
func (r *metaRepository) Set(ctx context.Context, key meta.Key, value int64) error {
	if !meta.IsValidKey(key) {
		return fmt.Errorf("%w: %q", meta.ErrUnknownKey, key)
	}
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT OR REPLACE INTO meta (meta_key, meta_value)
		VALUES (?, ?)
	`

	if _, err := q.ExecContext(ctx, query, string(key), value); err != nil {
		return fmt.Errorf("failed to save meta %s: %w", key, err)
	}

	return nil
}

// All retrieves every stored value keyed by name. Rows with names outside
// the key set are skipped.
func (r *metaRepository) All(ctx context.Context) (map[meta.Key]int64, error) {
	q, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `SELECT meta_key, meta_value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	values := make(map[meta.Key]int64)
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		if key := meta.Key(name); meta.IsValidKey(key) {
			values[key] = value
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meta: %w", err)
	}

	return values, nil
}

// ClearAll deletes every value
func (r *metaRepository) ClearAll(ctx context.Context) error {
	q, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM meta`); err != nil {
		return fmt.Errorf("failed to clear meta: %w", err)
	}

	return nil
}
