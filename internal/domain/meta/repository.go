package meta

import "context"

// Repository defines the contract for metadata persistence
type Repository interface {
	// Get retrieves the value stored under key; ok is false when it is unset
	Get(ctx context.Context, key Key) (value int64, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key Key, value int64) error

	// All retrieves every key that currently has a value
	All(ctx context.Context) (map[Key]int64, error)

	// ClearAll removes every value
	ClearAll(ctx context.Context) error
}
