package pair

import "context"

// Repository defines the contract for pair persistence
type Repository interface {
	// Get retrieves the pair stored at index, or nil when there is none
	Get(ctx context.Context, index Index) (*Pair, error)

	// Put stores the pair at index, replacing any previous record
	Put(ctx context.Context, index Index, pair Pair) error

	// All retrieves every stored pair in ascending index order
	All(ctx context.Context) ([]Entry, error)

	// ClearAll removes every pair
	ClearAll(ctx context.Context) error
}
