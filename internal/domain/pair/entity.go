package pair

import (
	"errors"
	"fmt"
)

// ErrNegativeIndex is returned when a pair is addressed with an index below zero
var ErrNegativeIndex = errors.New("pair index must be non-negative")

// Index identifies a pair within the notebook sequence
type Index int64

// Validate checks that the index can address a stored pair
func (i Index) Validate() error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndex, int64(i))
	}
	return nil
}

// Pair represents an english paragraph and its spanish translation
type Pair struct {
	English string
	Spanish string
}

// NeedsSeed reports whether the pair has no source text yet
func (p *Pair) NeedsSeed() bool {
	return p == nil || p.English == ""
}

// Entry is a stored pair together with its index
type Entry struct {
	Index Index
	Pair  Pair
}
