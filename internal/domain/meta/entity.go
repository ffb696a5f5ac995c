package meta

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned for names outside the fixed key set
var ErrUnknownKey = errors.New("unknown meta key")

// Key names a metadata value
type Key string

const (
	// KeyCurrentIndex is the cursor into the pair sequence
	KeyCurrentIndex Key = "currentIndex"
	// KeyMaxIndex is the highest pair index known to hold seeded text
	KeyMaxIndex Key = "maxIndex"
)

// Keys returns every valid key in a stable order
func Keys() []Key {
	return []Key{KeyCurrentIndex, KeyMaxIndex}
}

// IsValidKey checks if a key belongs to the fixed key set
func IsValidKey(key Key) bool {
	switch key {
	case KeyCurrentIndex, KeyMaxIndex:
		return true
	default:
		return false
	}
}

// ParseKey converts a name into a Key
func ParseKey(name string) (Key, error) {
	key := Key(name)
	if !IsValidKey(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return key, nil
}
