// Package storage defines the persistent key-value document store.
package storage

import "context"

// Provider is the interface for whole-document persistence. Each call is
// independent: no handle is held across calls, concurrent calls against
// distinct keys never corrupt each other, and the last Save to complete
// against the same key wins.
type Provider interface {
	// Load returns the stored value for key, or (nil, nil) when the key
	// has never been saved.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the whole value stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Close releases the underlying store.
	Close() error
}
