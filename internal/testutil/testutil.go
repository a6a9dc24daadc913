// Package testutil provides shared test helpers for setting up stores and trackers.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/tracker"
)

// TestStore creates a temporary SQLite store that is automatically cleaned up.
func TestStore(t *testing.T) *storage.SQLite {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "raido-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestTracker creates a Tracker on a temporary store with the initial load
// already resolved.
func TestTracker(t *testing.T, opts ...tracker.Option) *tracker.Tracker {
	t.Helper()
	trk := tracker.New(TestStore(t), nil, opts...)
	if err := trk.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return trk
}
