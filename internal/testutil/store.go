// Package testutil provides shared helpers for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/streamvault/storefront/internal/store"
)

// NewStore opens a SQLite store backed by a per-test temp directory.
// The store is closed automatically when the test ends.
func NewStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.db")
	s, err := store.New(path)
	if err != nil {
		t.Fatalf("store.New(%q): %v", path, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
