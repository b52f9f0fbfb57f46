package testsupport

import (
	"testing"

	"emblem/internal/config"
	"emblem/internal/icons"
)

// MustOpenStore opens an icons.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *icons.Store {
	t.Helper()

	store, err := icons.Open(cfg)
	if err != nil {
		t.Fatalf("icons.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
