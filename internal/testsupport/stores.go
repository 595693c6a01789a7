package testsupport

import (
	"testing"

	"coffer/internal/activedb"
	"coffer/internal/config"
	"coffer/internal/logging"
	"coffer/internal/settings"
	"coffer/internal/signedfile"
	"coffer/internal/storage"
)

// MustOpenStores opens both backends over cfg and registers cleanup.
func MustOpenStores(t testing.TB, cfg *config.Config) (*signedfile.Store, *activedb.Store) {
	t.Helper()

	key, err := cfg.SecretKey()
	if err != nil {
		t.Fatalf("SecretKey failed: %v", err)
	}
	signed, err := signedfile.New(cfg.Storage.Root, key)
	if err != nil {
		t.Fatalf("signedfile.New failed: %v", err)
	}
	active, err := activedb.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("activedb.Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = active.Close()
	})
	return signed, active
}

// MustManager wires a storage manager over freshly opened stores.
func MustManager(t testing.TB, cfg *config.Config) *storage.Manager {
	t.Helper()
	signed, active := MustOpenStores(t, cfg)
	return storage.New(signed, active, logging.NewNop())
}

// MustService wires a settings service over a fresh storage manager.
func MustService(t testing.TB, cfg *config.Config) *settings.Service {
	t.Helper()
	return settings.NewService(MustManager(t, cfg), logging.NewNop())
}
