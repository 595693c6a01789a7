// Package testsupport provides shared scaffolding for package tests:
// per-test configs with generated key files and wired-up stores.
package testsupport

import (
	"path/filepath"
	"testing"

	"coffer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	noKey   bool
}

// NewConfig produces a config seeded with unique temp locations per test
// and a freshly generated key file. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Storage.Root = filepath.Join(base, "store")
	cfgVal.Storage.Database = filepath.Join(base, "active.db")
	cfgVal.Storage.KeyFile = filepath.Join(base, "secret.key")

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}

	if !builder.noKey {
		if err := config.WriteKeyFile(cfgVal.Storage.KeyFile, config.DefaultKeyBytes); err != nil {
			t.Fatalf("write test key file: %v", err)
		}
	}
	return builder.cfg
}

// WithoutKeyFile skips key generation so tests can exercise the
// missing-key failure paths.
func WithoutKeyFile() ConfigOption {
	return func(b *configBuilder) {
		b.noKey = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Storage.Root)
}
