// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"tagsight/internal/config"
	"tagsight/internal/ledger"
)

// NewConfig returns a config rooted in a per-test temporary directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.EncryptionKeyEnv, "test-encryption-key")

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// MustOpenLedger opens a ledger under the config's data directory and
// closes it when the test finishes.
func MustOpenLedger(t *testing.T, cfg *config.Config) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Open(cfg.LedgerDBPath(), nil)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}
