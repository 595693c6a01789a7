// Package storage orchestrates the signed file store and the active
// database behind a single write/read/delete surface.
//
// Writes fan out signed-first: the file half is the likelier I/O failure
// point, so it lands before the active upsert. A failure after the signed
// write leaves the backends divergent; that window is accepted, reported
// as faults.ErrWrite, and logged rather than rolled back. Reads come from
// the active store alone; the signed side exists for tamper-evidence and
// the file-backed import/export paths.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"coffer/internal/activedb"
	"coffer/internal/faults"
	"coffer/internal/logging"
	"coffer/internal/signedfile"
	"coffer/internal/tree"
	"coffer/internal/treexml"
)

// Manager coordinates the two backends and the codec.
type Manager struct {
	signed *signedfile.Store
	active *activedb.Store
	logger *slog.Logger
}

// New wires a manager over the two stores. A nil logger disables logging.
func New(signed *signedfile.Store, active *activedb.Store, logger *slog.Logger) *Manager {
	return &Manager{
		signed: signed,
		active: active,
		logger: logging.NewComponentLogger(logger, "storage"),
	}
}

// Write encodes root and stores it under name in both backends. When the
// signed write succeeds and the active upsert fails the stores are left
// divergent and the error carries faults.ErrWrite; there is no rollback.
func (m *Manager) Write(ctx context.Context, name string, root *tree.Map) error {
	payload, err := treexml.Encode(root)
	if err != nil {
		return fmt.Errorf("encode tree for %q: %w", name, err)
	}
	if err := m.signed.Write(name, []byte(payload)); err != nil {
		return fmt.Errorf("write signed record: %w", err)
	}
	if err := m.active.Put(ctx, name, payload); err != nil {
		m.logger.Error("stores diverged: signed record written, active update failed",
			logging.String("name", name),
			logging.Error(err))
		return faults.Wrap(faults.ErrWrite, "storage", "write",
			fmt.Sprintf("active update for %q failed after signed write", name), err)
	}
	m.logger.Debug("configuration written",
		logging.String("name", name),
		logging.Int("bytes", len(payload)))
	return nil
}

// Read returns the tree stored under name. The active store is the
// authoritative source; a never-written name yields an empty map, never
// an error.
func (m *Manager) Read(ctx context.Context, name string) (*tree.Map, error) {
	record, err := m.active.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read active record: %w", err)
	}
	if record == nil {
		return tree.NewMap(), nil
	}
	root, err := treexml.Decode(record.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode record %q: %w", name, err)
	}
	return root, nil
}

// Delete removes name from both backends, file first. Either half already
// being absent is fine.
func (m *Manager) Delete(ctx context.Context, name string) error {
	if err := m.signed.Delete(name); err != nil {
		return fmt.Errorf("delete signed record: %w", err)
	}
	if err := m.active.Delete(ctx, name); err != nil {
		m.logger.Error("stores diverged: signed record deleted, active row remains",
			logging.String("name", name),
			logging.Error(err))
		return fmt.Errorf("delete active record: %w", err)
	}
	m.logger.Debug("configuration deleted", logging.String("name", name))
	return nil
}

// ListActive returns names with the given literal prefix from the active
// store, the steady-state listing.
func (m *Manager) ListActive(ctx context.Context, prefix string) ([]string, error) {
	return m.active.List(ctx, prefix)
}

// ListFiles returns names with the given literal prefix from the signed
// store. Used before the active store is populated and by verification.
func (m *Manager) ListFiles(prefix string) ([]string, error) {
	return m.signed.List(prefix)
}

// FilesDir returns the signed store root, where the bulk installer keeps
// its lock file.
func (m *Manager) FilesDir() string {
	return m.signed.Dir()
}

// FileEntries returns on-disk metadata for the signed records matching
// prefix.
func (m *Manager) FileEntries(prefix string) ([]signedfile.Entry, error) {
	return m.signed.Entries(prefix)
}

// Records returns the active rows with the given prefix, for listings
// that need payload sizes and timestamps.
func (m *Manager) Records(ctx context.Context, prefix string) ([]*activedb.Record, error) {
	return m.active.Records(ctx, prefix)
}

// WriteRaw signs and stores payload verbatim in the signed store only,
// bypassing the codec. The bulk installer uses this to lay down shipped
// default payloads before the active store exists.
func (m *Manager) WriteRaw(name string, payload []byte) error {
	if err := m.signed.Write(name, payload); err != nil {
		return fmt.Errorf("write raw record: %w", err)
	}
	m.logger.Debug("raw payload installed",
		logging.String("name", name),
		logging.Int("bytes", len(payload)))
	return nil
}

// ReadFile returns the verified payload of the signed record under name.
func (m *Manager) ReadFile(name string) ([]byte, error) {
	return m.signed.Read(name)
}

// VerifyFile reports whether the signed record under name still carries a
// valid signature.
func (m *Manager) VerifyFile(name string) (bool, error) {
	return m.signed.Verify(name)
}
