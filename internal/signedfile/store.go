// Package signedfile persists one HMAC-signed file per configuration name.
//
// Each record is a single file `<name>.conf` under the store root whose
// first line is the lowercase hex HMAC-SHA512 of everything after the
// newline. Files publish via a uniquely named temp file and an atomic
// rename, so readers never observe a partial record. The store never
// repairs a bad signature; tampering surfaces as faults.ErrIntegrity and
// the file is left as found.
package signedfile

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"coffer/internal/confname"
	"coffer/internal/faults"
)

const fileExtension = ".conf"

// Store writes and verifies signed per-name files under a single directory.
type Store struct {
	dir string
	key []byte
}

// New opens a signed store rooted at dir. The directory is created if
// missing. An empty dir or key is unusable and fails with
// faults.ErrConfiguration.
func New(dir string, key []byte) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "signedfile", "new", "store directory is empty", nil)
	}
	if len(key) == 0 {
		return nil, faults.Wrap(faults.ErrConfiguration, "signedfile", "new", "secret key is empty", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{dir: dir, key: key}, nil
}

// Dir returns the store root.
func (s *Store) Dir() string {
	return s.dir
}

// Write signs payload and publishes it under name, replacing any previous
// record. The temp file is removed when the final rename fails.
func (s *Store) Write(name string, payload []byte) error {
	if err := confname.Validate(name); err != nil {
		return faults.Wrap(faults.ErrConfiguration, "signedfile", "write", "", err)
	}

	record := make([]byte, 0, len(payload)+sha512.Size*2+1)
	record = append(record, s.sign(payload)...)
	record = append(record, '\n')
	record = append(record, payload...)

	tmp := filepath.Join(s.dir, "."+name+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, record, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.recordPath(name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish signed file: %w", err)
	}
	return nil
}

// Read returns the payload stored under name after checking its signature.
// A missing record reports fs.ErrNotExist; a malformed file or a signature
// that no longer matches reports faults.ErrIntegrity.
func (s *Store) Read(name string) ([]byte, error) {
	if err := confname.Validate(name); err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "signedfile", "read", "", err)
	}

	content, err := os.ReadFile(s.recordPath(name))
	if err != nil {
		return nil, fmt.Errorf("read signed file: %w", err)
	}

	newline := bytes.IndexByte(content, '\n')
	if newline < 0 {
		return nil, faults.Wrap(faults.ErrIntegrity, "signedfile", "read",
			fmt.Sprintf("record %q has no signature line", name), nil)
	}

	stored, err := hex.DecodeString(string(content[:newline]))
	if err != nil || len(stored) != sha512.Size {
		return nil, faults.Wrap(faults.ErrIntegrity, "signedfile", "read",
			fmt.Sprintf("record %q has a malformed signature", name), nil)
	}

	payload := content[newline+1:]
	mac := hmac.New(sha512.New, s.key)
	mac.Write(payload)
	if !hmac.Equal(stored, mac.Sum(nil)) {
		return nil, faults.Wrap(faults.ErrIntegrity, "signedfile", "read",
			fmt.Sprintf("signature mismatch for %q", name), nil)
	}
	return payload, nil
}

// Verify reports whether the record under name carries a valid signature.
// Tampering is a false result, not an error; missing records and I/O
// failures still surface as errors.
func (s *Store) Verify(name string) (bool, error) {
	_, err := s.Read(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, faults.ErrIntegrity) {
		return false, nil
	}
	return false, err
}

// Exists reports whether a record is present under name.
func (s *Store) Exists(name string) (bool, error) {
	if err := confname.Validate(name); err != nil {
		return false, faults.Wrap(faults.ErrConfiguration, "signedfile", "exists", "", err)
	}
	if _, err := os.Stat(s.recordPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat signed file: %w", err)
	}
	return true, nil
}

// Delete removes the record under name. A record that is already gone is
// not an error.
func (s *Store) Delete(name string) error {
	if err := confname.Validate(name); err != nil {
		return faults.Wrap(faults.ErrConfiguration, "signedfile", "delete", "", err)
	}
	if err := os.Remove(s.recordPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete signed file: %w", err)
	}
	return nil
}

// List returns the stored names beginning with prefix, sorted ascending.
// The match is a literal string prefix, not segment-aware: "foo" matches
// both "foo.bar" and "foobaz". An empty prefix lists every record.
func (s *Store) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), fileExtension)
		if confname.Validate(name) != nil {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Entry describes one stored record as it sits on disk. Size counts the
// whole file, signature line included.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Entries returns on-disk metadata for the records beginning with prefix,
// sorted by name. Records deleted between listing and stat are skipped.
func (s *Store) Entries(prefix string) ([]Entry, error) {
	names, err := s.List(prefix)
	if err != nil {
		return nil, err
	}

	result := make([]Entry, 0, len(names))
	for _, name := range names {
		info, err := os.Stat(s.recordPath(name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat record %q: %w", name, err)
		}
		result = append(result, Entry{Name: name, Size: info.Size(), ModTime: info.ModTime()})
	}
	return result, nil
}

func (s *Store) recordPath(name string) string {
	return filepath.Join(s.dir, name+fileExtension)
}

func (s *Store) sign(payload []byte) string {
	mac := hmac.New(sha512.New, s.key)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
