package signedfile_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"coffer/internal/faults"
	"coffer/internal/signedfile"
)

func newStore(t *testing.T) *signedfile.Store {
	t.Helper()
	store, err := signedfile.New(t.TempDir(), []byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return store
}

func TestNewRejectsEmptyInputs(t *testing.T) {
	if _, err := signedfile.New("", []byte("key")); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for empty dir, got %v", err)
	}
	if _, err := signedfile.New(t.TempDir(), nil); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for empty key, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newStore(t)
	payload := []byte("<settings>\n  <mode>ro</mode>\n</settings>\n")

	if err := store.Write("book.admin", payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read("book.admin")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %q", got)
	}

	raw, err := os.ReadFile(filepath.Join(store.Dir(), "book.admin.conf"))
	if err != nil {
		t.Fatalf("read record file: %v", err)
	}
	newline := bytes.IndexByte(raw, '\n')
	if newline != 128 {
		t.Fatalf("expected 128 hex signature characters before the newline, got %d", newline)
	}
	if !bytes.Equal(raw[newline+1:], payload) {
		t.Fatal("stored payload differs from written payload")
	}
}

func TestWriteReplacesRecord(t *testing.T) {
	store := newStore(t)
	if err := store.Write("book", []byte("first")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("book", []byte("second")); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	got, err := store.Read("book")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected replacement payload, got %q", got)
	}
}

func TestWriteRejectsInvalidName(t *testing.T) {
	store := newStore(t)
	for _, name := range []string{"", "../escape", "book/admin", "book..admin"} {
		if err := store.Write(name, []byte("x")); !errors.Is(err, faults.ErrConfiguration) {
			t.Fatalf("name %q: expected ErrConfiguration, got %v", name, err)
		}
	}
}

func TestReadMissingRecord(t *testing.T) {
	store := newStore(t)
	if _, err := store.Read("never.written"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestTamperedPayloadFailsClosed(t *testing.T) {
	store := newStore(t)
	if err := store.Write("book", []byte("honest payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	path := filepath.Join(store.Dir(), "book.conf")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read record file: %v", err)
	}
	raw[len(raw)-1] ^= 0x01
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("corrupt record file: %v", err)
	}

	if _, err := store.Read("book"); !errors.Is(err, faults.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}

	ok, err := store.Verify("book")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("expected verification failure for tampered payload")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("re-read record file: %v", err)
	}
	if !bytes.Equal(after, raw) {
		t.Fatal("tampered file must be left untouched")
	}
}

func TestMalformedRecordsFailClosed(t *testing.T) {
	store := newStore(t)
	cases := []struct {
		name    string
		content string
	}{
		{"no.newline", "deadbeef"},
		{"bad.hex", "zzzz\npayload"},
		{"short.sig", "abcd\npayload"},
	}
	for _, tc := range cases {
		path := filepath.Join(store.Dir(), tc.name+".conf")
		if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
			t.Fatalf("seed record file: %v", err)
		}
		if _, err := store.Read(tc.name); !errors.Is(err, faults.ErrIntegrity) {
			t.Fatalf("%s: expected ErrIntegrity, got %v", tc.name, err)
		}
	}
}

func TestVerify(t *testing.T) {
	store := newStore(t)
	if err := store.Write("book", []byte("payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	ok, err := store.Verify("book")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected intact record to verify")
	}

	if _, err := store.Verify("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist for missing record, got %v", err)
	}
}

func TestKeyRotationInvalidatesRecords(t *testing.T) {
	dir := t.TempDir()
	store, err := signedfile.New(dir, []byte("old key"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.Write("book", []byte("payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rotated, err := signedfile.New(dir, []byte("new key"))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, err := rotated.Read("book"); !errors.Is(err, faults.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity after key rotation, got %v", err)
	}
	ok, err := rotated.Verify("book")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("rotated key must not verify old records")
	}
}

func TestExistsAndDelete(t *testing.T) {
	store := newStore(t)

	ok, err := store.Exists("book")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Fatal("expected absence before write")
	}

	if err := store.Write("book", []byte("payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if ok, _ = store.Exists("book"); !ok {
		t.Fatal("expected presence after write")
	}

	if err := store.Delete("book"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("book"); err != nil {
		t.Fatalf("repeat Delete failed: %v", err)
	}
	if ok, _ = store.Exists("book"); ok {
		t.Fatal("expected absence after delete")
	}
}

func TestListPrefix(t *testing.T) {
	store := newStore(t)
	for _, name := range []string{"foo.bar", "foo.baz", "biff.bang"} {
		if err := store.Write(name, []byte(name)); err != nil {
			t.Fatalf("Write %s failed: %v", name, err)
		}
	}

	cases := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"biff.bang", "foo.bar", "foo.baz"}},
		{"foo", []string{"foo.bar", "foo.baz"}},
		{"foo.bar", []string{"foo.bar"}},
		{"bar", nil},
	}
	for _, tc := range cases {
		got, err := store.List(tc.prefix)
		if err != nil {
			t.Fatalf("List(%q) failed: %v", tc.prefix, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("List(%q) = %v, want %v", tc.prefix, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("List(%q) = %v, want %v", tc.prefix, got, tc.want)
			}
		}
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	store := newStore(t)
	if err := store.Write("book", []byte("payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	for _, stray := range []string{"notes.txt", ".hidden.tmp", "bad name.conf"} {
		if err := os.WriteFile(filepath.Join(store.Dir(), stray), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed stray file: %v", err)
		}
	}

	got, err := store.List("")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0] != "book" {
		t.Fatalf("expected only the signed record, got %v", got)
	}
}

func TestEntriesReportDiskMetadata(t *testing.T) {
	store := newStore(t)
	if err := store.Write("first", []byte("short")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("second", bytes.Repeat([]byte("x"), 100)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := store.Entries("")
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "first" || entries[1].Name != "second" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	// 128 hex chars of signature plus a newline precede every payload.
	if entries[0].Size != 128+1+5 {
		t.Fatalf("unexpected size for first: %d", entries[0].Size)
	}
	if entries[1].Size != 128+1+100 {
		t.Fatalf("unexpected size for second: %d", entries[1].Size)
	}
	for _, entry := range entries {
		if entry.ModTime.IsZero() {
			t.Fatalf("entry %q has zero mod time", entry.Name)
		}
	}
}
