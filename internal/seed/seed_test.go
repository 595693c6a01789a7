package seed_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"coffer/internal/faults"
	"coffer/internal/logging"
	"coffer/internal/seed"
	"coffer/internal/testsupport"
)

func TestInstallSignsEveryPayload(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustManager(t, cfg)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "network.conf"), []byte("<settings><dhcp>1</dhcp></settings>\n"))
	testsupport.WriteFile(t, filepath.Join(dir, "display.xml"), []byte("<settings><depth>24</depth></settings>\n"))
	testsupport.WriteFile(t, filepath.Join(dir, ".hidden"), []byte("skip me"))
	testsupport.WriteFile(t, filepath.Join(dir, "nested", "other.conf"), []byte("skip me too"))

	report, err := seed.Install(context.Background(), store, dir, logging.NewNop())
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if report.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if diff := cmp.Diff([]string{"display", "network"}, report.Installed); diff != "" {
		t.Fatalf("installed names mismatch (-want +got):\n%s", diff)
	}

	payload, err := store.ReadFile("network")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(payload) != "<settings><dhcp>1</dhcp></settings>\n" {
		t.Fatalf("unexpected payload: %q", payload)
	}
	for _, name := range report.Installed {
		ok, err := store.VerifyFile(name)
		if err != nil {
			t.Fatalf("VerifyFile(%q) failed: %v", name, err)
		}
		if !ok {
			t.Fatalf("expected %q to verify", name)
		}
	}

	// Bulk installs bypass the active store entirely.
	names, err := store.ListActive(context.Background(), "")
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty active store, got %v", names)
	}
}

func TestInstallStopsAtFirstBadFilename(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustManager(t, cfg)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "aaa.conf"), []byte("first"))
	testsupport.WriteFile(t, filepath.Join(dir, "bad name.conf"), []byte("second"))

	_, err := seed.Install(context.Background(), store, dir, logging.NewNop())
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}

	// Files installed before the failure stay installed.
	names, err := store.ListFiles("")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if diff := cmp.Diff([]string{"aaa"}, names); diff != "" {
		t.Fatalf("surviving files mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallFailsFastWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustManager(t, cfg)

	holder := flock.New(filepath.Join(store.FilesDir(), ".import.lock"))
	ok, err := holder.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !ok {
		t.Fatal("could not take lock for test")
	}
	defer func() {
		_ = holder.Unlock()
	}()

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "aaa.conf"), []byte("payload"))

	_, err = seed.Install(context.Background(), store, dir, logging.NewNop())
	if err == nil {
		t.Fatal("expected an error while lock is held")
	}
}

func TestInstallEmptyDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustManager(t, cfg)

	report, err := seed.Install(context.Background(), store, t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if len(report.Installed) != 0 {
		t.Fatalf("expected nothing installed, got %v", report.Installed)
	}
}

func TestInstallMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustManager(t, cfg)

	_, err := seed.Install(context.Background(), store, filepath.Join(t.TempDir(), "absent"), logging.NewNop())
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestInstallHonorsContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustManager(t, cfg)

	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "aaa.conf"), []byte("payload"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seed.Install(ctx, store, dir, logging.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
