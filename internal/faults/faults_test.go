package faults_test

import (
	"errors"
	"strings"
	"testing"

	"coffer/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrWrite, "storage", "write", "active upsert failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrWrite) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"storage", "write", "active upsert failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(faults.ErrConfiguration, "signedfile", "new", "secret key unset", nil)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
	if errors.Is(err, faults.ErrIntegrity) {
		t.Fatalf("markers must not overlap: %v", err)
	}
}

func TestWrapNilMarker(t *testing.T) {
	base := errors.New("io")
	err := faults.Wrap(nil, "activedb", "put", "", base)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error retained, got %v", err)
	}
	if errors.Is(err, faults.ErrWrite) {
		t.Fatalf("nil marker must not acquire a classification: %v", err)
	}
}
