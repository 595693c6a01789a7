// Package faults defines the error taxonomy shared by every storage layer.
//
// Each failure class is a sentinel marker; layers tag their errors with a
// marker via Wrap so callers classify with errors.Is without parsing
// messages. Absence of a record is deliberately not represented here: a
// never-written name reads back as an empty tree, never as an error.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIntegrity marks a signed payload whose signature no longer matches.
	ErrIntegrity = errors.New("integrity error")
	// ErrConfiguration marks unusable process configuration, such as a
	// missing secret key or an empty store root.
	ErrConfiguration = errors.New("configuration error")
	// ErrDecode marks hierarchical text that cannot be parsed into a tree.
	ErrDecode = errors.New("decode error")
	// ErrWrite marks a dual-store write that left the backends divergent:
	// the signed file landed but the active row did not.
	ErrWrite = errors.New("write error")
)

// Wrap tags err with the provided marker while prefixing component and
// operation context. A nil err produces a marker-tagged error from the
// detail alone.
func Wrap(marker error, component, operation, detail string, err error) error {
	msg := buildDetail(component, operation, detail)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return errors.New(msg)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, msg, err)
	}
	return fmt.Errorf("%w: %s", marker, msg)
}

func buildDetail(component, operation, detail string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		parts = append(parts, detail)
	}
	if len(parts) == 0 {
		return "storage failure"
	}
	return strings.Join(parts, ": ")
}
