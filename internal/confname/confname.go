// Package confname validates the dotted names that identify configuration
// objects.
//
// A name is one or more dot-separated segments of ASCII letters, digits,
// underscores, and hyphens, e.g. "book.admin". Names become file names in
// the signed store and primary keys in the active store, so validation is
// the single guard against path traversal and empty keys; every layer that
// accepts a caller-supplied name runs it through Validate first.
package confname

import "fmt"

const maxLength = 255

// Validate reports whether name is a well-formed dotted identifier.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > maxLength {
		return fmt.Errorf("name %q exceeds %d characters", name, maxLength)
	}
	segStart := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			if i == segStart {
				return fmt.Errorf("name %q contains an empty segment", name)
			}
			segStart = i + 1
			continue
		}
		if !segmentByte(name[i]) {
			return fmt.Errorf("name %q contains invalid character %q", name, name[i])
		}
	}
	return nil
}

func segmentByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-':
		return true
	default:
		return false
	}
}
