package treexml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"coffer/internal/tree"
)

const (
	rootTag = "settings"
	indent  = "  "

	// AttributesKey is the reserved map key carrying decoded element
	// attributes. TextKey carries inline text on attribute-bearing
	// elements. Neither is re-emitted by Encode.
	AttributesKey = "#attributes"
	TextKey       = "#text"
)

// Encode renders root as pretty-printed hierarchical text under a fixed
// <settings> document element. Map keys must be valid element names;
// directly nested lists have no enclosing tag to repeat and are an error.
func Encode(root *tree.Map) (string, error) {
	var b strings.Builder
	b.WriteString("<" + rootTag + ">\n")
	if err := encodeChildren(&b, root, 1); err != nil {
		return "", err
	}
	b.WriteString("</" + rootTag + ">\n")
	return b.String(), nil
}

func encodeChildren(b *strings.Builder, m *tree.Map, depth int) error {
	for _, key := range m.Keys() {
		if key == AttributesKey || key == TextKey {
			continue
		}
		if err := checkTag(key); err != nil {
			return err
		}
		child, _ := m.Get(key)
		if err := encodeNode(b, key, child, depth); err != nil {
			return err
		}
	}
	return nil
}

func encodeNode(b *strings.Builder, tag string, n tree.Node, depth int) error {
	switch v := n.(type) {
	case tree.Leaf:
		writeIndent(b, depth)
		b.WriteString("<" + tag + ">")
		if err := xml.EscapeText(b, []byte(v)); err != nil {
			return fmt.Errorf("escape value for %q: %w", tag, err)
		}
		b.WriteString("</" + tag + ">\n")
		return nil
	case tree.List:
		for _, elem := range v {
			if _, nested := elem.(tree.List); nested {
				return fmt.Errorf("list under %q directly nests a list", tag)
			}
			if err := encodeNode(b, tag, elem, depth); err != nil {
				return err
			}
		}
		return nil
	case *tree.Map:
		if emptyForEncode(v) {
			writeIndent(b, depth)
			b.WriteString("<" + tag + "></" + tag + ">\n")
			return nil
		}
		writeIndent(b, depth)
		b.WriteString("<" + tag + ">\n")
		if err := encodeChildren(b, v, depth+1); err != nil {
			return err
		}
		writeIndent(b, depth)
		b.WriteString("</" + tag + ">\n")
		return nil
	case nil:
		return fmt.Errorf("nil node under %q", tag)
	default:
		return fmt.Errorf("unsupported node type %T under %q", n, tag)
	}
}

// emptyForEncode reports whether the map renders no child elements, which
// happens both for truly empty maps and for maps holding only reserved
// metadata keys.
func emptyForEncode(m *tree.Map) bool {
	for _, key := range m.Keys() {
		if key != AttributesKey && key != TextKey {
			return false
		}
	}
	return true
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
}

func checkTag(name string) error {
	if name == "" {
		return fmt.Errorf("empty map key")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9', c == '-', c == '.':
			if i == 0 {
				return fmt.Errorf("map key %q cannot start with %q", name, c)
			}
		default:
			return fmt.Errorf("map key %q contains invalid character %q", name, c)
		}
	}
	return nil
}
