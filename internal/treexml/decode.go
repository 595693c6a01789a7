package treexml

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"coffer/internal/faults"
	"coffer/internal/tree"
)

// Decode parses hierarchical text into a configuration tree. Any single
// document element is accepted as the root regardless of its name; the
// result is the map of its children. Malformed input fails with
// faults.ErrDecode and no partial result.
func Decode(text string) (*tree.Map, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	start, err := findRoot(dec)
	if err != nil {
		return nil, err
	}

	node, err := parseElement(dec, start)
	if err != nil {
		return nil, err
	}

	if err := expectTrailer(dec); err != nil {
		return nil, err
	}

	switch v := node.(type) {
	case *tree.Map:
		return v, nil
	case tree.Leaf:
		// A childless root carries no entries; non-blank text at the
		// top level has no key to live under.
		if strings.TrimSpace(string(v)) != "" {
			return nil, faults.Wrap(faults.ErrDecode, "treexml", "decode", "text content at document root", nil)
		}
		return tree.NewMap(), nil
	default:
		return nil, faults.Wrap(faults.ErrDecode, "treexml", "decode", "unexpected root shape", nil)
	}
}

func findRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, faults.Wrap(faults.ErrDecode, "treexml", "decode", "no document element", nil)
			}
			return xml.StartElement{}, faults.Wrap(faults.ErrDecode, "treexml", "decode", "", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return xml.StartElement{}, faults.Wrap(faults.ErrDecode, "treexml", "decode", "text before document element", nil)
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			// Prologue content is tolerated.
		}
	}
}

func expectTrailer(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return faults.Wrap(faults.ErrDecode, "treexml", "decode", "", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return faults.Wrap(faults.ErrDecode, "treexml", "decode", "text after document element", nil)
			}
		case xml.Comment:
		default:
			return faults.Wrap(faults.ErrDecode, "treexml", "decode", "content after document element", nil)
		}
	}
}

// parseElement consumes tokens through start's end tag and returns the
// decoded node. A childless element is a leaf holding its character data
// verbatim; an element with children is a map keyed by child tag, where a
// repeated tag folds its occurrences into a list in document order.
func parseElement(dec *xml.Decoder, start xml.StartElement) (tree.Node, error) {
	var (
		children  *tree.Map
		text      strings.Builder
		childless = true
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, faults.Wrap(faults.ErrDecode, "treexml", "decode", "", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			if childless {
				children = tree.NewMap()
				childless = false
			}
			fold(children, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return finishElement(start, children, text.String())
		case xml.Comment, xml.ProcInst, xml.Directive:
			// Ignored, matching a liberal reader.
		}
	}
}

func finishElement(start xml.StartElement, children *tree.Map, text string) (tree.Node, error) {
	if children != nil {
		if strings.TrimSpace(text) != "" {
			return nil, faults.Wrap(faults.ErrDecode, "treexml", "decode",
				"element "+start.Name.Local+" mixes text with child elements", nil)
		}
		if len(start.Attr) > 0 {
			withAttrs := tree.NewMap()
			withAttrs.Set(AttributesKey, attrMap(start.Attr))
			for _, key := range children.Keys() {
				v, _ := children.Get(key)
				withAttrs.Set(key, v)
			}
			return withAttrs, nil
		}
		return children, nil
	}

	if len(start.Attr) > 0 {
		m := tree.NewMap()
		m.Set(AttributesKey, attrMap(start.Attr))
		if strings.TrimSpace(text) != "" {
			m.Set(TextKey, tree.Leaf(text))
		}
		return m, nil
	}

	return tree.Leaf(text), nil
}

// fold inserts child under tag, converting to a list on the second
// occurrence and appending on later ones.
func fold(m *tree.Map, tag string, child tree.Node) {
	existing, ok := m.Get(tag)
	if !ok {
		m.Set(tag, child)
		return
	}
	if list, isList := existing.(tree.List); isList {
		m.Set(tag, append(list, child))
		return
	}
	m.Set(tag, tree.List{existing, child})
}

func attrMap(attrs []xml.Attr) *tree.Map {
	m := tree.NewMap()
	for _, a := range attrs {
		m.Set(a.Name.Local, tree.Leaf(a.Value))
	}
	return m
}
