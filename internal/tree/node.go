// Package tree models configuration values as a closed variant of scalar
// leaves, ordered maps, and lists, together with the canonicalization rules
// applied before any value is persisted.
package tree

// Node is a value in a configuration tree: a Leaf, a *Map, or a List.
// The set of implementations is closed.
type Node interface {
	node()
}

// Leaf holds a scalar. Scalars are always strings; booleans are coerced to
// "1"/"0" by Canonical before they ever reach a Leaf.
type Leaf string

func (Leaf) node() {}

// String returns the scalar value.
func (l Leaf) String() string { return string(l) }

// List is an ordered run of sibling values stored under a single key.
type List []Node

func (List) node() {}

// Map is a mapping of string keys to child nodes that preserves insertion
// order, so a tree loaded from disk re-encodes in the same key order.
type Map struct {
	keys []string
	vals map[string]Node
}

func (*Map) node() {}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Node)}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the child stored under key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Set stores child under key, appending the key on first insertion.
// A nil child is ignored.
func (m *Map) Set(key string, child Node) {
	if child == nil {
		return
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = child
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.vals[key]; !ok {
		return false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Equal reports semantic equality: leaves compare by value, lists by order,
// maps by key set and per-key values regardless of insertion order.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Leaf:
		bv, ok := b.(Leaf)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bc, ok := bv.Get(k)
			if !ok || !Equal(av.vals[k], bc) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Plain converts a node into untyped Go values (string, map[string]any,
// []any) for JSON output and test diffs.
func Plain(n Node) any {
	switch v := n.(type) {
	case nil:
		return nil
	case Leaf:
		return string(v)
	case List:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = Plain(child)
		}
		return out
	case *Map:
		out := make(map[string]any, v.Len())
		for _, k := range v.keys {
			out[k] = Plain(v.vals[k])
		}
		return out
	default:
		return nil
	}
}
