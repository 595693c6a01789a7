// Package treexml converts configuration trees to and from their
// hierarchical text form: pretty-printed XML with one element per map key
// and list values emitted as repeated sibling elements.
//
// The format is deliberately lossy in two narrow, load-bearing ways that
// callers must not "fix":
//
//   - Repetition is the only list marker. A one-element list encodes as a
//     single element and therefore decodes as a plain map entry, not a
//     list. Folding only happens when a tag repeats.
//   - An empty map encodes as an empty element and decodes as an empty
//     leaf.
//
// Both follow from the wire format itself and are covered by tests so the
// behavior stays explicit.
//
// Attributes are read-only metadata: Decode surfaces an element's
// attributes under the reserved "#attributes" key (with any inline text
// under "#text"), and Encode skips both reserved keys rather than
// re-emitting them.
package treexml
