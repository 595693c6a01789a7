package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"coffer/internal/storage"
	"coffer/internal/tree"
)

// Object is one named configuration tree with dotted-path access.
//
// Get with an empty path returns the full tree, or an empty map when the
// name was never written. A missing path is nil, never an error. Set and
// Clear mutate in memory and chain; Save persists; Delete removes the
// backing records and resets the object to empty.
type Object interface {
	Name() string
	Get(ctx context.Context, path string) (tree.Node, error)
	Set(ctx context.Context, path string, value any) Object
	Clear(ctx context.Context, path string) Object
	Save(ctx context.Context) error
	Delete(ctx context.Context) error
}

type object struct {
	name  string
	store *storage.Manager

	root  *tree.Map // nil until first access
	dirty bool
	err   error // first chain failure, surfaced on Get/Save
}

func newObject(name string, store *storage.Manager, _ *slog.Logger) Object {
	return &object{name: name, store: store}
}

func (o *object) Name() string {
	return o.name
}

func (o *object) Get(ctx context.Context, path string) (tree.Node, error) {
	if o.err != nil {
		return nil, o.err
	}
	if err := o.load(ctx); err != nil {
		return nil, err
	}
	if path == "" {
		return o.root, nil
	}
	return lookup(o.root, path), nil
}

// Set stores the canonical form of value at path, creating intermediate
// maps as needed and replacing non-map intermediates. An empty path
// replaces the whole tree and requires a map value.
func (o *object) Set(ctx context.Context, path string, value any) Object {
	if o.err != nil {
		return o
	}
	if err := o.load(ctx); err != nil {
		return o
	}

	node, err := tree.Canonical(value)
	if err != nil {
		o.err = fmt.Errorf("set %q: %w", path, err)
		return o
	}

	if path == "" {
		root, ok := node.(*tree.Map)
		if !ok {
			o.err = fmt.Errorf("set %q: replacing the whole tree requires a map, got %T", o.name, node)
			return o
		}
		o.root = root
		o.dirty = true
		return o
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			o.err = fmt.Errorf("set %q: path contains an empty segment", path)
			return o
		}
	}

	current := o.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current.Get(segment)
		childMap, isMap := child.(*tree.Map)
		if !ok || !isMap {
			childMap = tree.NewMap()
			current.Set(segment, childMap)
		}
		current = childMap
	}
	current.Set(segments[len(segments)-1], node)
	o.dirty = true
	return o
}

// Clear removes the leaf or subtree at path when present; clearing an
// absent path is a no-op. An empty path resets the tree to an empty map.
func (o *object) Clear(ctx context.Context, path string) Object {
	if o.err != nil {
		return o
	}
	if err := o.load(ctx); err != nil {
		return o
	}

	if path == "" {
		if o.root.Len() > 0 {
			o.dirty = true
		}
		o.root = tree.NewMap()
		return o
	}

	segments := strings.Split(path, ".")
	current := o.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current.Get(segment)
		childMap, isMap := child.(*tree.Map)
		if !ok || !isMap {
			return o
		}
		current = childMap
	}
	last := segments[len(segments)-1]
	if _, ok := current.Get(last); ok {
		current.Delete(last)
		o.dirty = true
	}
	return o
}

// Save persists the in-memory tree. A clean object is a no-op; a chain
// failure recorded by Set or Clear is returned instead of writing.
func (o *object) Save(ctx context.Context) error {
	if o.err != nil {
		return o.err
	}
	if !o.dirty {
		return nil
	}
	if err := o.store.Write(ctx, o.name, o.root); err != nil {
		return fmt.Errorf("save %q: %w", o.name, err)
	}
	o.dirty = false
	return nil
}

// Delete removes the backing records and resets the object, clearing any
// recorded chain failure. The object remains usable afterwards.
func (o *object) Delete(ctx context.Context) error {
	if err := o.store.Delete(ctx, o.name); err != nil {
		return fmt.Errorf("delete %q: %w", o.name, err)
	}
	o.root = tree.NewMap()
	o.dirty = false
	o.err = nil
	return nil
}

func (o *object) load(ctx context.Context) error {
	if o.root != nil {
		return nil
	}
	root, err := o.store.Read(ctx, o.name)
	if err != nil {
		o.err = fmt.Errorf("load %q: %w", o.name, err)
		return o.err
	}
	o.root = root
	return nil
}

// lookup walks dot-delimited segments through nested maps. Any absent
// segment, empty segment, or traversal through a non-map is nil.
func lookup(root *tree.Map, path string) tree.Node {
	current := tree.Node(root)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(*tree.Map)
		if !ok {
			return nil
		}
		child, ok := m.Get(segment)
		if !ok {
			return nil
		}
		current = child
	}
	return current
}
