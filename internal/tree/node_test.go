package tree_test

import (
	"testing"

	"coffer/internal/tree"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := tree.NewMap()
	m.Set("zebra", tree.Leaf("1"))
	m.Set("apple", tree.Leaf("2"))
	m.Set("mango", tree.Leaf("3"))
	m.Set("apple", tree.Leaf("4"))

	keys := m.Keys()
	want := []string{"zebra", "apple", "mango"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}
	if v, ok := m.Get("apple"); !ok || v != tree.Leaf("4") {
		t.Fatalf("expected overwrite to keep position and update value, got %v", v)
	}
}

func TestMapDelete(t *testing.T) {
	m := tree.NewMap()
	m.Set("a", tree.Leaf("1"))
	m.Set("b", tree.Leaf("2"))

	if !m.Delete("a") {
		t.Fatal("expected delete to report presence")
	}
	if m.Delete("a") {
		t.Fatal("expected second delete to report absence")
	}
	if m.Len() != 1 {
		t.Fatalf("expected one entry, got %d", m.Len())
	}
	if _, ok := m.Get("a"); ok {
		t.Fatal("expected a to be gone")
	}
}

func TestEqualIgnoresMapOrder(t *testing.T) {
	a := tree.NewMap()
	a.Set("x", tree.Leaf("1"))
	a.Set("y", tree.Leaf("2"))

	b := tree.NewMap()
	b.Set("y", tree.Leaf("2"))
	b.Set("x", tree.Leaf("1"))

	if !tree.Equal(a, b) {
		t.Fatal("maps with identical entries must compare equal regardless of order")
	}

	b.Set("x", tree.Leaf("other"))
	if tree.Equal(a, b) {
		t.Fatal("maps with differing values must not compare equal")
	}
}

func TestEqualListsAreOrderSensitive(t *testing.T) {
	a := tree.List{tree.Leaf("1"), tree.Leaf("2")}
	b := tree.List{tree.Leaf("2"), tree.Leaf("1")}
	if tree.Equal(a, b) {
		t.Fatal("lists with different order must not compare equal")
	}
	if !tree.Equal(a, tree.List{tree.Leaf("1"), tree.Leaf("2")}) {
		t.Fatal("identical lists must compare equal")
	}
	if tree.Equal(tree.Leaf("1"), tree.List{tree.Leaf("1")}) {
		t.Fatal("a leaf must not equal a one-element list")
	}
}

func TestPlain(t *testing.T) {
	m := tree.NewMap()
	m.Set("name", tree.Leaf("generator"))
	m.Set("hosts", tree.List{tree.Leaf("a"), tree.Leaf("b")})

	got, ok := tree.Plain(m).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", tree.Plain(m))
	}
	if got["name"] != "generator" {
		t.Fatalf("unexpected name: %v", got["name"])
	}
	hosts, ok := got["hosts"].([]any)
	if !ok || len(hosts) != 2 || hosts[0] != "a" || hosts[1] != "b" {
		t.Fatalf("unexpected hosts: %v", got["hosts"])
	}
}
