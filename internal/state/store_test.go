package state

import (
	"sort"
	"testing"
)

func TestStoreCopiesDefaults(t *testing.T) {
	defaults := map[string]any{"coins": 10}
	a := NewStore(defaults)
	b := NewStore(defaults)
	a.Set("coins", 3)
	if Int(b, "coins", -1) != 10 {
		t.Fatalf("expected independent stores, got %d", Int(b, "coins", -1))
	}
	if defaults["coins"] != 10 {
		t.Fatal("expected defaults to remain untouched")
	}
}

func TestStoreNotifiesOnChange(t *testing.T) {
	s := NewStore(nil)
	var changed []string
	s.OnChange(func(key string) { changed = append(changed, key) })
	s.Set("a", 1)
	s.Delete("a")
	s.Delete("missing")
	if len(changed) != 2 || changed[0] != "a" || changed[1] != "a" {
		t.Fatalf("expected two notifications for a, got %v", changed)
	}
}

func TestTypedHelpers(t *testing.T) {
	s := NewStore(map[string]any{"flag": true, "name": "alex", "n": "not-int"})
	if !Bool(s, "flag") || Bool(s, "missing") {
		t.Fatal("unexpected Bool results")
	}
	if String(s, "name") != "alex" || String(s, "flag") != "" {
		t.Fatal("unexpected String results")
	}
	if Int(s, "n", 7) != 7 {
		t.Fatal("expected fallback for mistyped int")
	}
	if Toggle(s, "flag") {
		t.Fatal("expected toggle to false")
	}
	if Add(s, "count", 2) != 2 || Add(s, "count", 3) != 5 {
		t.Fatal("unexpected Add results")
	}
	keys := s.Keys()
	sort.Strings(keys)
	if len(keys) != 4 || keys[0] != "count" {
		t.Fatalf("unexpected keys %v", keys)
	}
	snap := s.Snapshot()
	snap["count"] = 100
	if Int(s, "count", 0) != 5 {
		t.Fatal("expected snapshot to be a copy")
	}
}
