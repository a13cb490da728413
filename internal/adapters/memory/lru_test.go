package memory

import (
	"fmt"
	"testing"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

func entryFor(key string) domain.CacheEntry {
	return domain.CacheEntry{Key: key, Value: []byte(key)}
}

func TestLRUEvictsLeastRecentlyTouched(t *testing.T) {
	t.Parallel()

	m := newLRUMap(3)
	m.set("a", entryFor("a"))
	m.set("b", entryFor("b"))
	m.set("c", entryFor("c"))

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := m.get("a"); !ok {
		t.Fatalf("expected a present")
	}
	m.set("d", entryFor("d"))

	if _, ok := m.peek("b"); ok {
		t.Fatalf("expected b evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := m.peek(key); !ok {
			t.Fatalf("expected %s retained", key)
		}
	}
	if m.len() != 3 {
		t.Fatalf("expected len 3, got %d", m.len())
	}
}

func TestLRUInsertionOrderTieBreak(t *testing.T) {
	t.Parallel()

	m := newLRUMap(2)
	m.set("first", entryFor("first"))
	m.set("second", entryFor("second"))
	// Neither key touched: the original insertion order decides.
	m.set("third", entryFor("third"))

	if _, ok := m.peek("first"); ok {
		t.Fatalf("expected first evicted as oldest untouched key")
	}
	if _, ok := m.peek("second"); !ok {
		t.Fatalf("expected second retained")
	}
}

func TestLRUExactlyOneEvictionPerInsert(t *testing.T) {
	t.Parallel()

	m := newLRUMap(5)
	for i := 0; i < 50; i++ {
		m.set(fmt.Sprintf("key-%d", i), entryFor("v"))
		if m.len() > 5 {
			t.Fatalf("capacity exceeded at insert %d: len %d", i, m.len())
		}
	}
	if m.len() != 5 {
		t.Fatalf("expected len 5, got %d", m.len())
	}
}

func TestLRUSetExistingKeyDoesNotEvict(t *testing.T) {
	t.Parallel()

	m := newLRUMap(2)
	m.set("a", entryFor("a"))
	m.set("b", entryFor("b"))
	m.set("a", entryFor("a2"))

	if m.len() != 2 {
		t.Fatalf("expected len 2, got %d", m.len())
	}
	entry, ok := m.peek("a")
	if !ok || string(entry.Value) != "a2" {
		t.Fatalf("expected updated value for a")
	}
	// "b" is now least recently used; a new insert evicts it, not "a".
	m.set("c", entryFor("c"))
	if _, ok := m.peek("b"); ok {
		t.Fatalf("expected b evicted")
	}
}

func TestLRUKeysOldestFirst(t *testing.T) {
	t.Parallel()

	m := newLRUMap(3)
	m.set("a", entryFor("a"))
	m.set("b", entryFor("b"))
	m.set("c", entryFor("c"))
	if _, ok := m.get("a"); !ok {
		t.Fatalf("expected a present")
	}

	keys := m.keys()
	want := []string{"b", "c", "a"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, keys)
		}
	}
}
