package memory

import (
	"container/list"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

// lruMap is a fixed-capacity key-value store with least-recently-used
// eviction. The intrusive list keeps recency order: front is the least
// recently touched entry, back the most recent. Two keys that were never
// touched after insertion keep their original insertion order relative to
// each other, so eviction ties break by insertion order.
//
// Not safe for concurrent use; the owning adapter holds the lock.
type lruMap struct {
	capacity int
	index    map[string]*list.Element
	order    *list.List
}

type lruSlot struct {
	key   string
	entry domain.CacheEntry
}

func newLRUMap(capacity int) *lruMap {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &lruMap{
		capacity: capacity,
		index:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the entry and marks the key most recently used.
func (m *lruMap) get(key string) (domain.CacheEntry, bool) {
	el, ok := m.index[key]
	if !ok {
		return domain.CacheEntry{}, false
	}
	m.order.MoveToBack(el)
	return el.Value.(*lruSlot).entry, true
}

// peek returns the entry without touching recency.
func (m *lruMap) peek(key string) (domain.CacheEntry, bool) {
	el, ok := m.index[key]
	if !ok {
		return domain.CacheEntry{}, false
	}
	return el.Value.(*lruSlot).entry, true
}

// set inserts or replaces an entry. Inserting a new key at capacity evicts
// exactly one entry, the current least-recently-used, before insertion.
func (m *lruMap) set(key string, entry domain.CacheEntry) {
	if el, ok := m.index[key]; ok {
		el.Value.(*lruSlot).entry = entry
		m.order.MoveToBack(el)
		return
	}
	if m.order.Len() >= m.capacity {
		if front := m.order.Front(); front != nil {
			delete(m.index, front.Value.(*lruSlot).key)
			m.order.Remove(front)
		}
	}
	m.index[key] = m.order.PushBack(&lruSlot{key: key, entry: entry})
}

func (m *lruMap) delete(key string) bool {
	el, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	m.order.Remove(el)
	return true
}

func (m *lruMap) len() int { return m.order.Len() }

func (m *lruMap) clear() {
	m.index = make(map[string]*list.Element, m.capacity)
	m.order.Init()
}

// keys lists keys least-recently-used first.
func (m *lruMap) keys() []string {
	out := make([]string, 0, m.order.Len())
	for el := m.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*lruSlot).key)
	}
	return out
}
