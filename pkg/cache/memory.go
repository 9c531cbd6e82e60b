package cache

import (
	"container/list"
	"sync"
	"time"
)

// memoryTier is the in-process LRU tier. A map holds the entries and a
// doubly-linked list tracks access order; the list front is the eviction
// candidate and the tail is the most recently used.
type memoryTier struct {
	mu      sync.Mutex
	max     int
	entries map[string]*list.Element
	order   *list.List
}

// memoryItem is the list element payload.
type memoryItem struct {
	hash  string
	entry *Entry
}

func newMemoryTier(max int) *memoryTier {
	return &memoryTier{
		max:     max,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// get returns the entry for hash, bumping it to most-recently-used.
// Expired entries are removed and reported as a miss.
func (m *memoryTier) get(hash string, now time.Time) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[hash]
	if !ok {
		return nil
	}
	item := el.Value.(*memoryItem)
	if item.entry.Expired(now) {
		m.order.Remove(el)
		delete(m.entries, hash)
		return nil
	}
	m.order.MoveToBack(el)
	item.entry.HitCount++
	cp := *item.entry
	return &cp
}

// put inserts or replaces the entry for hash, evicting the least recently
// used entry when at capacity.
func (m *memoryTier) put(hash string, entry *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[hash]; ok {
		el.Value.(*memoryItem).entry = entry
		m.order.MoveToBack(el)
		return
	}

	for m.order.Len() >= m.max {
		oldest := m.order.Front()
		if oldest == nil {
			break
		}
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*memoryItem).hash)
	}

	m.entries[hash] = m.order.PushBack(&memoryItem{hash: hash, entry: entry})
}

// delete removes the entry for hash if present.
func (m *memoryTier) delete(hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[hash]; ok {
		m.order.Remove(el)
		delete(m.entries, hash)
	}
}

// len returns the number of live entries.
func (m *memoryTier) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// cleanup removes expired entries and returns how many were dropped.
func (m *memoryTier) cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int
	for el := m.order.Front(); el != nil; {
		next := el.Next()
		item := el.Value.(*memoryItem)
		if item.entry.Expired(now) {
			m.order.Remove(el)
			delete(m.entries, item.hash)
			removed++
		}
		el = next
	}
	return removed
}

// clear drops all entries.
func (m *memoryTier) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*list.Element)
	m.order.Init()
}
