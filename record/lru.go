package record

import "container/list"

// lruCache is a fixed-capacity, strictly least-recently-used cache
// keyed by record index. It is the "LRU cache over record-sized windows"
// of spec.md §4.2: transparent to callers, eviction order is exact LRU
// with no probabilistic admission (see SPEC_FULL.md §5 for why a
// TinyLFU-style cache such as ristretto was rejected for this role).
//
// Not safe for concurrent use — spec.md §5 documents the cache as
// non-shared; a concurrent reader needs its own instance.
type lruCache struct {
	capacity int
	items    map[int32]*list.Element
	order    *list.List // front = most recently used, back = least
}

type lruEntry struct {
	key   int32
	value any
}

// newLRUCache returns a cache holding at most capacity entries.
// capacity <= 0 disables caching: every get is a miss.
func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		items:    make(map[int32]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the cached value for key and moves it to the front of the
// recency list. ok is false on a miss or when caching is disabled.
func (c *lruCache) get(key int32) (value any, ok bool) {
	if c.capacity <= 0 {
		return nil, false
	}

	el, found := c.items[key]
	if !found {
		return nil, false
	}
	c.order.MoveToFront(el)

	return el.Value.(*lruEntry).value, true
}

// set inserts or updates the cached value for key, evicting the least
// recently used entry if the cache is at capacity.
func (c *lruCache) set(key int32, value any) {
	if c.capacity <= 0 {
		return
	}

	if el, found := c.items[key]; found {
		el.Value.(*lruEntry).value = value
		c.order.MoveToFront(el)

		return
	}

	el := c.order.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = el

	if c.order.Len() > c.capacity {
		back := c.order.Back()
		if back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(*lruEntry).key)
		}
	}
}

// invalidate drops key from the cache, if present. Used when a mutation
// (GetMut) changes a record's on-disk bytes out from under a stale entry.
func (c *lruCache) invalidate(key int32) {
	if el, found := c.items[key]; found {
		c.order.Remove(el)
		delete(c.items, key)
	}
}
