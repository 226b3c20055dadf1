package record

// CachedNodeStore fronts a DiskNodeStore with a strict-LRU decode cache,
// avoiding repeated little-endian decode work for hot node indices. It
// is transparent: callers see the same logical index → Node mapping as
// the underlying DiskNodeStore (spec.md §4.2).
type CachedNodeStore struct {
	disk  *DiskNodeStore
	cache *lruCache
}

// NewCachedNodeStore wraps disk with an LRU decode cache of the given
// record capacity. capacity <= 0 makes every read a pass-through miss.
func NewCachedNodeStore(disk *DiskNodeStore, capacity int) *CachedNodeStore {
	return &CachedNodeStore{disk: disk, cache: newLRUCache(capacity)}
}

// Len reports the number of node records stored.
func (s *CachedNodeStore) Len() int {
	return s.disk.Len()
}

// Push appends n, invalidating nothing (new indices are never cached
// stale).
func (s *CachedNodeStore) Push(n Node) NodeIndex {
	return s.disk.Push(n)
}

// Get returns the node at index i, serving from cache on a hit.
func (s *CachedNodeStore) Get(i NodeIndex) Node {
	if v, ok := s.cache.get(int32(i)); ok {
		return v.(Node)
	}

	n := s.disk.Get(i)
	s.cache.set(int32(i), n)

	return n
}

// GetMut mutates the node at index i on disk and invalidates any stale
// cache entry so the next Get re-decodes.
func (s *CachedNodeStore) GetMut(i NodeIndex, fn func(*Node)) {
	s.disk.GetMut(i, fn)
	s.cache.invalidate(int32(i))
}

// Close closes the underlying disk store.
func (s *CachedNodeStore) Close() error {
	return s.disk.Close()
}

var _ NodeStore = (*CachedNodeStore)(nil)

// CachedEdgeStore fronts a DiskEdgeStore with a strict-LRU decode cache.
type CachedEdgeStore struct {
	disk  *DiskEdgeStore
	cache *lruCache
}

// NewCachedEdgeStore wraps disk with an LRU decode cache of the given
// record capacity. capacity <= 0 makes every read a pass-through miss.
func NewCachedEdgeStore(disk *DiskEdgeStore, capacity int) *CachedEdgeStore {
	return &CachedEdgeStore{disk: disk, cache: newLRUCache(capacity)}
}

// Len reports the number of edge records stored.
func (s *CachedEdgeStore) Len() int {
	return s.disk.Len()
}

// Push appends e.
func (s *CachedEdgeStore) Push(e Edge) EdgeIndex {
	return s.disk.Push(e)
}

// Get returns the edge at index i, serving from cache on a hit.
func (s *CachedEdgeStore) Get(i EdgeIndex) Edge {
	if v, ok := s.cache.get(int32(i)); ok {
		return v.(Edge)
	}

	e := s.disk.Get(i)
	s.cache.set(int32(i), e)

	return e
}

// GetMut mutates the edge at index i on disk and invalidates any stale
// cache entry.
func (s *CachedEdgeStore) GetMut(i EdgeIndex, fn func(*Edge)) {
	s.disk.GetMut(i, fn)
	s.cache.invalidate(int32(i))
}

// Close closes the underlying disk store.
func (s *CachedEdgeStore) Close() error {
	return s.disk.Close()
}

var _ EdgeStore = (*CachedEdgeStore)(nil)
