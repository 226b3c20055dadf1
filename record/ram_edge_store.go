package record

// RAMEdgeStore is an in-memory EdgeStore: a plain growable slice.
type RAMEdgeStore struct {
	edges []Edge
}

// NewRAMEdgeStore returns an empty in-memory EdgeStore.
func NewRAMEdgeStore(capacityHint int) *RAMEdgeStore {
	if capacityHint < 0 {
		capacityHint = 0
	}

	return &RAMEdgeStore{edges: make([]Edge, 0, capacityHint)}
}

// Len reports the number of edges stored.
func (s *RAMEdgeStore) Len() int {
	return len(s.edges)
}

// Push appends e and returns its index.
func (s *RAMEdgeStore) Push(e Edge) EdgeIndex {
	s.edges = append(s.edges, e)

	return EdgeIndex(len(s.edges) - 1)
}

// Get returns a copy of the edge at index i.
func (s *RAMEdgeStore) Get(i EdgeIndex) Edge {
	if int(i) < 0 || int(i) >= len(s.edges) {
		panic(ErrOutOfRange)
	}

	return s.edges[i]
}

// GetMut invokes fn with a pointer to the edge at index i, applying any
// mutation fn makes directly to the backing slice.
func (s *RAMEdgeStore) GetMut(i EdgeIndex, fn func(*Edge)) {
	if int(i) < 0 || int(i) >= len(s.edges) {
		panic(ErrOutOfRange)
	}

	fn(&s.edges[i])
}

// Close is a no-op for RAMEdgeStore; it never fails.
func (s *RAMEdgeStore) Close() error {
	return nil
}

var _ EdgeStore = (*RAMEdgeStore)(nil)
