package dawggraph

import (
	"errors"

	"github.com/infinigram-go/cdawg/record"
	"github.com/infinigram-go/cdawg/token"
)

// NodeIndex and EdgeIndex are re-exported from record so callers of this
// package never need to import record directly for everyday use.
type (
	NodeIndex = record.NodeIndex
	EdgeIndex = record.EdgeIndex
)

// NoNode and NoEdge are the "absent" sentinels for NodeIndex/EdgeIndex
// fields (a node's Failure link, an edge's Left/Right AVL children).
const (
	NoNode NodeIndex = NodeIndex(record.NoIndex)
	NoEdge EdgeIndex = EdgeIndex(record.NoIndex)
)

// Source and Sink are the two distinguished nodes created at Graph
// construction (spec.md §3, "Special nodes").
const (
	Source NodeIndex = 0
	Sink   NodeIndex = 1
)

// Sentinel errors for graph substrate operations.
var (
	// ErrNilStore indicates NewGraph was called with a nil NodeStore,
	// EdgeStore, or token.Backing.
	ErrNilStore = errors.New("dawggraph: node store, edge store, and token backing must be non-nil")
)

// Graph is the CDAWG graph substrate: a node store, an edge store, the
// shared token backing their edge spans index into, and the engine's
// current end pointer.
//
// Graph itself performs no synchronization (spec.md §5): construction is
// single-threaded by contract, and read-only inference callers must not
// overlap with an in-progress build.
type Graph struct {
	Nodes record.NodeStore
	Edges record.EdgeStore
	// Tokens is the corpus the engine is building over; Graph reads it
	// (via the edge comparator) but never writes to it.
	Tokens token.Backing
	// End is the engine's global end pointer: every open edge (End ==
	// record.OpenEnd) resolves to this value when read.
	End uint64
}

// NewGraph wires up nodes, edges, and tokens into a Graph. If nodes is
// empty, it creates the Source and Sink nodes (spec.md §3); if nodes
// already contains records (the persist.Load path), it assumes Source/
// Sink already occupy indices 0/1 and leaves them untouched.
func NewGraph(nodes record.NodeStore, edges record.EdgeStore, tokens token.Backing) (*Graph, error) {
	if nodes == nil || edges == nil || tokens == nil {
		return nil, ErrNilStore
	}

	g := &Graph{Nodes: nodes, Edges: edges, Tokens: tokens}

	if nodes.Len() == 0 {
		src := nodes.Push(record.Node{Length: 0, Failure: record.NoIndex, FirstEdge: record.NoIndex})
		sink := nodes.Push(record.Node{Length: 1, Failure: int32(src), FirstEdge: record.NoIndex})
		if src != Source || sink != Sink {
			panic("dawggraph: Source/Sink must be the first two nodes created")
		}
	}

	return g, nil
}

// EffectiveEnd resolves an edge's End field against the graph's current
// end pointer: OpenEnd reads as g.End, anything else is a literal,
// already-closed position (spec.md §4.5, "Span normalization").
func (g *Graph) EffectiveEnd(end uint64) uint64 {
	if end == record.OpenEnd {
		return g.End
	}

	return end
}

// SpanLen returns the number of tokens spelled by e (inclusive 1-based
// span, resolved against the current end pointer).
func (g *Graph) SpanLen(e record.Edge) uint64 {
	return g.EffectiveEnd(e.End) - e.Start + 1
}
