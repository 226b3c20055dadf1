package compact

import "github.com/infinigram-go/cdawg/dawggraph"

// CompactNode is a node's outgoing-edge range within the shared Edges
// slab (spec.md §4.7).
type CompactNode struct {
	FirstEdge int32
	NumEdges  int32
}

// CompactEdge is one transition, flattened out of the per-node AVL tree.
// Token is copied out so that a lookup never needs to consult the token
// backing; edges for a given node are stored in ascending Token order,
// exactly as the AVL in-order walk produced them.
type CompactEdge struct {
	Token  uint16
	Start  uint64
	End    uint64
	Target dawggraph.NodeIndex
}

// Compacted is the flattened, read-only view of a dawggraph.Graph: a
// parallel node slab indexed by dawggraph.NodeIndex, and a single edge
// slab that every node's CompactNode range slices into.
type Compacted struct {
	Nodes []CompactNode
	Edges []CompactEdge
	// End is the end pointer in effect when the graph was compacted; any
	// edge whose End equalled dawggraph's open-end sentinel was resolved
	// against it at compaction time, so Compacted carries no notion of
	// "still open" — it is a frozen snapshot (spec.md §4.7, "pure
	// read-only re-encoding").
	End uint64
}
