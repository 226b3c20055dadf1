package dawggraph

import "github.com/infinigram-go/cdawg/record"

// AddNode appends a new node with the given length and suffix-link
// failure target (NoNode for none) and returns its index.
//
// Complexity: O(1).
func (g *Graph) AddNode(length int64, failure NodeIndex) NodeIndex {
	return g.Nodes.Push(record.Node{
		Length:    length,
		Failure:   int32(failure),
		FirstEdge: record.NoIndex,
	})
}

// AddBalancedEdge inserts a new edge from -> [start,end] -> to into
// from's per-node AVL tree, keyed by the token at position start (1-based
// span start, spec.md §3). Panics if from already has an outgoing edge
// keyed by that token — the construction algorithm guarantees this never
// happens (spec.md §4.4).
//
// Complexity: O(log k) where k is from's current out-degree.
func (g *Graph) AddBalancedEdge(from NodeIndex, start, end uint64, to NodeIndex) EdgeIndex {
	probe := g.tokenAt(start)

	newIdx := g.Edges.Push(record.Edge{
		Start:  start,
		End:    end,
		Target: int32(to),
		Left:   record.NoIndex,
		Right:  record.NoIndex,
	})

	n := g.Nodes.Get(from)
	newRoot := g.avlInsert(EdgeIndex(n.FirstEdge), newIdx, probe)
	g.Nodes.GetMut(from, func(n *record.Node) { n.FirstEdge = int32(newRoot) })

	return newIdx
}

// Lookup searches from's outgoing edges for one keyed by probeToken.
//
// Complexity: O(log k).
func (g *Graph) Lookup(from NodeIndex, probeToken uint16) (EdgeIndex, bool) {
	n := g.Nodes.Get(from)

	return g.avlSearch(EdgeIndex(n.FirstEdge), probeToken)
}

// RerouteEdge replaces an existing edge's target and/or end position
// in place, without touching the AVL structure around it — legal
// because neither field participates in the first-token ordering
// (spec.md §4.4, "reroute_edge").
//
// Complexity: O(1).
func (g *Graph) RerouteEdge(edgeIdx EdgeIndex, newTarget NodeIndex, newEnd uint64) {
	g.Edges.GetMut(edgeIdx, func(e *record.Edge) {
		e.Target = int32(newTarget)
		e.End = newEnd
	})
}

// CloneEdges deep-copies the entire outgoing-edge subtree of oldNode and
// installs the copy as newNode's outgoing-edge tree, so that subsequent
// mutation of edges out of newNode never affects oldNode (spec.md §4.4,
// "clone_edges").
//
// Complexity: O(k) in oldNode's out-degree.
func (g *Graph) CloneEdges(oldNode, newNode NodeIndex) {
	old := g.Nodes.Get(oldNode)
	newRoot := g.cloneSubtree(EdgeIndex(old.FirstEdge))
	g.Nodes.GetMut(newNode, func(n *record.Node) { n.FirstEdge = int32(newRoot) })
}

// OutgoingEdges returns from's outgoing edges in ascending first-token
// order. Named apart from the Edges field (the edge record store) so the
// two never collide.
//
// Complexity: O(k).
func (g *Graph) OutgoingEdges(from NodeIndex) []EdgeIndex {
	n := g.Nodes.Get(from)

	return g.avlInOrder(EdgeIndex(n.FirstEdge), nil)
}

// Neighbors returns the target nodes of from's outgoing edges in
// ascending first-token order (parallel to OutgoingEdges).
//
// Complexity: O(k).
func (g *Graph) Neighbors(from NodeIndex) []NodeIndex {
	edgeIdxs := g.OutgoingEdges(from)
	out := make([]NodeIndex, len(edgeIdxs))
	for i, ei := range edgeIdxs {
		out[i] = NodeIndex(g.Edges.Get(ei).Target)
	}

	return out
}

// OutDegree returns the number of outgoing edges from.
//
// Complexity: O(k) (walks the AVL tree; spec.md does not require O(1)
// arity and no extra bookkeeping field is worth the space for it).
func (g *Graph) OutDegree(from NodeIndex) int {
	return len(g.OutgoingEdges(from))
}
