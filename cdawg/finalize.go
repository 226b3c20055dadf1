package cdawg

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/record"
)

// Finalize runs the post-build reverse-topological pass that derives
// every node's Count: a leaf (no outgoing edges) contributes 1, and an
// internal node's Count is the sum of its children's (spec.md §4.5,
// "Post-build finalization").
//
// The visited set is marked the instant a node is entered, before its
// children are explored — not lazily when a child happens to exist.
// The source implementation this engine is modeled on marks a node
// visited only as a side effect of visiting its neighbors, which leaves
// a childless node unmarked and lets a node reachable from more than one
// parent start two independent subtree walks (spec.md §9 note (b)).
func (e *Engine) Finalize() error {
	visited := roaring.New()

	var walk func(n record.NodeIndex) int64
	walk = func(n record.NodeIndex) int64 {
		if visited.Contains(uint32(n)) {
			return e.Graph.Nodes.Get(n).Count
		}
		visited.Add(uint32(n))

		children := e.Graph.OutgoingEdges(n)

		var total int64
		if len(children) == 0 {
			total = 1
		} else {
			for _, ei := range children {
				target := record.NodeIndex(e.Graph.Edges.Get(ei).Target)
				total += walk(target)
			}
		}

		e.Graph.Nodes.GetMut(n, func(rec *record.Node) { rec.Count = total })

		return total
	}

	walk(dawggraph.Source)

	return nil
}
