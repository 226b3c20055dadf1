package compact

import "github.com/infinigram-go/cdawg/dawggraph"

// Compact flattens g's per-node AVL trees into sorted edge slabs. g is
// read only; the graph's own build-time structure is untouched
// (spec.md §4.7).
//
// Complexity: O(nodes + edges).
func Compact(g *dawggraph.Graph) (*Compacted, error) {
	n := g.Nodes.Len()

	c := &Compacted{
		Nodes: make([]CompactNode, n),
		Edges: make([]CompactEdge, 0, g.Edges.Len()),
		End:   g.End,
	}

	for i := 0; i < n; i++ {
		node := dawggraph.NodeIndex(i)
		edgeIdxs := g.OutgoingEdges(node)

		c.Nodes[i] = CompactNode{
			FirstEdge: int32(len(c.Edges)),
			NumEdges:  int32(len(edgeIdxs)),
		}

		for _, ei := range edgeIdxs {
			e := g.Edges.Get(ei)
			tok := g.Tokens.Get(int(e.Start) - 1)

			c.Edges = append(c.Edges, CompactEdge{
				Token:  tok,
				Start:  e.Start,
				End:    g.EffectiveEnd(e.End),
				Target: dawggraph.NodeIndex(e.Target),
			})
		}
	}

	return c, nil
}

// Lookup binary-searches node's outgoing edges for one keyed by tok,
// replacing dawggraph.Graph.Lookup's AVL walk with a search over the
// contiguous slab (spec.md §4.7).
//
// Complexity: O(log k) where k is node's out-degree.
func (c *Compacted) Lookup(node dawggraph.NodeIndex, tok uint16) (CompactEdge, bool) {
	cn := c.Nodes[node]
	edges := c.Edges[cn.FirstEdge : cn.FirstEdge+cn.NumEdges]

	lo, hi := 0, len(edges)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if edges[mid].Token < tok {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo < len(edges) && edges[lo].Token == tok {
		return edges[lo], true
	}

	return CompactEdge{}, false
}

// Neighbors returns node's outgoing edges in ascending token order.
//
// Complexity: O(1) (a slice re-slice, no copy).
func (c *Compacted) Neighbors(node dawggraph.NodeIndex) []CompactEdge {
	cn := c.Nodes[node]

	return c.Edges[cn.FirstEdge : cn.FirstEdge+cn.NumEdges]
}
