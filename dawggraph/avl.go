package dawggraph

import "github.com/infinigram-go/cdawg/record"

// subtreeHeight reads the stored height of the AVL subtree rooted at
// idx in O(1); NoEdge has height 0. The height is kept on each edge
// record's Balance field (spec.md §4.4/§9: "each edge record stores
// left/right/balance fields") — we store the subtree height itself
// rather than a signed delta, and derive the signed balance factor
// (heightOf(left) - heightOf(right)) on demand in balanceFactor. The two
// are algorithmically equivalent for deciding rotations, and storing the
// height directly is simpler to keep consistent under rotation.
func (g *Graph) subtreeHeight(idx EdgeIndex) int8 {
	if idx == NoEdge {
		return 0
	}

	return g.Edges.Get(idx).Balance
}

// recomputeHeight recomputes and stores idx's height from its two
// children's stored heights. Children must already be up to date.
func (g *Graph) recomputeHeight(idx EdgeIndex) {
	e := g.Edges.Get(idx)
	lh := g.subtreeHeight(EdgeIndex(e.Left))
	rh := g.subtreeHeight(EdgeIndex(e.Right))
	h := lh
	if rh > h {
		h = rh
	}
	h++

	g.Edges.GetMut(idx, func(e *record.Edge) { e.Balance = h })
}

// balanceFactor returns heightOf(left) - heightOf(right) for the subtree
// rooted at idx. |balanceFactor| > 1 means idx needs rotating.
func (g *Graph) balanceFactor(idx EdgeIndex) int {
	e := g.Edges.Get(idx)

	return int(g.subtreeHeight(EdgeIndex(e.Left))) - int(g.subtreeHeight(EdgeIndex(e.Right)))
}

// rotateLeft performs a standard AVL left rotation around x, returning
// the new subtree root. Only index-level child swaps are performed —
// no record is copied or moved (spec.md §9).
func (g *Graph) rotateLeft(x EdgeIndex) EdgeIndex {
	xe := g.Edges.Get(x)
	y := EdgeIndex(xe.Right)
	ye := g.Edges.Get(y)

	g.Edges.GetMut(x, func(e *record.Edge) { e.Right = ye.Left })
	g.Edges.GetMut(y, func(e *record.Edge) { e.Left = int32(x) })

	g.recomputeHeight(x)
	g.recomputeHeight(y)

	return y
}

// rotateRight performs a standard AVL right rotation around x, returning
// the new subtree root.
func (g *Graph) rotateRight(x EdgeIndex) EdgeIndex {
	xe := g.Edges.Get(x)
	y := EdgeIndex(xe.Left)
	ye := g.Edges.Get(y)

	g.Edges.GetMut(x, func(e *record.Edge) { e.Left = ye.Right })
	g.Edges.GetMut(y, func(e *record.Edge) { e.Right = int32(x) })

	g.recomputeHeight(x)
	g.recomputeHeight(y)

	return y
}

// rebalance restores the AVL invariant at idx (|balanceFactor| <= 1)
// after an insertion below it, applying one of the four standard
// rotation cases (LL/RR/LR/RL) as needed, and returns the (possibly new)
// subtree root.
func (g *Graph) rebalance(idx EdgeIndex) EdgeIndex {
	g.recomputeHeight(idx)
	bf := g.balanceFactor(idx)

	if bf > 1 {
		e := g.Edges.Get(idx)
		left := EdgeIndex(e.Left)
		if g.balanceFactor(left) < 0 {
			newLeft := g.rotateLeft(left)
			g.Edges.GetMut(idx, func(e *record.Edge) { e.Left = int32(newLeft) })
		}

		return g.rotateRight(idx)
	}

	if bf < -1 {
		e := g.Edges.Get(idx)
		right := EdgeIndex(e.Right)
		if g.balanceFactor(right) > 0 {
			newRight := g.rotateRight(right)
			g.Edges.GetMut(idx, func(e *record.Edge) { e.Right = int32(newRight) })
		}

		return g.rotateLeft(idx)
	}

	return idx
}

// avlInsert inserts newIdx (an already-pushed, childless Edge record)
// into the tree rooted at rootIdx, keyed by probeToken, and returns the
// new subtree root. Panics if an edge keyed by probeToken already exists
// in this subtree — spec.md §3 guarantees the construction algorithm
// never attempts this, so a hit here means a corrupted invariant.
func (g *Graph) avlInsert(rootIdx EdgeIndex, newIdx EdgeIndex, probeToken uint16) EdgeIndex {
	if rootIdx == NoEdge {
		g.recomputeHeight(newIdx)

		return newIdx
	}

	switch g.compareProbe(rootIdx, probeToken) {
	case -1:
		root := g.Edges.Get(rootIdx)
		newLeft := g.avlInsert(EdgeIndex(root.Left), newIdx, probeToken)
		g.Edges.GetMut(rootIdx, func(e *record.Edge) { e.Left = int32(newLeft) })
	case 1:
		root := g.Edges.Get(rootIdx)
		newRight := g.avlInsert(EdgeIndex(root.Right), newIdx, probeToken)
		g.Edges.GetMut(rootIdx, func(e *record.Edge) { e.Right = int32(newRight) })
	default:
		panic("dawggraph: duplicate outgoing edge key (construction invariant violated)")
	}

	return g.rebalance(rootIdx)
}

// avlSearch looks up probeToken in the tree rooted at rootIdx in
// O(log k). Returns NoEdge, false on a miss.
func (g *Graph) avlSearch(rootIdx EdgeIndex, probeToken uint16) (EdgeIndex, bool) {
	idx := rootIdx
	for idx != NoEdge {
		switch g.compareProbe(idx, probeToken) {
		case -1:
			idx = EdgeIndex(g.Edges.Get(idx).Left)
		case 1:
			idx = EdgeIndex(g.Edges.Get(idx).Right)
		default:
			return idx, true
		}
	}

	return NoEdge, false
}

// avlInOrder appends, in ascending first-token order, every edge index
// in the subtree rooted at idx to out and returns the extended slice.
func (g *Graph) avlInOrder(idx EdgeIndex, out []EdgeIndex) []EdgeIndex {
	if idx == NoEdge {
		return out
	}

	e := g.Edges.Get(idx)
	out = g.avlInOrder(EdgeIndex(e.Left), out)
	out = append(out, idx)
	out = g.avlInOrder(EdgeIndex(e.Right), out)

	return out
}

// cloneSubtree deep-copies the AVL subtree rooted at idx into fresh edge
// records and returns the new root. Used by CloneEdges.
func (g *Graph) cloneSubtree(idx EdgeIndex) EdgeIndex {
	if idx == NoEdge {
		return NoEdge
	}

	e := g.Edges.Get(idx)
	newLeft := g.cloneSubtree(EdgeIndex(e.Left))
	newRight := g.cloneSubtree(EdgeIndex(e.Right))

	newIdx := g.Edges.Push(record.Edge{
		Start:   e.Start,
		End:     e.End,
		Target:  e.Target,
		Left:    int32(newLeft),
		Right:   int32(newRight),
		Balance: e.Balance,
	})

	return newIdx
}
