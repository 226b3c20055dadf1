package cdawg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infinigram-go/cdawg/dawggraph"
)

// "cocoa" as [c=0, o=1, c=0, o=1, a=2, SENTINEL]. DFS from source visiting
// each node once must yield the out-degree sequence [4, 2, 1] (spec.md
// §8 scenario 1).
func TestScenario_CocoaArities(t *testing.T) {
	toks := []uint16{0, 1, 0, 1, 2, 0xFFFF}
	e := buildEngine(t, toks)
	require.NoError(t, e.Finalize())

	arities := dfsArities(e.Graph)
	require.Equal(t, []int{4, 2, 1}, arities)
}

// Universal invariant: node/edge counts stay within O(n) bounds, and the
// sum of leaf counts after Finalize equals the corpus length.
func TestInvariant_NodeEdgeBoundsAndLeafCountSum(t *testing.T) {
	toks := []uint16{'m', 'i', 's', 's', 'i', 's', 's', 'i', 'p', 'p', 'i', 0xFFFF}
	e := buildEngine(t, toks)
	require.NoError(t, e.Finalize())

	n := len(toks)
	require.LessOrEqual(t, e.Graph.Nodes.Len(), 2*n)
	require.LessOrEqual(t, e.Graph.Edges.Len(), 3*n)

	var sum int64
	var walk func(nd dawggraph.NodeIndex, seen map[dawggraph.NodeIndex]bool)
	walk = func(nd dawggraph.NodeIndex, seen map[dawggraph.NodeIndex]bool) {
		if seen[nd] {
			return
		}
		seen[nd] = true

		edges := e.Graph.OutgoingEdges(nd)
		if len(edges) == 0 {
			sum += e.Graph.Nodes.Get(nd).Count
			return
		}
		for _, ei := range edges {
			walk(dawggraph.NodeIndex(e.Graph.Edges.Get(ei).Target), seen)
		}
	}
	walk(dawggraph.Source, map[dawggraph.NodeIndex]bool{})

	require.Equal(t, int64(n), sum)
}

// Boundary: single-token corpus has two non-source nodes and one edge
// out of source (spec.md §8, "Boundary").
func TestBoundary_SingleToken(t *testing.T) {
	e := buildEngine(t, []uint16{7, 0xFFFF})

	require.Len(t, e.Graph.OutgoingEdges(dawggraph.Source), 1)
}

// Boundary: a run of identical tokens forms a linear chain of states.
func TestBoundary_RepeatingToken(t *testing.T) {
	e := buildEngine(t, []uint16{5, 5, 5, 0xFFFF})
	require.NoError(t, e.Finalize())

	require.Len(t, e.Graph.OutgoingEdges(dawggraph.Source), 2) // one edge for '5', one for SENTINEL
}
