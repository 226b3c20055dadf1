package cdawg_test

import (
	"testing"

	"github.com/infinigram-go/cdawg/cdawg"
	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/record"
	"github.com/infinigram-go/cdawg/token"
)

// buildEngine constructs a fresh RAM-backed engine, pushes toks into the
// shared token backing, and extends the automaton with every one of
// them, returning the engine for further inspection or finalization.
func buildEngine(t *testing.T, toks []uint16) *cdawg.Engine {
	t.Helper()

	tb := token.NewRAMBacking(len(toks))
	g, err := dawggraph.NewGraph(record.NewRAMNodeStore(0), record.NewRAMEdgeStore(0), tb)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}

	e := cdawg.NewEngine(g)
	for _, tk := range toks {
		tb.Push(tk)
		if err := e.Extend(tk); err != nil {
			t.Fatalf("Extend(%d): %v", tk, err)
		}
	}

	return e
}

// dfsArities performs a DFS from source over the outgoing-edge DAG,
// visiting each reachable node exactly once (visited is marked the
// instant a node is popped, matching Finalize's fix — spec.md §9 note
// (b)), and returns the out-degree of each node in visitation order.
func dfsArities(g *dawggraph.Graph) []int {
	visited := map[dawggraph.NodeIndex]bool{}
	var out []int

	var walk func(n dawggraph.NodeIndex)
	walk = func(n dawggraph.NodeIndex) {
		if visited[n] {
			return
		}
		visited[n] = true

		edges := g.OutgoingEdges(n)
		out = append(out, len(edges))
		for _, ei := range edges {
			walk(dawggraph.NodeIndex(g.Edges.Get(ei).Target))
		}
	}
	walk(dawggraph.Source)

	return out
}
