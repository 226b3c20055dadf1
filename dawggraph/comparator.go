package dawggraph

import "github.com/infinigram-go/cdawg/record"

// tokenAt returns the token at 1-based position start, i.e. the token
// that begins the edge whose span starts at start (spec.md §4.3: "the
// token at position start-1 of each edge's span, 0-based into the token
// backing").
func (g *Graph) tokenAt(start uint64) uint16 {
	return g.Tokens.Get(int(start) - 1)
}

// firstToken returns the token that keys edge e in its source node's
// AVL tree.
func (g *Graph) firstToken(e record.Edge) uint16 {
	return g.tokenAt(e.Start)
}

// compareProbe orders probe against the edge rooted at idx by first
// token: negative if probe sorts before idx's edge, positive if after,
// zero if they key the same token (spec.md §3: "two edges leaving the
// same node never share a first token" — a zero result during AddBalancedEdge
// is a construction invariant violation).
func (g *Graph) compareProbe(idx EdgeIndex, probe uint16) int {
	tok := g.firstToken(g.Edges.Get(idx))
	switch {
	case probe < tok:
		return -1
	case probe > tok:
		return 1
	default:
		return 0
	}
}
