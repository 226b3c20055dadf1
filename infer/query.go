package infer

import (
	"math"

	"github.com/infinigram-go/cdawg/dawggraph"
)

// NextToken is one entry of a next-token probability distribution.
type NextToken struct {
	Token       uint16
	Probability float64
}

// GetSuffixCount returns the occurrence count of the suffix matched by
// s: the number of corpus end positions whose longest match passes
// through s.Target (spec.md §4.6).
func GetSuffixCount(g *dawggraph.Graph, s State) int64 {
	return g.Nodes.Get(s.Target).Count
}

// GetEntropy returns the empirical entropy, in bits, of the token that
// follows s. Mid-edge, the continuation is deterministic so entropy is
// always 0; at a node, it is computed over the node's outgoing edges
// weighted by their targets' counts (spec.md §4.6).
func GetEntropy(g *dawggraph.Graph, s State) float64 {
	if !s.AtNode() {
		return 0
	}

	denom := g.Nodes.Get(s.Node).Count
	if denom == 0 {
		return 0
	}

	var entropy float64
	for _, child := range g.Neighbors(s.Node) {
		count := g.Nodes.Get(child).Count
		if count == 0 {
			continue
		}
		p := float64(count) / float64(denom)
		entropy -= p * math.Log2(p)
	}

	return entropy
}

// GetNextTokens returns the possible continuations of s. Mid-edge, there
// is exactly one, with probability 1; at a node, one per outgoing edge,
// weighted by the target's count over the node's own count (spec.md
// §4.6).
func GetNextTokens(g *dawggraph.Graph, s State) []NextToken {
	if !s.AtNode() {
		tok := g.Tokens.Get(int(s.GammaEnd+1) - 1)
		return []NextToken{{Token: tok, Probability: 1}}
	}

	denom := g.Nodes.Get(s.Node).Count
	edges := g.OutgoingEdges(s.Node)
	out := make([]NextToken, 0, len(edges))
	for _, ei := range edges {
		edge := g.Edges.Get(ei)
		tok := g.Tokens.Get(int(edge.Start) - 1)

		var prob float64
		if denom != 0 {
			prob = float64(g.Nodes.Get(dawggraph.NodeIndex(edge.Target)).Count) / float64(denom)
		}

		out = append(out, NextToken{Token: tok, Probability: prob})
	}

	return out
}
