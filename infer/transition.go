package infer

import (
	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/record"
)

// GetInitial returns the query state positioned at the source with an
// empty span and zero matched length (spec.md §4.6).
func GetInitial(g *dawggraph.Graph) State {
	return State{
		Node:       dawggraph.Source,
		GammaStart: 1,
		GammaEnd:   0,
		Target:     dawggraph.Source,
		Length:     0,
	}
}

// Transition advances s by one query token (spec.md §4.6). A token that
// does not continue the current match falls back along suffix links,
// shrinking Length, until either a continuation is found or the source
// itself fails to match — in which case the result collapses to the
// initial state. This is not an error: an out-of-domain query is
// expected, resolved behavior (spec.md §7).
func Transition(g *dawggraph.Graph, s State, tok uint16) State {
	node, gammaStart, gammaEnd, length := s.Node, s.GammaStart, s.GammaEnd, s.Length

	for {
		if gammaStart > gammaEnd {
			if edgeIdx, ok := g.Lookup(node, tok); ok {
				edge := g.Edges.Get(edgeIdx)
				target := record.NodeIndex(edge.Target)
				newLength := length + 1

				if g.EffectiveEnd(edge.End) == edge.Start {
					return State{Node: target, GammaStart: 1, GammaEnd: 0, Target: target, Length: newLength}
				}

				return State{Node: node, GammaStart: edge.Start, GammaEnd: edge.Start, Target: target, Length: newLength}
			}

			if node == dawggraph.Source {
				return GetInitial(g)
			}

			node = record.NodeIndex(g.Nodes.Get(node).Failure)
			length = g.Nodes.Get(node).Length
			gammaStart, gammaEnd = 1, 0

			continue
		}

		edgeIdx, ok := g.Lookup(node, g.Tokens.Get(int(gammaStart)-1))
		if !ok {
			panic("infer: invariant violated: no active edge for non-empty gamma span")
		}
		edge := g.Edges.Get(edgeIdx)
		nextPos := gammaEnd + 1
		target := record.NodeIndex(edge.Target)

		if g.Tokens.Get(int(nextPos)-1) == tok {
			newGammaEnd := gammaEnd + 1
			newLength := length + 1
			if g.EffectiveEnd(edge.End) == newGammaEnd {
				return State{Node: target, GammaStart: 1, GammaEnd: 0, Target: target, Length: newLength}
			}

			return State{Node: node, GammaStart: gammaStart, GammaEnd: newGammaEnd, Target: target, Length: newLength}
		}

		if node == dawggraph.Source {
			// The source has no suffix link: drop the span's first token
			// and re-walk the rest of it from the source instead.
			length = int64(gammaEnd - gammaStart)
			node, gammaStart, gammaEnd, _ = canonizeFrom(g, dawggraph.Source, gammaStart+1, gammaEnd)

			continue
		}

		failNode := record.NodeIndex(g.Nodes.Get(node).Failure)
		matchedLen := gammaEnd - gammaStart + 1
		newNode, newStart, newEnd, _ := canonizeFrom(g, failNode, gammaStart, gammaEnd)

		node = newNode
		gammaStart, gammaEnd = newStart, newEnd
		length = g.Nodes.Get(failNode).Length + int64(matchedLen)
	}
}

// canonizeFrom walks the span [start,end] of real corpus positions
// starting at node, advancing across whole edges exactly as the
// construction engine's own canonize does, except it may start from any
// node rather than only the active point's current node — used to
// re-locate a query position after a suffix-link fallback (spec.md §4.6,
// "implicit re-canonization"). The span's token values are read directly
// from the shared token backing, so they remain valid regardless of
// which edges originally spelled them.
func canonizeFrom(g *dawggraph.Graph, node record.NodeIndex, start, end uint64) (record.NodeIndex, uint64, uint64, record.NodeIndex) {
	target := node
	for start <= end {
		probe := g.Tokens.Get(int(start) - 1)
		edgeIdx, ok := g.Lookup(node, probe)
		if !ok {
			panic("infer: invariant violated: no edge during re-canonization")
		}

		edge := g.Edges.Get(edgeIdx)
		edgeLen := g.EffectiveEnd(edge.End) - edge.Start + 1
		spanLen := end - start + 1
		target = record.NodeIndex(edge.Target)

		if edgeLen > spanLen {
			return node, start, end, target
		}

		start += edgeLen
		node = target
	}

	return node, start, end, node
}
