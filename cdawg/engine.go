package cdawg

import (
	"errors"
	"fmt"

	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/record"
)

// ErrInvariant marks a failure that indicates the active point or the
// graph it walks is no longer consistent with the construction
// invariants (spec.md §7: "Corruption / invariant violation... fatal").
var ErrInvariant = errors.New("cdawg: construction invariant violated")

// Engine drives the online CDAWG construction described in spec.md §4.5.
// It holds the graph substrate plus the active point: the (node, span)
// pair tracking how far the most recently processed suffix chain has
// been matched.
type Engine struct {
	Graph *dawggraph.Graph

	activeNode  record.NodeIndex
	activeStart uint64
	activeEnd   uint64
}

// NewEngine wraps g with a fresh active point positioned at the source
// with an empty span, ready to ingest the first token. g's Nodes store
// must already contain (only) Source and Sink, i.e. g must come from
// dawggraph.NewGraph on an empty NodeStore.
func NewEngine(g *dawggraph.Graph) *Engine {
	return &Engine{
		Graph:       g,
		activeNode:  dawggraph.Source,
		activeStart: 1,
		activeEnd:   0,
	}
}

// Extend ingests one token, performing the Inenaga update described in
// spec.md §4.5 steps 1-6. Sentinel tokens are not special-cased here —
// re-anchoring at document boundaries is the build driver's job
// (spec.md §6, "Token sentinel").
func (e *Engine) Extend(tok uint16) error {
	e.Graph.End++
	i := e.Graph.End

	lastNewNode := dawggraph.NoNode

	for {
		e.canonize()

		if e.activeStart > e.activeEnd {
			// At an explicit node boundary.
			if edgeIdx, ok := e.Graph.Lookup(e.activeNode, tok); ok {
				e.linkLastNewNode(lastNewNode, e.activeNode)
				edge := e.Graph.Edges.Get(edgeIdx)
				e.activeStart = edge.Start
				e.activeEnd = edge.Start
				break
			}

			r := e.activeNode
			e.Graph.AddBalancedEdge(e.activeNode, i, record.OpenEnd, dawggraph.Sink)
			e.linkLastNewNode(lastNewNode, r)
			lastNewNode = r
		} else {
			edgeIdx, err := e.activeEdge()
			if err != nil {
				return err
			}
			edge := e.Graph.Edges.Get(edgeIdx)

			if edge.End == record.OpenEnd {
				// This edge's end tracks the global pointer, so it
				// already includes tok by construction: the comparison
				// below would always succeed. Matching here never
				// finishes the suffix chase the way a genuine match
				// does — the shorter suffix reached via the next
				// suffix-link step still needs its own check — so fall
				// through to the suffix-link step without breaking.
			} else {
				nextPos := edge.Start + (e.activeEnd - e.activeStart + 1)
				if e.Graph.Tokens.Get(int(nextPos)-1) == tok {
					e.linkLastNewNode(lastNewNode, e.activeNode)
					e.activeEnd++
					break
				}

				newNode, err := e.splitEdge(edgeIdx, edge, i)
				if err != nil {
					return err
				}
				e.linkLastNewNode(lastNewNode, newNode)
				lastNewNode = newNode
			}
		}

		if e.activeNode == dawggraph.Source {
			if e.activeStart <= e.activeEnd {
				e.activeStart++
			}
		} else {
			e.activeNode = e.suffixLink(e.activeNode)
		}
	}

	e.linkLastNewNode(lastNewNode, e.activeNode)

	return nil
}

// activeEdge returns the edge out of activeNode keyed by the token at
// activeStart; it must exist whenever activeStart <= activeEnd (the
// active point is invariant-canonical).
func (e *Engine) activeEdge() (record.EdgeIndex, error) {
	probe := e.Graph.Tokens.Get(int(e.activeStart) - 1)
	edgeIdx, ok := e.Graph.Lookup(e.activeNode, probe)
	if !ok {
		return dawggraph.NoEdge, fmt.Errorf("%w: no outgoing edge for active span start %d", ErrInvariant, e.activeStart)
	}

	return edgeIdx, nil
}

// splitEdge splits edgeIdx at the end of the active span, inserting a
// new internal node whose incoming edge copies the head of edge's span
// and whose outgoing edge copies the tail (retaining edge's original
// target and openness), then adds a new open edge from the new node to
// the sink starting at position i (spec.md §4.5 step 4).
func (e *Engine) splitEdge(edgeIdx record.EdgeIndex, edge record.Edge, i uint64) (record.NodeIndex, error) {
	splitLen := e.activeEnd - e.activeStart + 1
	splitEndPos := edge.Start + splitLen - 1

	parent := e.Graph.Nodes.Get(e.activeNode)
	newNode := e.Graph.AddNode(parent.Length+int64(splitLen), dawggraph.NoNode)

	origTarget := record.NodeIndex(edge.Target)
	origEnd := edge.End

	e.Graph.RerouteEdge(edgeIdx, newNode, splitEndPos)
	e.Graph.AddBalancedEdge(newNode, splitEndPos+1, origEnd, origTarget)
	e.Graph.AddBalancedEdge(newNode, i, record.OpenEnd, dawggraph.Sink)

	return newNode, nil
}

// canonize advances the active point past every outgoing edge from
// activeNode that the active span fully consumes, so the active point
// always rests strictly inside an edge or exactly at a node boundary
// (spec.md §4.5 step 2).
func (e *Engine) canonize() {
	for e.activeStart <= e.activeEnd {
		probe := e.Graph.Tokens.Get(int(e.activeStart) - 1)
		edgeIdx, ok := e.Graph.Lookup(e.activeNode, probe)
		if !ok {
			panic(fmt.Sprintf("cdawg: canonize invariant violated: no edge for token at %d", e.activeStart))
		}

		edge := e.Graph.Edges.Get(edgeIdx)
		edgeLen := e.Graph.EffectiveEnd(edge.End) - edge.Start + 1
		spanLen := e.activeEnd - e.activeStart + 1
		if edgeLen > spanLen {
			break
		}

		e.activeStart += edgeLen
		e.activeNode = record.NodeIndex(edge.Target)
	}
}

// suffixLink returns n's suffix-link target. Never called with n ==
// Source; Source's own suffix step is the span shrink handled inline in
// Extend.
func (e *Engine) suffixLink(n record.NodeIndex) record.NodeIndex {
	return record.NodeIndex(e.Graph.Nodes.Get(n).Failure)
}

// linkLastNewNode sets from's suffix link to to, unless from is NoNode
// (nothing to link yet this pass) or Source (Source's suffix link field
// is never read — the source step is special-cased by identity check,
// not by following Failure — so writing to it would be a wasted, and
// confusing, mutation).
func (e *Engine) linkLastNewNode(from, to record.NodeIndex) {
	if from == dawggraph.NoNode || from == dawggraph.Source {
		return
	}

	e.Graph.Nodes.GetMut(from, func(n *record.Node) { n.Failure = int32(to) })
}
