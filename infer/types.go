package infer

import "github.com/infinigram-go/cdawg/record"

// State is a query position within the automaton (spec.md §4.6).
//
// Node is the explicit node the current partial edge emanates from; when
// GammaStart > GammaEnd (no partial edge in progress), Node is the node
// the query is positioned exactly at and Target == Node.
//
// GammaStart/GammaEnd are the 1-based corpus positions spelling out how
// far the query has walked along the edge out of Node (inclusive,
// mirroring the construction engine's active span); GammaStart > GammaEnd
// means the query sits exactly at Node.
//
// Target is the node the query resolves to: Node itself when the span is
// empty, or the current edge's target once the span is exhausted.
//
// Length is the length of the query suffix matched so far.
type State struct {
	Node       record.NodeIndex
	GammaStart uint64
	GammaEnd   uint64
	Target     record.NodeIndex
	Length     int64
}

// AtNode reports whether s is positioned exactly at a node boundary
// (i.e. not mid-edge).
func (s State) AtNode() bool {
	return s.GammaStart > s.GammaEnd
}
