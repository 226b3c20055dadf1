// Package dawggraph implements the CDAWG graph substrate (spec.md §4.3,
// §4.4): a node/edge store where each node's outgoing edges form a
// balanced binary search tree (AVL), ordered by the first token of each
// edge's span, embedded directly in the edge vector via index-based
// left/right/balance fields rather than a separate allocator.
//
// Two nodes are special and created once, at construction: Source (index
// 0, length 0, no failure link) and Sink (index 1, length 1, failure
// link to Source). Every other node and edge is appended by the cdawg
// package's online construction engine; dawggraph itself never deletes
// or reorders records. It mutates existing edge records only through AVL
// rebalancing (Left/Right/Balance) and RerouteEdge (Target/End), and
// existing node records only by replacing their FirstEdge tree root.
package dawggraph
