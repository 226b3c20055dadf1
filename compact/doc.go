// Package compact rewrites a built dawggraph.Graph into a read-only,
// binary-searchable form: each node's AVL tree of outgoing edges is
// flattened into a sorted slab, trading pointer chasing for contiguity
// (spec.md §4.7). The transform never mutates its input graph.
package compact
