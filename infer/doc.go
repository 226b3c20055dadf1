// Package infer implements read-only querying of a built CDAWG: walking
// a query token stream against the automaton and reading off suffix
// counts, entropy, and next-token distributions (spec.md §4.6).
//
// None of the functions here mutate the graph; they are safe to call
// concurrently with each other (but never while a cdawg.Engine is still
// extending the same graph, spec.md §5).
package infer
