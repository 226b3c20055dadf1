// Package cdawg is an online Compact Directed Acyclic Word Graph: a
// suffix automaton over uint16 token streams, built incrementally one
// token at a time and queryable for substring counts, next-token
// entropy, and next-token distributions.
//
// The module is organized into layers:
//
//	token/     — append-only uint16 corpus backing (RAM or mmap'd disk)
//	record/    — fixed-width node/edge record vectors (RAM, disk, disk+LRU)
//	dawggraph/ — the graph substrate: node/edge stores plus a per-node AVL
//	             tree of outgoing edges, ordered by first token
//	cdawg/     — the online construction engine (Inenaga's algorithm) and
//	             post-build count finalization
//	infer/     — read-only querying: suffix counts, entropy, next tokens
//	compact/   — optional read-only flattening into a binary-searchable slab
//	persist/   — directory layout glue: save/load a built graph to disk
package cdawg
