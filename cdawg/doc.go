// Package cdawg implements the online CDAWG construction engine: the
// Inenaga active-point update that extends the automaton by one token at
// a time, and the post-build finalization pass that derives each node's
// occurrence count (spec.md §4.5).
//
// Engine owns a *dawggraph.Graph and is not safe for concurrent use:
// construction is an inherently sequential state machine (spec.md §5).
package cdawg
