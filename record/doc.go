// Package record implements the append-only, fixed-width record vectors
// that back the CDAWG graph substrate: one vector of Node records and one
// of Edge records. Three backends are provided for each — RAM, disk
// (memory-mapped), and disk with an LRU front — chosen once, when the
// stores are handed to dawggraph.NewGraph. All of them satisfy the
// NodeStore/EdgeStore interfaces and the graph calls them through those
// interfaces; no code is specialized per backend.
//
// Indices returned by Push are stable for the lifetime of the store:
// nothing is ever deleted or moved, only appended to and, for AVL fields,
// mutated in place via GetMut.
package record
