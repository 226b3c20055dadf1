// Package persist glues the disk-backed node, edge, and token stores
// together into the directory layout spec.md §6 describes: nodes.bin,
// edges.bin, tokens.bin, and a metadata.json sidecar recording the
// source/sink node indices and the engine's end pointer.
package persist
