// Package token provides the token backing for a CDAWG: a logically
// append-only sequence of uint16 tokens with O(1) random-access reads and
// O(1) amortized appends.
//
// Two backings are provided:
//
//   - RAMBacking:  a plain growable slice, for in-memory indices.
//   - DiskBacking: a memory-mapped fixed-width record file, for indices
//     too large to comfortably hold in RAM.
//
// Both satisfy Backing. Token 0xFFFF (SentinelToken) ends a document; it
// is an ordinary value as far as this package is concerned — document
// boundary handling belongs to the build driver, not to the backing.
package token
