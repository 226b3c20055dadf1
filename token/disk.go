package token

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// tokenRecordSize is the on-disk width of one token record: a single
// little-endian uint16 (spec.md §6, "tokens.bin: contiguous u16
// records").
const tokenRecordSize = 2

// diskGrowChunk is how many extra token slots DiskBacking pre-allocates
// on the backing file each time it needs to grow past the current
// mapping. Growing in chunks amortizes the cost of unmap+truncate+remap
// across many Push calls (same rationale as slice growth for RAMBacking).
const diskGrowChunk = 1 << 16 // 64k tokens = 128 KiB per growth step

// DiskBacking is a memory-mapped, file-backed token Backing.
//
// The backing file is grown by truncating it to a larger size and
// re-mapping; reads are served directly out of the mapping. Appends are
// O(1) amortized; growth events are O(current size) due to the remap.
type DiskBacking struct {
	file     *os.File
	mapping  mmap.MMap
	length   int // number of tokens actually written
	capacity int // number of token slots currently backed by the file/mapping
	closed   bool
}

// OpenDiskBacking opens (creating if necessary) path as a disk-backed
// token store. If the file already contains tokens, existingLen must be
// supplied by the caller (persist.Load derives it from the file size,
// which Close trims to the logical length) so Len reflects logical length
// rather than raw file size.
func OpenDiskBacking(path string, existingLen int) (*DiskBacking, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("token: open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("token: stat %q: %w", path, err)
	}

	capacity := int(info.Size() / tokenRecordSize)
	if capacity < existingLen {
		capacity = existingLen
	}
	if capacity == 0 {
		capacity = diskGrowChunk
	}

	b := &DiskBacking{file: f, length: existingLen}
	if err := b.remap(capacity); err != nil {
		f.Close()
		return nil, err
	}

	return b, nil
}

// remap truncates the backing file to capacity token slots and
// re-establishes the mapping over the whole file.
func (b *DiskBacking) remap(capacity int) error {
	if b.mapping != nil {
		if err := b.mapping.Unmap(); err != nil {
			return fmt.Errorf("token: unmap %q: %w", b.file.Name(), err)
		}
		b.mapping = nil
	}

	size := int64(capacity) * tokenRecordSize
	if err := b.file.Truncate(size); err != nil {
		return fmt.Errorf("token: truncate %q: %w", b.file.Name(), err)
	}

	m, err := mmap.MapRegion(b.file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return fmt.Errorf("token: mmap %q: %w", b.file.Name(), err)
	}

	b.mapping = m
	b.capacity = capacity

	return nil
}

// Len reports the number of tokens logically stored.
func (b *DiskBacking) Len() int {
	return b.length
}

// Get returns the token at index i.
func (b *DiskBacking) Get(i int) uint16 {
	if b.closed {
		panic(ErrClosed)
	}
	if i < 0 || i >= b.length {
		panic(ErrOutOfRange)
	}

	off := i * tokenRecordSize

	return binary.LittleEndian.Uint16(b.mapping[off : off+tokenRecordSize])
}

// Push appends tok, growing the backing file if the current mapping has
// no remaining capacity, and returns the new token's index.
func (b *DiskBacking) Push(tok uint16) int {
	if b.closed {
		panic(ErrClosed)
	}
	if b.length >= b.capacity {
		if err := b.remap(b.capacity + diskGrowChunk); err != nil {
			panic(err)
		}
	}

	off := b.length * tokenRecordSize
	binary.LittleEndian.PutUint16(b.mapping[off:off+tokenRecordSize], tok)
	idx := b.length
	b.length++

	return idx
}

// Close flushes and unmaps the backing file. Further use of b after
// Close panics.
func (b *DiskBacking) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	if b.mapping != nil {
		if err := b.mapping.Flush(); err != nil {
			return fmt.Errorf("token: flush %q: %w", b.file.Name(), err)
		}
		if err := b.mapping.Unmap(); err != nil {
			return fmt.Errorf("token: unmap %q: %w", b.file.Name(), err)
		}
	}

	// Trim the file down to its logical length so a subsequent Open sees
	// the true extent rather than the last growth chunk's padding.
	if err := b.file.Truncate(int64(b.length) * tokenRecordSize); err != nil {
		return fmt.Errorf("token: truncate %q on close: %w", b.file.Name(), err)
	}

	return b.file.Close()
}

var _ Backing = (*DiskBacking)(nil)
