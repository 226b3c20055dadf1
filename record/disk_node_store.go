package record

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// diskGrowChunkRecords is how many extra record slots a disk store
// pre-allocates on growth, amortizing unmap+truncate+remap cost the same
// way token.diskGrowChunk does.
const diskGrowChunkRecords = 1 << 14

// DiskNodeStore is a memory-mapped, file-backed NodeStore.
type DiskNodeStore struct {
	file     *os.File
	mapping  mmap.MMap
	length   int
	capacity int
	closed   bool
}

// OpenDiskNodeStore opens (creating if necessary) path as a disk-backed
// NodeStore. existingLen is the logical record count already present
// (0 for a fresh store).
func OpenDiskNodeStore(path string, existingLen int) (*DiskNodeStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("record: open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("record: stat %q: %w", path, err)
	}

	capacity := int(info.Size() / NodeSize)
	if capacity < existingLen {
		capacity = existingLen
	}
	if capacity == 0 {
		capacity = diskGrowChunkRecords
	}

	s := &DiskNodeStore{length: existingLen, file: f}
	if err := s.remap(capacity); err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

func (s *DiskNodeStore) remap(capacity int) error {
	if s.mapping != nil {
		if err := s.mapping.Unmap(); err != nil {
			return fmt.Errorf("record: unmap %q: %w", s.file.Name(), err)
		}
		s.mapping = nil
	}

	size := int64(capacity) * NodeSize
	if err := s.file.Truncate(size); err != nil {
		return fmt.Errorf("record: truncate %q: %w", s.file.Name(), err)
	}

	m, err := mmap.MapRegion(s.file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return fmt.Errorf("record: mmap %q: %w", s.file.Name(), err)
	}

	s.mapping = m
	s.capacity = capacity

	return nil
}

func encodeNode(buf []byte, n Node) {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(n.Length))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(n.Count))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(n.Failure))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(n.FirstEdge))
}

func decodeNode(buf []byte) Node {
	return Node{
		Length:    int64(binary.LittleEndian.Uint64(buf[0:8])),
		Count:     int64(binary.LittleEndian.Uint64(buf[8:16])),
		Failure:   int32(binary.LittleEndian.Uint32(buf[16:20])),
		FirstEdge: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}
}

// Len reports the number of node records stored.
func (s *DiskNodeStore) Len() int {
	return s.length
}

// Push appends n and returns its new index, growing the backing file if
// needed.
func (s *DiskNodeStore) Push(n Node) NodeIndex {
	if s.closed {
		panic(ErrClosed)
	}
	if s.length >= s.capacity {
		if err := s.remap(s.capacity + diskGrowChunkRecords); err != nil {
			panic(err)
		}
	}

	off := s.length * NodeSize
	encodeNode(s.mapping[off:off+NodeSize], n)
	idx := s.length
	s.length++

	return NodeIndex(idx)
}

// Get returns the node at index i.
func (s *DiskNodeStore) Get(i NodeIndex) Node {
	if s.closed {
		panic(ErrClosed)
	}
	if int(i) < 0 || int(i) >= s.length {
		panic(ErrOutOfRange)
	}

	off := int(i) * NodeSize

	return decodeNode(s.mapping[off : off+NodeSize])
}

// GetMut decodes the node at index i, lets fn mutate it, then re-encodes
// it back into the mapping.
func (s *DiskNodeStore) GetMut(i NodeIndex, fn func(*Node)) {
	if s.closed {
		panic(ErrClosed)
	}
	if int(i) < 0 || int(i) >= s.length {
		panic(ErrOutOfRange)
	}

	off := int(i) * NodeSize
	n := decodeNode(s.mapping[off : off+NodeSize])
	fn(&n)
	encodeNode(s.mapping[off:off+NodeSize], n)
}

// Close flushes, unmaps, and trims the backing file to its logical
// length.
func (s *DiskNodeStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.mapping != nil {
		if err := s.mapping.Flush(); err != nil {
			return fmt.Errorf("record: flush %q: %w", s.file.Name(), err)
		}
		if err := s.mapping.Unmap(); err != nil {
			return fmt.Errorf("record: unmap %q: %w", s.file.Name(), err)
		}
	}

	if err := s.file.Truncate(int64(s.length) * NodeSize); err != nil {
		return fmt.Errorf("record: truncate %q on close: %w", s.file.Name(), err)
	}

	return s.file.Close()
}

var _ NodeStore = (*DiskNodeStore)(nil)
