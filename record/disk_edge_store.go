package record

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// DiskEdgeStore is a memory-mapped, file-backed EdgeStore.
type DiskEdgeStore struct {
	file     *os.File
	mapping  mmap.MMap
	length   int
	capacity int
	closed   bool
}

// OpenDiskEdgeStore opens (creating if necessary) path as a disk-backed
// EdgeStore. existingLen is the logical record count already present.
func OpenDiskEdgeStore(path string, existingLen int) (*DiskEdgeStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("record: open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("record: stat %q: %w", path, err)
	}

	capacity := int(info.Size() / EdgeSize)
	if capacity < existingLen {
		capacity = existingLen
	}
	if capacity == 0 {
		capacity = diskGrowChunkRecords
	}

	s := &DiskEdgeStore{length: existingLen, file: f}
	if err := s.remap(capacity); err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

func (s *DiskEdgeStore) remap(capacity int) error {
	if s.mapping != nil {
		if err := s.mapping.Unmap(); err != nil {
			return fmt.Errorf("record: unmap %q: %w", s.file.Name(), err)
		}
		s.mapping = nil
	}

	size := int64(capacity) * EdgeSize
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

func encodeEdge(buf []byte, e Edge) {
	binary.LittleEndian.PutUint64(buf[0:8], e.Start)
	binary.LittleEndian.PutUint64(buf[8:16], e.End)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(e.Target))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(e.Left))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(e.Right))
	buf[28] = byte(e.Balance)
	// buf[29:32] is reserved padding, left zero.
}

func decodeEdge(buf []byte) Edge {
	return Edge{
		Start:   binary.LittleEndian.Uint64(buf[0:8]),
		End:     binary.LittleEndian.Uint64(buf[8:16]),
		Target:  int32(binary.LittleEndian.Uint32(buf[16:20])),
		Left:    int32(binary.LittleEndian.Uint32(buf[20:24])),
		Right:   int32(binary.LittleEndian.Uint32(buf[24:28])),
		Balance: int8(buf[28]),
	}
}

// Len reports the number of edge records stored.
func (s *DiskEdgeStore) Len() int {
	return s.length
}

// Push appends e and returns its new index, growing the backing file if
// needed.
func (s *DiskEdgeStore) Push(e Edge) EdgeIndex {
	if s.closed {
		panic(ErrClosed)
	}
	if s.length >= s.capacity {
		if err := s.remap(s.capacity + diskGrowChunkRecords); err != nil {
			panic(err)
		}
	}

	off := s.length * EdgeSize
	encodeEdge(s.mapping[off:off+EdgeSize], e)
	idx := s.length
	s.length++

	return EdgeIndex(idx)
}

// Get returns the edge at index i.
func (s *DiskEdgeStore) Get(i EdgeIndex) Edge {
	if s.closed {
		panic(ErrClosed)
	}
	if int(i) < 0 || int(i) >= s.length {
		panic(ErrOutOfRange)
	}

	off := int(i) * EdgeSize

	return decodeEdge(s.mapping[off : off+EdgeSize])
}

// GetMut decodes the edge at index i, lets fn mutate it, then re-encodes
// it back into the mapping.
func (s *DiskEdgeStore) GetMut(i EdgeIndex, fn func(*Edge)) {
	if s.closed {
		panic(ErrClosed)
	}
	if int(i) < 0 || int(i) >= s.length {
		panic(ErrOutOfRange)
	}

	off := int(i) * EdgeSize
	e := decodeEdge(s.mapping[off : off+EdgeSize])
	fn(&e)
	encodeEdge(s.mapping[off:off+EdgeSize], e)
}

// Close flushes, unmaps, and trims the backing file to its logical
// length.
func (s *DiskEdgeStore) Close() error {
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

	if err := s.file.Truncate(int64(s.length) * EdgeSize); err != nil {
		return fmt.Errorf("record: truncate %q on close: %w", s.file.Name(), err)
	}

	return s.file.Close()
}

var _ EdgeStore = (*DiskEdgeStore)(nil)
