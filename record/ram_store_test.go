package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinigram-go/cdawg/record"
)

func TestRAMNodeStore_PushGetMut(t *testing.T) {
	s := record.NewRAMNodeStore(0)
	idx := s.Push(record.Node{Length: 3, Failure: record.NoIndex, Count: 0})
	require.Equal(t, 1, s.Len())

	got := s.Get(idx)
	assert.Equal(t, int64(3), got.Length)
	assert.Equal(t, int32(record.NoIndex), got.Failure)

	s.GetMut(idx, func(n *record.Node) { n.Count = 42 })
	assert.Equal(t, int64(42), s.Get(idx).Count)
}

func TestRAMNodeStore_OutOfRangePanics(t *testing.T) {
	s := record.NewRAMNodeStore(0)
	assert.Panics(t, func() { s.Get(0) })
}

func TestRAMEdgeStore_PushGetMut(t *testing.T) {
	s := record.NewRAMEdgeStore(0)
	idx := s.Push(record.Edge{Start: 1, End: record.OpenEnd, Target: 5, Left: record.NoIndex, Right: record.NoIndex})
	require.Equal(t, 1, s.Len())

	got := s.Get(idx)
	assert.Equal(t, uint64(1), got.Start)
	assert.Equal(t, record.OpenEnd, got.End)
	assert.Equal(t, int32(5), got.Target)

	s.GetMut(idx, func(e *record.Edge) { e.Balance = 1 })
	assert.Equal(t, int8(1), s.Get(idx).Balance)
}
