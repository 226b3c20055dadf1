package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinigram-go/cdawg/token"
)

func TestRAMBacking_PushAndGet(t *testing.T) {
	b := token.NewRAMBacking(0)
	require.Equal(t, 0, b.Len())

	idx0 := b.Push(7)
	idx1 := b.Push(token.SentinelToken)

	assert.Equal(t, 0, idx0)
	assert.Equal(t, 1, idx1)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, uint16(7), b.Get(0))
	assert.Equal(t, token.SentinelToken, b.Get(1))
}

func TestRAMBacking_GetOutOfRangePanics(t *testing.T) {
	b := token.NewRAMBacking(0)
	b.Push(1)

	assert.Panics(t, func() { b.Get(1) })
	assert.Panics(t, func() { b.Get(-1) })
}

func TestRAMBacking_Close(t *testing.T) {
	b := token.NewRAMBacking(0)
	require.NoError(t, b.Close())
}
