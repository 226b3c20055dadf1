package persist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infinigram-go/cdawg/cdawg"
	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/infer"
	"github.com/infinigram-go/cdawg/persist"
	"github.com/infinigram-go/cdawg/record"
	"github.com/infinigram-go/cdawg/token"
)

func buildEngine(t *testing.T, toks []uint16) *cdawg.Engine {
	t.Helper()

	tb := token.NewRAMBacking(len(toks))
	g, err := dawggraph.NewGraph(record.NewRAMNodeStore(0), record.NewRAMEdgeStore(0), tb)
	require.NoError(t, err)

	e := cdawg.NewEngine(g)
	for _, tk := range toks {
		tb.Push(tk)
		require.NoError(t, e.Extend(tk))
	}

	return e
}

// Persist/reload on "mississippi" (spec.md §8 scenario 6): reloaded
// query answers must match the pre-persist graph bit-for-bit.
func TestSaveLoad_RoundTrip(t *testing.T) {
	toks := []uint16{'m', 'i', 's', 's', 'i', 's', 's', 'i', 'p', 'p', 'i', 0xFFFF}
	e := buildEngine(t, toks)
	require.NoError(t, e.Finalize())

	dir := t.TempDir()
	require.NoError(t, persist.Save(dir, e.Graph, e.Graph.Tokens))

	reloaded, _, err := persist.Load(dir)
	require.NoError(t, err)
	defer reloaded.Nodes.Close()
	defer reloaded.Edges.Close()
	defer reloaded.Tokens.Close()

	require.Equal(t, e.Graph.End, reloaded.End)
	require.Equal(t, e.Graph.Nodes.Len(), reloaded.Nodes.Len())
	require.Equal(t, e.Graph.Edges.Len(), reloaded.Edges.Len())

	queries := [][]uint16{{'i', 's'}, {'s', 's', 'i'}, {'p', 'p'}, {'m'}}
	for _, q := range queries {
		before := walkQuery(e.Graph, q)
		after := walkQuery(reloaded, q)

		require.Equal(t, before.Target, after.Target)
		require.Equal(t, before.Length, after.Length)
		require.Equal(t, infer.GetSuffixCount(e.Graph, before), infer.GetSuffixCount(reloaded, after))
		require.InDelta(t, infer.GetEntropy(e.Graph, before), infer.GetEntropy(reloaded, after), 1e-9)
	}
}

// A directory with no metadata.json at all is a fresh, empty graph.
func TestLoad_MissingMetadataIsFresh(t *testing.T) {
	dir := t.TempDir()

	g, _, err := persist.Load(dir)
	require.NoError(t, err)
	defer g.Nodes.Close()
	defer g.Edges.Close()
	defer g.Tokens.Close()

	require.Equal(t, uint64(0), g.End)
	require.Equal(t, 2, g.Nodes.Len()) // source + sink only
}

// An empty-but-present metadata.json must fail loudly, not be treated
// as missing (spec.md §6, "Known issue").
func TestLoad_EmptyMetadataFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), nil, 0o644))

	_, _, err := persist.Load(dir)
	require.ErrorIs(t, err, persist.ErrEmptyMetadata)
}

func walkQuery(g *dawggraph.Graph, query []uint16) infer.State {
	s := infer.GetInitial(g)
	for _, tok := range query {
		s = infer.Transition(g, s, tok)
	}

	return s
}
