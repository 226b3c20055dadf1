package infer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infinigram-go/cdawg/cdawg"
	"github.com/infinigram-go/cdawg/dawggraph"
	"github.com/infinigram-go/cdawg/infer"
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

func walkQuery(g *dawggraph.Graph, query []uint16) infer.State {
	s := infer.GetInitial(g)
	for _, tok := range query {
		s = infer.Transition(g, s, tok)
	}

	return s
}

// "abcabc" as [0,1,2,0,1,2,SENT]. Query "bc" ([1,2]) should return a
// non-empty state with suffix count 2 (spec.md §8 scenario 2).
func TestScenario_ABCABC_SuffixCount(t *testing.T) {
	e := buildEngine(t, []uint16{0, 1, 2, 0, 1, 2, 0xFFFF})
	require.NoError(t, e.Finalize())

	s := walkQuery(e.Graph, []uint16{1, 2})
	require.Greater(t, s.Length, int64(0))
	require.Equal(t, int64(2), infer.GetSuffixCount(e.Graph, s))
}

// Entropy at the source for [0,1,0,2,SENT]: outgoing first tokens are
// {0,1,2,SENT} with counts 2,1,1,1 summing to the corpus length 5
// (spec.md §8 scenario 3).
func TestScenario_EntropyAtSource(t *testing.T) {
	e := buildEngine(t, []uint16{0, 1, 0, 2, 0xFFFF})
	require.NoError(t, e.Finalize())

	s := infer.GetInitial(e.Graph)
	got := infer.GetEntropy(e.Graph, s)

	probs := []float64{2.0 / 5, 1.0 / 5, 1.0 / 5, 1.0 / 5}
	var want float64
	for _, p := range probs {
		want -= p * math.Log2(p)
	}

	require.InDelta(t, want, got, 1e-9)
}

// Next tokens after "0" in [0,1,0,2,SENT]: must return tokens 1 and 2
// each with probability 0.5 (spec.md §8 scenario 4).
func TestScenario_NextTokensAfterZero(t *testing.T) {
	e := buildEngine(t, []uint16{0, 1, 0, 2, 0xFFFF})
	require.NoError(t, e.Finalize())

	s := walkQuery(e.Graph, []uint16{0})
	next := infer.GetNextTokens(e.Graph, s)

	got := map[uint16]float64{}
	for _, nt := range next {
		got[nt.Token] = nt.Probability
	}

	require.InDelta(t, 0.5, got[1], 1e-9)
	require.InDelta(t, 0.5, got[2], 1e-9)
}

// Mid-edge query: after transitioning partway down an edge, next tokens
// returns exactly one deterministic continuation (spec.md §8 scenario 5).
func TestScenario_MidEdgeNextTokenIsDeterministic(t *testing.T) {
	e := buildEngine(t, []uint16{1, 2, 3, 4, 0xFFFF})
	require.NoError(t, e.Finalize())

	s := walkQuery(e.Graph, []uint16{1, 2})
	require.False(t, s.AtNode(), "expected a mid-edge state for a corpus with a single long run")

	next := infer.GetNextTokens(e.Graph, s)
	require.Len(t, next, 1)
	require.Equal(t, float64(1), next[0].Probability)
}

// A query that is not a substring of the corpus collapses to the source
// with length 0 (spec.md §8, "Round-trip").
func TestRoundTrip_UnknownQueryCollapsesToSource(t *testing.T) {
	e := buildEngine(t, []uint16{0, 1, 2, 0xFFFF})
	require.NoError(t, e.Finalize())

	s := walkQuery(e.Graph, []uint16{9, 9, 9})
	require.Equal(t, dawggraph.Source, s.Node)
	require.Equal(t, int64(0), s.Length)
}

// Every suffix of the corpus must match with count >= 1.
func TestRoundTrip_EverySuffixMatches(t *testing.T) {
	toks := []uint16{0, 1, 2, 0, 1, 0xFFFF}
	e := buildEngine(t, toks)
	require.NoError(t, e.Finalize())

	for start := 0; start < len(toks); start++ {
		s := walkQuery(e.Graph, toks[start:])
		require.Greater(t, s.Length, int64(0), "suffix starting at %d", start)
		require.GreaterOrEqual(t, infer.GetSuffixCount(e.Graph, s), int64(1))
	}
}
