package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/kestrelchess/engine/pkg/eval"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, fenStr string) *board.Position {
	t.Helper()
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, fenStr)
	require.NoError(t, err)
	return p
}

func TestAlphaBetaFindsMateInOne(t *testing.T) {
	pos := decode(t, "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")

	tt := search.NewTranspositionTable(context.Background(), 0)
	ab := search.NewAlphaBeta(tt, eval.Tapered{}, search.NewPVMap())

	nodes, score, pv, err := ab(context.Background(), pos, 1)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	// terminalScore() reports Mate-1 at the node where black is checkmated;
	// propagating that one ply back to the root decays it by one further,
	// so a mate delivered by the root move itself reports Mate-2 (longer
	// mates, found deeper in the tree, would decay further still, scoring
	// lower).
	assert.Equal(t, board.Score(search.Mate-2), score)
	assert.Equal(t, "e1e8", pv[0].String())
	assert.True(t, nodes > 0)
}

func TestAlphaBetaFindsFreeCapture(t *testing.T) {
	// An undefended black rook on d4; white's knight can take it for free.
	pos := decode(t, "4k3/8/8/8/3r4/8/2N5/4K3 w - - 0 1")

	tt := search.NewTranspositionTable(context.Background(), 0)
	ab := search.NewAlphaBeta(tt, eval.Tapered{}, search.NewPVMap())

	_, score, pv, err := ab(context.Background(), pos, 2)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	assert.Equal(t, "c2d4", pv[0].String())
	assert.True(t, score > 0, "expected white to be ahead after winning the rook, got %v", score)
}

func TestAlphaBetaHandlesLopsidedEndgame(t *testing.T) {
	// White is up a queen in a simple endgame; the search must complete
	// cleanly (no crash on the reduced material) and favor white heavily.
	pos := decode(t, "7k/8/6K1/8/8/8/8/2Q5 w - - 0 1")

	tt := search.NewTranspositionTable(context.Background(), 0)
	ab := search.NewAlphaBeta(tt, eval.Tapered{}, search.NewPVMap())

	_, score, pv, err := ab(context.Background(), pos, 2)
	require.NoError(t, err)
	require.NotEmpty(t, pv)
	assert.True(t, score > 0, "expected white to be heavily favored, got %v", score)
}

func TestBoardDetectsDrawByRepetition(t *testing.T) {
	pos := decode(t, fen.Initial)

	b := board.NewBoard(pos)
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, s := range shuffle {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		ok := b.PushMove(m)
		require.True(t, ok, "move %v should be legal", s)
	}

	assert.Equal(t, board.Draw, b.Position().Status())
}
