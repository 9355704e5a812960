package eval_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/kestrelchess/engine/pkg/eval"
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

func TestStartingPositionIsBalanced(t *testing.T) {
	p := decode(t, fen.Initial)
	got := eval.Tapered{}.Evaluate(context.Background(), p)
	assert.Equal(t, board.Score(0), got)
}

func TestMaterialAdvantageIsPositiveForWhite(t *testing.T) {
	// white has an extra queen.
	p := decode(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	got := eval.Tapered{}.Evaluate(context.Background(), p)
	assert.True(t, got > 0, "expected positive score for white material edge, got %v", got)
}

func TestEvaluationSymmetry(t *testing.T) {
	white := decode(t, "4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1")
	black := decode(t, "8/8/3p4/4pp2/4p1k1/8/2PPPP2/4K3 b - - 0 1")

	w := eval.Tapered{}.Evaluate(context.Background(), white)
	b := eval.Tapered{}.Evaluate(context.Background(), black)
	assert.Equal(t, w, -b)
}

func TestNominalValueGain(t *testing.T) {
	m := board.Move{Capture: board.NewPiece(board.Black, board.Queen)}
	assert.Equal(t, eval.NominalValue(board.Queen), eval.NominalValueGain(m))

	promo := board.Move{Promotion: board.Queen}
	assert.Equal(t, eval.NominalValue(board.Queen)-eval.NominalValue(board.Pawn), eval.NominalValueGain(promo))
}

func TestRandomZeroLimitIsNoOp(t *testing.T) {
	r := eval.NewRandom(eval.Tapered{}, 0, 1)
	assert.Equal(t, board.Score(0), r.Evaluate(context.Background(), decode(t, fen.Initial)))
}

func TestRandomWithNilBaseIsPureNoise(t *testing.T) {
	r := eval.NewRandom(nil, 0, 1)
	assert.Equal(t, board.Score(0), r.Evaluate(context.Background(), decode(t, fen.Initial)))
}
