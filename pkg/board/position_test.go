package board_test

import (
	"testing"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPosition(t *testing.T) *board.Position {
	t.Helper()
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)
	return p
}

func TestApplyUndoRoundTrip(t *testing.T) {
	p := startPosition(t)
	before := fenOf(t, p)

	for _, m := range board.LegalMoves(p) {
		u, err := p.Apply(m)
		require.NoError(t, err)
		p.Undo(m, u)
		assert.Equal(t, before, fenOf(t, p), "move %v did not round-trip", m)
	}
}

func TestApplyUndoRoundTripNested(t *testing.T) {
	p := startPosition(t)
	before := fenOf(t, p)

	moves := board.LegalMoves(p)
	require.NotEmpty(t, moves)
	u1, err := p.Apply(moves[0])
	require.NoError(t, err)

	for _, m := range board.LegalMoves(p) {
		u2, err := p.Apply(m)
		require.NoError(t, err)
		p.Undo(m, u2)
	}

	p.Undo(moves[0], u1)
	assert.Equal(t, before, fenOf(t, p))
}

func TestStartingPositionLegalMoveCount(t *testing.T) {
	p := startPosition(t)
	assert.Len(t, board.LegalMoves(p), 20)
}

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tt := range tests {
		p := startPosition(t)
		assert.Equal(t, tt.want, board.Perft(p, tt.depth))
	}
}

func TestCastlingLegalityBlockedByAttacker(t *testing.T) {
	zt := board.NewZobristTable(1)

	// White king and both rooks in place, but a black rook attacks f1: short
	// castle must not appear; removing the attacker restores it.
	blocked, err := fen.Decode(zt, "4k3/8/8/8/8/5r2/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	assert.False(t, containsCastle(board.LegalMoves(blocked), board.E1, board.G1))

	clear, err := fen.Decode(zt, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	assert.True(t, containsCastle(board.LegalMoves(clear), board.E1, board.G1))
}

func TestEnPassantCapture(t *testing.T) {
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	var ep board.Move
	found := false
	for _, m := range board.LegalMoves(p) {
		if m.From == board.NewSquare(board.FileE, board.Rank5) && m.To == board.NewSquare(board.FileD, board.Rank6) {
			ep = m
			found = true
		}
	}
	require.True(t, found, "expected en passant capture to be generated")

	u, err := p.Apply(ep)
	require.NoError(t, err)
	assert.True(t, p.At(board.NewSquare(board.FileD, board.Rank5)).IsEmpty(), "captured pawn should be removed")

	p.Undo(ep, u)
	assert.False(t, p.At(board.NewSquare(board.FileD, board.Rank5)).IsEmpty(), "captured pawn should be restored")
}

func TestGeneratorSoundness(t *testing.T) {
	p := startPosition(t)
	for _, m := range board.LegalMoves(p) {
		mover := p.At(m.From)
		u, err := p.Apply(m)
		require.NoError(t, err)
		assert.False(t, p.IsAttacked(mover.Color(), p.KingSquare(mover.Color())))
		p.Undo(m, u)
	}
}

func TestPromotionGeneratesOnlyQueenAndKnight(t *testing.T) {
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, "7k/4P3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	from := board.NewSquare(board.FileE, board.Rank7)
	to := board.NewSquare(board.FileE, board.Rank8)

	var promotions []board.PieceType
	for _, m := range board.LegalMoves(p) {
		if m.From == from && m.To == to {
			promotions = append(promotions, m.Promotion)
		}
	}
	assert.ElementsMatch(t, []board.PieceType{board.Queen, board.Knight}, promotions)
}

func TestPromotionCaptureGeneratesOnlyQueenAndKnight(t *testing.T) {
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, "3rk3/4P3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	from := board.NewSquare(board.FileE, board.Rank7)
	to := board.NewSquare(board.FileD, board.Rank8)

	var promotions []board.PieceType
	for _, m := range board.LegalMoves(p) {
		if m.From == from && m.To == to {
			promotions = append(promotions, m.Promotion)
		}
	}
	assert.ElementsMatch(t, []board.PieceType{board.Queen, board.Knight}, promotions)
}

func TestKingVsKingIsDrawnByInsufficientMaterial(t *testing.T) {
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, "8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)

	moves := board.LegalMoves(p)
	require.NotEmpty(t, moves)

	u, err := p.Apply(moves[0])
	require.NoError(t, err)
	assert.Equal(t, board.Draw, p.Status())
	p.Undo(moves[0], u)
}

func TestKingAndPawnVsKingIsNotInsufficientMaterial(t *testing.T) {
	zt := board.NewZobristTable(1)
	p, err := fen.Decode(zt, "8/8/4k3/8/8/4K3/4P3/8 w - - 0 1")
	require.NoError(t, err)

	moves := board.LegalMoves(p)
	require.NotEmpty(t, moves)

	u, err := p.Apply(moves[0])
	require.NoError(t, err)
	assert.NotEqual(t, board.Draw, p.Status())
	p.Undo(moves[0], u)
}

func fenOf(t *testing.T, p *board.Position) string {
	t.Helper()
	return fen.Encode(p)
}

func containsCastle(moves []board.Move, from, to board.Square) bool {
	for _, m := range moves {
		if m.From == from && m.To == to {
			return true
		}
	}
	return false
}
