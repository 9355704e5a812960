// Package eval contains the static position evaluator: a tapered blend of
// an opening-weighted and an endgame-weighted score, per the per-piece terms
// below.
package eval

import (
	"context"

	"github.com/kestrelchess/engine/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in centipawns from white's perspective.
	Evaluate(ctx context.Context, pos *board.Position) board.Score
}

// Tapered is the engine's default evaluator: material plus the positional
// terms described per piece type, tapered between an opening score and an
// endgame score by the game phase.
type Tapered struct{}

func (Tapered) Evaluate(ctx context.Context, pos *board.Position) board.Score {
	phase := gamePhase(pos)

	var total int
	for sq := 0; sq < 120; sq++ {
		square := board.Square(sq)
		if !square.IsOnBoard() {
			continue
		}
		p := pos.At(square)
		if p.IsEmpty() {
			continue
		}

		o, e := contribution(pos, square, p)
		tapered := (int(o)*phase + int(e)*(256-phase)) / 256

		if p.Color() == board.White {
			total += tapered
		} else {
			total -= tapered
		}
	}

	return board.Score(total)
}

// gamePhase counts 8 per piece still on the board (all types, both colors),
// so the standard 32-piece opening array scores a full 256.
func gamePhase(pos *board.Position) int {
	n := 0
	for sq := 0; sq < 120; sq++ {
		square := board.Square(sq)
		if !square.IsOnBoard() {
			continue
		}
		p := pos.At(square)
		if !p.IsEmpty() {
			n++
		}
	}
	phase := n * 8
	if phase > 256 {
		phase = 256
	}
	return phase
}

// NominalValue is the absolute material value of a piece type in centipawns.
// The king's value is large enough to dominate any material imbalance.
func NominalValue(t board.PieceType) board.Score {
	switch t {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 950
	case board.King:
		return 15000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of a move: the value of the
// captured piece, if any, plus the value gained by promotion. The value of
// the capturing piece is not taken into account.
func NominalValueGain(m board.Move) board.Score {
	gain := board.Score(0)
	if m.IsCapture() {
		gain += NominalValue(m.Capture.Type())
	}
	if m.IsPromotion() {
		gain += NominalValue(m.Promotion) - NominalValue(board.Pawn)
	}
	return gain
}

// contribution returns the (opening, endgame) score pair for the piece
// standing on sq, from its own color's perspective (i.e. always positive
// when the term favors that piece's side).
func contribution(pos *board.Position, sq board.Square, p board.Piece) (board.Score, board.Score) {
	switch p.Type() {
	case board.Pawn:
		return pawnTerm(pos, sq, p.Color())
	case board.Knight:
		return knightTerm(pos, sq, p.Color())
	case board.Bishop:
		return bishopTerm(sq, p.Color())
	case board.Rook:
		v := NominalValue(board.Rook)
		return v, v
	case board.Queen:
		return queenTerm(pos, sq)
	case board.King:
		return kingTerm(pos, sq, p.Color())
	default:
		return 0, 0
	}
}
