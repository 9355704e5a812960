// Package board contains chess board representation and utilities: the
// mailbox position, move generation, castling/en-passant handling, Zobrist
// hashing and FEN interchange (see the fen subpackage).
package board

import "fmt"

type undoEntry struct {
	move Move
	undo UndoRecord
}

// Board wraps a Position with played-move history, so a driver can replay a
// `position fen ... moves ...` command and answer queries like "has this
// side castled" or "what was the last move" that a bare Position, being
// stateless about its own past, cannot.
type Board struct {
	pos     *Position
	history []undoEntry
}

func NewBoard(pos *Position) *Board {
	return &Board{pos: pos}
}

func (b *Board) Position() *Position {
	return b.pos
}

// PushMove applies m if it is legal in the current position. Returns false,
// leaving the board untouched, if m is not a legal move.
func (b *Board) PushMove(m Move) bool {
	if b.pos.Status() != Undecided {
		return false
	}

	legal := false
	for _, lm := range LegalMoves(b.pos) {
		if lm.Equals(m) {
			m = lm // adopt the generator's capture/promotion metadata.
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	u, err := b.pos.Apply(m)
	if err != nil {
		return false
	}
	b.history = append(b.history, undoEntry{move: m, undo: u})

	if len(LegalMoves(b.pos)) == 0 {
		b.AdjudicateNoLegalMoves()
	}
	return true
}

// PopMove undoes the last pushed move, if any.
func (b *Board) PopMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.pos.Undo(last.move, last.undo)
	return last.move, true
}

// LastMove returns the most recently pushed move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1].move, true
}

// HasCastled returns true iff the color has castled at any point in this
// board's history.
func (b *Board) HasCastled(c Color) bool {
	turn := b.pos.Turn().Opponent() // color that played the most recent move.
	for i := len(b.history) - 1; i >= 0; i-- {
		m := b.history[i].move
		if turn == c && abs(int(m.To.File())-int(m.From.File())) == 2 && b.history[i].undo.Mover.Type() == King {
			return true
		}
		turn = turn.Opponent()
	}
	return false
}

// AdjudicateNoLegalMoves records Checkmate or Stalemate, assuming the side
// to move indeed has no legal moves.
func (b *Board) AdjudicateNoLegalMoves() Result {
	if b.pos.IsChecked(b.pos.Turn()) {
		if b.pos.Turn() == White {
			b.pos.SetStatus(BlackWins)
		} else {
			b.pos.SetStatus(WhiteWins)
		}
	} else {
		b.pos.SetStatus(Draw)
	}
	return b.pos.Status()
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, hash=%x, moves=%v}", b.pos, b.pos.Hash(), len(b.history))
}
