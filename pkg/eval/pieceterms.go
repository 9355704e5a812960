package eval

import "github.com/kestrelchess/engine/pkg/board"

// forward returns the rank one step toward the far side of the board for
// the given color's pawns (and king-shield/outpost geometry), or false if
// sq is already on the back rank for that color.
func forward(sq board.Square, c board.Color) (board.Square, bool) {
	r := sq.Rank()
	if c == board.White {
		if r == board.Rank8 {
			return 0, false
		}
		return board.NewSquare(sq.File(), r+1), true
	}
	if r == board.Rank1 {
		return 0, false
	}
	return board.NewSquare(sq.File(), r-1), true
}

func pawnTerm(pos *board.Position, sq board.Square, c board.Color) (board.Score, board.Score) {
	o, e := NominalValue(board.Pawn), NominalValue(board.Pawn)

	f, r := sq.File(), sq.Rank()

	// Centered bonus for the four central squares.
	if (f == board.FileD || f == board.FileE) && (r == board.Rank4 || r == board.Rank5) {
		o += 20
	}

	// Pawn-chain bonus: a friendly pawn on an adjacent file, any rank.
	for _, adjFile := range []board.File{f - 1, f + 1} {
		if adjFile < board.FileA || adjFile > board.FileH {
			continue
		}
		for adjRank := board.Rank1; adjRank <= board.Rank8; adjRank++ {
			at := pos.At(board.NewSquare(adjFile, adjRank))
			if !at.IsEmpty() && at.Color() == c && at.Type() == board.Pawn {
				o += 4
				e += 4
				break
			}
		}
	}

	// Outpost-support bonus: a friendly knight one diagonal forward.
	if fwd, ok := forward(sq, c); ok {
		for _, adjFile := range []board.File{fwd.File() - 1, fwd.File() + 1} {
			if adjFile < board.FileA || adjFile > board.FileH {
				continue
			}
			at := pos.At(board.NewSquare(adjFile, fwd.Rank()))
			if !at.IsEmpty() && at.Color() == c && at.Type() == board.Knight {
				e += 10
			}
		}
	}

	// Passed-pawn bonus, scaled by rank advanced, weighted into the endgame term.
	if isPassed(pos, sq, c) {
		advanced := int(r) - int(board.Rank2)
		if c == board.Black {
			advanced = int(board.Rank7) - int(r)
		}
		e += board.Score(advanced * 10)
	}

	// Undeveloped malus for a pawn still on its starting rank.
	startRank := board.Rank2
	if c == board.Black {
		startRank = board.Rank7
	}
	if r == startRank {
		e -= 5
	}

	return o, e
}

func isPassed(pos *board.Position, sq board.Square, c board.Color) bool {
	f, r := sq.File(), sq.Rank()
	opp := c.Opponent()

	aheadRanks := func(rank board.Rank) bool {
		if c == board.White {
			return rank > r
		}
		return rank < r
	}

	for _, file := range []board.File{f - 1, f, f + 1} {
		if file < board.FileA || file > board.FileH {
			continue
		}
		for rank := board.Rank1; rank <= board.Rank8; rank++ {
			if !aheadRanks(rank) {
				continue
			}
			at := pos.At(board.NewSquare(file, rank))
			if !at.IsEmpty() && at.Color() == opp && at.Type() == board.Pawn {
				return false
			}
		}
	}
	return true
}

func knightTerm(pos *board.Position, sq board.Square, c board.Color) (board.Score, board.Score) {
	o, e := NominalValue(board.Knight), NominalValue(board.Knight)

	f, r := sq.File(), sq.Rank()
	if f == board.FileA || f == board.FileH || r == board.Rank1 || r == board.Rank8 {
		o -= 15
		e -= 15
	}

	for _, m := range board.PseudoLegalMovesFrom(pos, sq) {
		if !m.IsCapture() {
			continue
		}
		switch m.Capture.Type() {
		case board.Rook:
			o += 15
			e += 15
		case board.Queen:
			o += 20
			e += 20
		}
	}

	homeRank := board.Rank1
	if c == board.Black {
		homeRank = board.Rank8
	}
	if r == homeRank && (f == board.FileB || f == board.FileG) {
		o -= 10
	}

	return o, e
}

func bishopTerm(sq board.Square, c board.Color) (board.Score, board.Score) {
	o, e := NominalValue(board.Bishop), NominalValue(board.Bishop)

	homeRank := board.Rank1
	if c == board.Black {
		homeRank = board.Rank8
	}
	f := sq.File()
	if sq.Rank() == homeRank && (f == board.FileC || f == board.FileF) {
		o -= 10
	}
	return o, e
}

func queenTerm(pos *board.Position, sq board.Square) (board.Score, board.Score) {
	base := NominalValue(board.Queen)
	mobility := board.Score(len(board.PseudoLegalMovesFrom(pos, sq)))
	return base + mobility*2, base + mobility*2
}

func kingTerm(pos *board.Position, sq board.Square, c board.Color) (board.Score, board.Score) {
	base := NominalValue(board.King)

	shield := board.Score(0)
	if fwd, ok := forward(sq, c); ok {
		for _, file := range []board.File{fwd.File() - 1, fwd.File(), fwd.File() + 1} {
			if file < board.FileA || file > board.FileH {
				continue
			}
			at := pos.At(board.NewSquare(file, fwd.Rank()))
			if !at.IsEmpty() && at.Color() == c && at.Type() == board.Pawn {
				shield += 10
			}
		}
	}

	return base + shield, base
}
