package search

import (
	"context"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/eval"
)

// maxOrderedMoves is the "bad-move pruning" cutoff: after scoring, only the
// top N moves are retained for full-width search at interior nodes.
const maxOrderedMoves = 30

// orderMoves scores and sorts moves for a node. Each move is scored by
// applying it, consulting the transposition table for the resulting hash
// (falling back to the static evaluator and caching that), plus a small
// bonus for giving check. Moves are sorted descending for white and
// ascending for black. If a PV move is known for this position, it is tried
// first regardless of score, and the list is capped to maxOrderedMoves.
func orderMoves(ctx context.Context, pos *board.Position, moves []board.Move, tt TranspositionTable, evaluator eval.Evaluator, pvMove board.Move, hasPVMove bool) []board.Move {
	type scored struct {
		move  board.Move
		score board.Score
	}

	ranked := make([]scored, 0, len(moves))
	for _, m := range moves {
		u, err := pos.Apply(m)
		if err != nil {
			continue
		}

		s, ok := tt.Lookup(pos.Hash())
		if !ok {
			s = evaluator.Evaluate(ctx, pos)
			tt.Store(pos.Hash(), s)
		}
		if pos.IsChecked(pos.Turn()) {
			s += board.Score(pos.Turn().Opponent().Unit()) * 15 // bonus/malus for giving check.
		}

		pos.Undo(m, u)
		ranked = append(ranked, scored{move: m, score: s})
	}

	white := pos.Turn() == board.White
	for i := 1; i < len(ranked); i++ {
		j := i
		for j > 0 && less(ranked[j-1].score, ranked[j].score, white) {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
			j--
		}
	}

	limit := len(ranked)
	if limit > maxOrderedMoves {
		limit = maxOrderedMoves
	}

	ordered := make([]board.Move, 0, limit+1)
	if hasPVMove {
		ordered = append(ordered, pvMove)
	}
	for i := 0; i < limit; i++ {
		if hasPVMove && ranked[i].move.Equals(pvMove) {
			continue
		}
		ordered = append(ordered, ranked[i].move)
	}
	return ordered
}

// less reports whether a should sort after b, i.e. whether b ranks ahead of
// a: descending for white (largest score first), ascending for black
// (smallest score first).
func less(a, b board.Score, white bool) bool {
	if white {
		return a < b
	}
	return a > b
}
