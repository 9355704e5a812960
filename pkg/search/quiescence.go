package search

import (
	"context"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// quiescence continues searching only noisy moves (captures) past the
// nominal search horizon, to avoid misjudging a position mid-capture-
// sequence. At a quiet leaf it returns the stand-pat score: the static
// evaluation, representing the side to move's option to "do nothing".
//
// Stand-pat is unsound when the side to move is in check (the check must be
// answered; there is no "do nothing"): when checked, this instead searches
// every legal evasion at full width rather than returning stand-pat or
// restricting to captures.
func (s *searcher) quiescence(ctx context.Context, alpha, beta board.Score) (board.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, nil
	}
	s.nodes++

	white := s.pos.Turn() == board.White
	checked := s.pos.IsChecked(s.pos.Turn())

	if !checked {
		standPat := s.evaluate(ctx)
		if white {
			if standPat >= beta {
				return standPat, nil
			}
			if standPat > alpha {
				alpha = standPat
			}
		} else {
			if standPat <= alpha {
				return standPat, nil
			}
			if standPat < beta {
				beta = standPat
			}
		}
	}

	legal := board.LegalMoves(s.pos)
	if len(legal) == 0 {
		return s.terminalScore(), nil
	}

	var candidates []board.Move
	if checked {
		candidates = legal
	} else {
		for _, m := range legal {
			if m.IsCapture() {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) == 0 {
			return s.evaluate(ctx), nil
		}
	}

	best, hasBest := board.Score(0), false
	var pv []board.Move

	for _, m := range candidates {
		u, err := s.pos.Apply(m)
		if err != nil {
			continue
		}
		score, rest := s.quiescence(ctx, alpha, beta)
		s.pos.Undo(m, u)

		if !hasBest || (white && score > best) || (!white && score < best) {
			best, hasBest = score, true
			pv = append([]board.Move{m}, rest...)
		}
		if white && score > alpha {
			alpha = score
		} else if !white && score < beta {
			beta = score
		}
		if alpha >= beta {
			break
		}
	}

	if !hasBest {
		return s.evaluate(ctx), nil
	}
	return best, pv
}

// evaluate consults the transposition table before falling back to the
// static evaluator, caching the result.
func (s *searcher) evaluate(ctx context.Context) board.Score {
	if v, ok := s.tt.Lookup(s.pos.Hash()); ok {
		return v
	}
	v := s.evaluator.Evaluate(ctx, s.pos)
	s.tt.Store(s.pos.Hash(), v)
	return v
}

func (s *searcher) terminalScore() board.Score {
	if s.pos.IsChecked(s.pos.Turn()) {
		if s.pos.Turn() == board.White {
			return -(Mate - 1)
		}
		return Mate - 1
	}
	return 0
}
