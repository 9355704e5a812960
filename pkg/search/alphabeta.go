package search

import (
	"context"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// mateThreshold marks scores close enough to Mate to be treated as forced
// mate lines rather than ordinary material/positional scores.
const mateThreshold = Mate - 1000

// Search performs a single fixed-depth search from pos and returns the
// number of nodes visited, the score from white's perspective, and the
// principal variation. Depth 0 runs quiescence only.
type Search func(ctx context.Context, pos *board.Position, depth int) (uint64, board.Score, []board.Move, error)

// NewAlphaBeta returns a Search that performs explicit maximizer/minimizer
// alpha-beta pruning with a quiescence extension at the horizon. Pseudo-code:
//
// function alphabeta(node, depth, α, β, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//	else
//	    value := +∞
//	    for each child of node do
//	        value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
//	        β := min(β, value)
//	        if β ≤ α then
//	            break (* α cutoff *)
//	    return value
//
// Unlike negamax, the maximizer/minimizer roles are never sign-flipped: a
// position is always scored from white's perspective, and each ply of
// recursion explicitly picks the max or min branch by whose turn it is.
// See: https://en.wikipedia.org/wiki/Alpha–beta_pruning.
//
// NewAlphaBeta takes a shared PVMap so multiple Lazy-SMP workers searching
// concurrently can publish and consult each other's best moves; pass
// NewPVMap() for a single-worker search that only needs to share knowledge
// across its own iterative-deepening depths.
func NewAlphaBeta(tt TranspositionTable, evaluator eval.Evaluator, pv *PVMap) Search {
	return func(ctx context.Context, pos *board.Position, depth int) (uint64, board.Score, []board.Move, error) {
		s := &searcher{pos: pos, tt: tt, evaluator: evaluator, pv: pv}
		score, moves := s.search(ctx, depth, -Mate, Mate)
		if contextx.IsCancelled(ctx) {
			return s.nodes, 0, nil, ErrHalted
		}
		return s.nodes, score, moves, nil
	}
}

// searcher holds the mutable state of a single alpha-beta invocation. It is
// not safe for concurrent use: the Lazy-SMP driver in searchctl runs one
// searcher per worker, each against its own forked position, though all
// workers' searchers share the same *PVMap and TranspositionTable.
type searcher struct {
	pos       *board.Position
	tt        TranspositionTable
	evaluator eval.Evaluator
	pv        *PVMap

	nodes uint64
}

func (s *searcher) search(ctx context.Context, depth int, alpha, beta board.Score) (board.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, nil
	}
	if s.pos.Status() == board.Draw {
		return 0, nil
	}
	if depth <= 0 {
		return s.quiescence(ctx, alpha, beta)
	}
	s.nodes++

	legal := board.LegalMoves(s.pos)
	if len(legal) == 0 {
		return s.terminalScore(), nil
	}

	pvMove, hasPV := s.pv.Lookup(s.pos.Hash())
	ordered := orderMoves(ctx, s.pos, legal, s.tt, s.evaluator, pvMove, hasPV)

	white := s.pos.Turn() == board.White
	var best board.Score
	haveScore := false
	var pv []board.Move

	for _, m := range ordered {
		u, err := s.pos.Apply(m)
		if err != nil {
			continue
		}
		score, rem := s.search(ctx, depth-1, alpha, beta)
		score = decayMate(score)
		s.pos.Undo(m, u)

		if !haveScore || (white && score > best) || (!white && score < best) {
			best, haveScore = score, true
			pv = append([]board.Move{m}, rem...)
		}
		if white {
			if score > alpha {
				alpha = score
			}
		} else {
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			break // cutoff
		}
	}

	if len(pv) > 0 {
		s.pv.Store(s.pos.Hash(), pv[0])
	}
	return best, pv
}

// decayMate reduces the magnitude of a forced-mate score by one ply as it
// propagates toward the root, so the search prefers the shortest mate over a
// longer one.
func decayMate(s board.Score) board.Score {
	switch {
	case s > mateThreshold:
		return s - 1
	case s < -mateThreshold:
		return s + 1
	default:
		return s
	}
}
