package eval

import (
	"context"
	"math/rand"

	"github.com/kestrelchess/engine/pkg/board"
)

// Random is a randomized noise generator, layered on top of another
// Evaluator to break ties between otherwise-equal moves. limit specifies how
// many centipawns to add/remove, in the range [-limit/2; limit/2]. A
// non-positive limit always returns zero noise and Random degenerates to
// Base unmodified.
type Random struct {
	Base  Evaluator
	rand  *rand.Rand
	limit int
}

// NewRandom wraps base with noise in the range [-limit/2; limit/2] cp, seeded
// deterministically so games are reproducible given the same seed.
func NewRandom(base Evaluator, limit int, seed int64) Random {
	return Random{
		Base:  base,
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, pos *board.Position) board.Score {
	var base board.Score
	if n.Base != nil {
		base = n.Base.Evaluate(ctx, pos)
	}
	if n.limit <= 0 {
		return base
	}
	return base + board.Score(n.rand.Intn(n.limit)-n.limit/2)
}
