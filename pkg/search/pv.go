// Package search implements iterative-deepening alpha-beta search with a
// quiescence extension and a shared Zobrist transposition cache. The
// parallel (Lazy-SMP) driver lives in the searchctl subpackage.
package search

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kestrelchess/engine/pkg/board"
)

// ErrHalted is returned when a search is cancelled before completing a ply.
var ErrHalted = errors.New("search: halted")

// Mate is the checkmate score magnitude. A position where the side to move
// is mated evaluates to -(Mate-1) from the mover's perspective.
const Mate = board.MaxScore

// PV is the principal variation produced by a completed (or partially
// completed) search at a given depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// BestMove returns the first move of the PV, if any.
func (p PV) BestMove() (board.Move, bool) {
	if len(p.Moves) == 0 {
		return board.Move{}, false
	}
	return p.Moves[0], true
}

// PVMap is the shared hash -> best move cache: populated after each
// successfully searched node, and consulted for move ordering so the
// principal variation is tried first. It is the only inter-worker
// knowledge-sharing artifact besides the transposition table, and is safe
// for concurrent Lazy-SMP workers to read and write.
type PVMap struct {
	mu sync.Mutex
	m  map[board.ZobristHash]board.Move
}

// NewPVMap returns an empty PVMap.
func NewPVMap() *PVMap {
	return &PVMap{m: make(map[board.ZobristHash]board.Move)}
}

// Lookup returns the recorded move for hash, if any.
func (p *PVMap) Lookup(hash board.ZobristHash) (board.Move, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.m[hash]
	return m, ok
}

// Store records the best move found at hash.
func (p *PVMap) Store(hash board.ZobristHash, m board.Move) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[hash] = m
}
