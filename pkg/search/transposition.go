package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/seekerror/logw"
)

// defaultCapacity is the entry ceiling at which the table is cleared wholesale.
const defaultCapacity = 1000000

// TranspositionTable is a shared cache from Zobrist hash to a static
// evaluation. Many readers, occasional writer: a single exclusive-writer /
// shared-reader lock protects the whole map, which is simpler (and, given
// the table's narrow lookup/store/clear/size contract, sufficient) than a
// sharded map. Writes are not buffered per-worker here; batching is left as
// a future optimization if lock contention proves to matter in practice.
type TranspositionTable interface {
	// Lookup returns the cached evaluation for hash, if present.
	Lookup(hash board.ZobristHash) (board.Score, bool)
	// Store caches score for hash, evicting the whole table first if it is
	// at capacity.
	Store(hash board.ZobristHash, score board.Score)
	// Clear empties the table.
	Clear()
	// Size returns the number of entries currently cached.
	Size() int
}

type table struct {
	mu       sync.RWMutex
	entries  map[board.ZobristHash]board.Score
	capacity int
}

// NewTranspositionTable returns a TranspositionTable that clears itself
// wholesale once it holds capacity entries. capacity <= 0 defaults to
// 1,000,000.
func NewTranspositionTable(ctx context.Context, capacity int) TranspositionTable {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	logw.Infof(ctx, "allocating transposition table with capacity %v", capacity)

	return &table{
		entries:  make(map[board.ZobristHash]board.Score),
		capacity: capacity,
	}
}

func (t *table) Lookup(hash board.ZobristHash) (board.Score, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	score, ok := t.entries[hash]
	return score, ok
}

func (t *table) Store(hash board.ZobristHash, score board.Score) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.capacity {
		t.entries = make(map[board.ZobristHash]board.Score)
	}
	t.entries[hash] = score
}

func (t *table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[board.ZobristHash]board.Score)
}

func (t *table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

func (t *table) String() string {
	return fmt.Sprintf("TT[size=%v cap=%v]", t.Size(), t.capacity)
}

// NoTranspositionTable is a Nop implementation, useful for tests that want
// to exercise search without caching effects.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Lookup(board.ZobristHash) (board.Score, bool) { return 0, false }
func (NoTranspositionTable) Store(board.ZobristHash, board.Score)         {}
func (NoTranspositionTable) Clear()                                      {}
func (NoTranspositionTable) Size() int                                   { return 0 }
