package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionLookupStore(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0)

	_, ok := tt.Lookup(board.ZobristHash(1))
	assert.False(t, ok)

	tt.Store(board.ZobristHash(1), board.Score(42))
	v, ok := tt.Lookup(board.ZobristHash(1))
	assert.True(t, ok)
	assert.Equal(t, board.Score(42), v)
	assert.Equal(t, 1, tt.Size())
}

func TestTranspositionClear(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0)
	tt.Store(board.ZobristHash(1), board.Score(1))
	tt.Store(board.ZobristHash(2), board.Score(2))
	assert.Equal(t, 2, tt.Size())

	tt.Clear()
	assert.Equal(t, 0, tt.Size())
}

func TestTranspositionCapacityEviction(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 2)
	tt.Store(board.ZobristHash(1), board.Score(1))
	tt.Store(board.ZobristHash(2), board.Score(2))
	assert.Equal(t, 2, tt.Size())

	// Storing a third entry at capacity clears the whole table first.
	tt.Store(board.ZobristHash(3), board.Score(3))
	assert.Equal(t, 1, tt.Size())

	_, ok := tt.Lookup(board.ZobristHash(1))
	assert.False(t, ok)
}

func TestNoTranspositionTable(t *testing.T) {
	var tt search.NoTranspositionTable
	tt.Store(board.ZobristHash(1), board.Score(1))

	_, ok := tt.Lookup(board.ZobristHash(1))
	assert.False(t, ok)
	assert.Equal(t, 0, tt.Size())
}
