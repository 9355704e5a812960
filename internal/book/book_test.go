package book_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/engine/internal/book"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookFindsCandidatesAlongKnownLines(t *testing.T) {
	ctx := context.Background()

	b, err := book.New([]book.Line{
		{"e2e4", "d7d5", "d2d4"},
		{"e2e4", "d7d6"},
		{"d2d4", "d7d6"},
	})
	require.NoError(t, err)

	moves, err := b.Find(ctx, fen.Initial)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d2d4", "e2e4"}, moves)

	moves, err = b.Find(ctx, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d2d4"}, moves)
}

func TestBookReturnsNoMovesOutsideLines(t *testing.T) {
	ctx := context.Background()

	b, err := book.New([]book.Line{{"e2e4"}})
	require.NoError(t, err)

	moves, err := b.Find(ctx, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestBookRejectsIllegalLine(t *testing.T) {
	_, err := book.New([]book.Line{{"e2e5"}})
	assert.Error(t, err)
}

func TestNoBookIsAlwaysEmpty(t *testing.T) {
	moves, err := book.NoBook.Find(context.Background(), fen.Initial)
	require.NoError(t, err)
	assert.Empty(t, moves)
}
