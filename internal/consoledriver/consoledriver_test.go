package consoledriver

import (
	"sort"
	"testing"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestPrintPieceCasesByColor(t *testing.T) {
	white := board.NewPiece(board.White, board.Knight)
	black := board.NewPiece(board.Black, board.Knight)

	assert.Equal(t, "N", printPiece(white))
	assert.Equal(t, "n", printPiece(black))
}

func TestFormatMoves(t *testing.T) {
	e2e4, err := board.ParseMove("e2e4")
	assert.NoError(t, err)
	g1f3, err := board.ParseMove("g1f3")
	assert.NoError(t, err)

	assert.Equal(t, "e2e4 g1f3", formatMoves([]board.Move{e2e4, g1f3}))
	assert.Equal(t, "", formatMoves(nil))
}

func TestByScoreSortsBestForWhiteFirst(t *testing.T) {
	sub := []moveResult{{s: -50}, {s: 300}, {s: 0}}
	sort.Sort(byScore(sub))

	assert.Equal(t, []board.Score{300, 0, -50}, []board.Score{sub[0].s, sub[1].s, sub[2].s})
}
