package uci

import (
	"testing"
	"time"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestPrintPVFormatsCentipawnScore(t *testing.T) {
	pv := search.PV{Depth: 4, Score: 214, Nodes: 2124, Time: 1242 * time.Millisecond}
	assert.Equal(t, "info depth 4 score cp 214 nodes 2124 time 1242 nps 1710", printPV(pv))
}

func TestPrintPVFormatsMateScoreForSideToMove(t *testing.T) {
	pv := search.PV{Depth: 3, Score: search.Mate - 3}
	assert.Equal(t, "info depth 3 score mate 2", printPV(pv))
}

func TestPrintPVFormatsMateScoreForSideBeingMated(t *testing.T) {
	pv := search.PV{Depth: 3, Score: -(search.Mate - 3)}
	assert.Equal(t, "info depth 3 score mate -2", printPV(pv))
}

func TestPrintPVOmitsPVWhenNoMoves(t *testing.T) {
	pv := search.PV{Depth: 1, Score: 0}
	assert.Equal(t, "info depth 1 score cp 0", printPV(pv))
}

func TestPrintPVIncludesPVMoves(t *testing.T) {
	e2e4, err := board.ParseMove("e2e4")
	assert.NoError(t, err)
	e7e5, err := board.ParseMove("e7e5")
	assert.NoError(t, err)

	pv := search.PV{Depth: 2, Moves: []board.Move{e2e4, e7e5}}
	assert.Equal(t, "info depth 2 score cp 0 pv e2e4 e7e5", printPV(pv))
}

func TestFormatMoves(t *testing.T) {
	e2e4, err := board.ParseMove("e2e4")
	assert.NoError(t, err)
	g1f3, err := board.ParseMove("g1f3")
	assert.NoError(t, err)

	assert.Equal(t, "e2e4 g1f3", formatMoves([]board.Move{e2e4, g1f3}))
	assert.Equal(t, "", formatMoves(nil))
}
