package fen_test

import (
	"testing"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	}

	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			zt := board.NewZobristTable(1)

			p, err := fen.Decode(zt, tt)
			require.NoError(t, err)
			assert.Equal(t, tt, fen.Encode(p))
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	zt := board.NewZobristTable(1)

	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"not a fen string at all here please",
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			_, err := fen.Decode(zt, tt)
			assert.Error(t, err)
		})
	}
}
