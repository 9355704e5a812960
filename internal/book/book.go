// Package book implements a tiny in-memory opening book: a set of known
// lines, indexed by the FEN of each position reached along them, offering
// the long-algebraic moves seen from that position in any line.
package book

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
)

// Book represents an opening book. Once Find returns an empty list for a
// position, the book should not be consulted again for the rest of the
// game: a driver picks uniformly at random among the candidates.
type Book interface {
	// Find returns zero or more candidate long-algebraic moves for the
	// position described by fenStr.
	Find(ctx context.Context, fenStr string) ([]string, error)
}

// Line is a sequence of long-algebraic moves from the initial position,
// e.g. {"e2e4", "d7d5"}.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook Book = &book{moves: map[string][]string{}}

// New builds an opening book from a set of opening lines. Every move in
// every line must be legal in the position it is played from.
func New(lines []Line) (Book, error) {
	zt := board.NewZobristTable(0)

	m := map[string]map[string]bool{}
	for _, line := range lines {
		pos, err := fen.Decode(zt, fen.Initial)
		if err != nil {
			return nil, err
		}

		for _, str := range line {
			want, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line %v: %w", line, err)
			}

			key := fenKey(fen.Encode(pos))

			found := false
			for _, candidate := range board.LegalMoves(pos) {
				if !candidate.Equals(want) {
					continue
				}
				found = true

				if m[key] == nil {
					m[key] = map[string]bool{}
				}
				m[key][candidate.String()] = true

				if _, err := pos.Apply(candidate); err != nil {
					return nil, fmt.Errorf("invalid line %v: move %v: %w", line, want, err)
				}
				break
			}
			if !found {
				return nil, fmt.Errorf("invalid line %v: move %v not legal", line, want)
			}
		}
	}

	dedup := map[string][]string{}
	for k, v := range m {
		var list []string
		for move := range v {
			list = append(list, move)
		}
		sort.Strings(list)
		dedup[k] = list
	}
	return &book{moves: dedup}, nil
}

type book struct {
	moves map[string][]string // cropped fen -> sorted long-algebraic moves
}

func (b *book) Find(ctx context.Context, fenStr string) ([]string, error) {
	return b.moves[fenKey(fenStr)], nil
}

// fenKey crops a FEN string to its first 4 fields (board, turn, castling,
// en-passant), ignoring the halfmove/fullmove counters so transposed move
// orders reaching the same position still hit the same book entry.
func fenKey(fenStr string) string {
	parts := strings.Split(fenStr, " ")
	if len(parts) < 4 {
		return fenStr
	}
	return strings.Join(parts[:4], " ")
}
