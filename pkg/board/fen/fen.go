// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kestrelchess/engine/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode returns a new position from a FEN description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(zt *board.ZobristTable, fenStr string) (*board.Position, error) {
	// A FEN record contains six space-separated fields.

	parts := strings.Split(strings.TrimSpace(fenStr), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: '%v'", fenStr)
	}

	// (1) Piece placement (from white's perspective): rank 8 down to rank 1,
	// file a through file h within each rank.

	var pieces []board.Placement

	f, r := board.FileA, board.Rank8
	for _, c := range []rune(parts[0]) {
		switch {
		case c == '/':
			f, r = board.FileA, r-1

		case unicode.IsDigit(c):
			f += board.File(c - '0')

		case unicode.IsLetter(c):
			color, ok := colorOf(c)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", c, fenStr)
			}
			pt, ok := board.ParsePieceType(c)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", c, fenStr)
			}
			pieces = append(pieces, board.Placement{Square: board.NewSquare(f, r), Piece: board.NewPiece(color, pt)})
			f++

		default:
			return nil, fmt.Errorf("invalid character in FEN: '%v'", fenStr)
		}
	}

	// (2) Active color.

	turn, ok := board.ParseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: '%v'", fenStr)
	}

	// (3) Castling availability: "-" or a subset of "KQkq".

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: '%v'", fenStr)
	}

	// (4) En passant target square, or "-".

	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", fenStr)
		}
		ep = sq
	}

	// (5) Halfmove clock since the last pawn advance or capture.

	hm, err := strconv.Atoi(parts[4])
	if err != nil || hm < 0 {
		return nil, fmt.Errorf("invalid halfmove in FEN: '%v'", fenStr)
	}

	// (6) Fullmove number, starting at 1 and incremented after black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return nil, fmt.Errorf("invalid full moves in FEN: '%v'", fenStr)
	}

	return board.NewPosition(zt, pieces, turn, castling, ep, hm, fm)
}

// Encode encodes the position in FEN notation.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := board.Rank8; r >= board.Rank1; r-- {
		blanks := 0
		for f := board.FileA; f <= board.FileH; f++ {
			p := pos.At(board.NewSquare(f, r))
			if p.IsEmpty() {
				blanks++
				continue
			}

			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(p.String())
		}

		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > board.Rank1 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), pos.Turn(), pos.Castling(), ep, pos.HalfMove(), pos.FullMove())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func colorOf(r rune) (board.Color, bool) {
	if unicode.IsUpper(r) {
		return board.White, true
	}
	return board.Black, true
}
