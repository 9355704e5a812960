package board

import "strings"

// PieceType represents a chess piece type without color. The ordering P,R,N,B,Q,K
// (0..5) matches the "value mod 10" decoding of a mailbox occupancy, per Piece below.
type PieceType int8

const (
	Pawn PieceType = iota
	Rook
	Knight
	Bishop
	Queen
	King

	NumPieceTypes = 6
	NoPieceType   PieceType = -1
)

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'r', 'R':
		return Rook, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPieceType, false
	}
}

func (t PieceType) IsValid() bool {
	return Pawn <= t && t <= King
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "p"
	case Rook:
		return "r"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Piece is a single mailbox cell occupancy: sign/zero means empty, a color bit
// distinguishes white from black, and a piece type is orthogonal to color.
//
// White pieces take values 10..15 (P,R,N,B,Q,K in that order mapped to
// 10,11,12,13,14,15), black pieces 20..25 likewise; empty = 0; sentinel = -11.
// This admits cheap color extraction (value/10) and type extraction (value mod 10).
type Piece int8

const (
	Empty    Piece = 0
	Sentinel Piece = -11
)

// NewPiece encodes a colored piece into its mailbox occupancy value.
func NewPiece(c Color, t PieceType) Piece {
	return Piece(int8(c)*10 + int8(t))
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) IsSentinel() bool {
	return p == Sentinel
}

// Color extracts the color bit. Only meaningful when !IsEmpty() && !IsSentinel().
func (p Piece) Color() Color {
	return Color(p / 10)
}

// Type extracts the piece type. Only meaningful when !IsEmpty() && !IsSentinel().
func (p Piece) Type() PieceType {
	return PieceType(p % 10)
}

func (p Piece) String() string {
	switch {
	case p.IsEmpty():
		return "."
	case p.IsSentinel():
		return "#"
	}
	s := p.Type().String()
	if p.Color() == White {
		return strings.ToUpper(s)
	}
	return s
}
