package board

import "fmt"

// Square is an index into the 10x12 mailbox array. Ranks 8..1 occupy row
// indices 2..9, files a..h occupy column indices 1..8, so square (file f,
// rank r) maps to index (10-r)*10+f. Rows 0,1,10,11 and columns 0,9 are
// off-board padding used to terminate ray generation without bounds checks.
type Square int

const boardWidth = 10

// NewSquare builds a mailbox square from 1-based file (1..8 == a..h) and
// 1-based rank (1..8).
func NewSquare(f File, r Rank) Square {
	return Square((10-int(r))*boardWidth + int(f))
}

func (s Square) File() File {
	return File(int(s) % boardWidth)
}

func (s Square) Rank() Rank {
	return Rank(10 - int(s)/boardWidth)
}

// IsOnBoard returns true iff the square lies within the playable 8x8 area,
// i.e. outside the sentinel padding.
func (s Square) IsOnBoard() bool {
	f, r := s.File(), s.Rank()
	return f >= FileA && f <= FileH && r >= Rank1 && r <= Rank8
}

func (s Square) String() string {
	if !s.IsOnBoard() {
		return "-"
	}
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

// Rank is a chess board rank, 1..8.
type Rank int

const (
	Rank1 Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	return Rank(r - '0'), true
}

func (r Rank) IsValid() bool {
	return r >= Rank1 && r <= Rank8
}

func (r Rank) V() int {
	return int(r)
}

func (r Rank) String() string {
	if r < Rank1 || r > Rank8 {
		return "?"
	}
	return fmt.Sprintf("%d", int(r))
}

// File is a chess board file, 1..8 for a..h.
type File int

const (
	FileA File = iota + 1
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

func ParseFile(r rune) (File, bool) {
	if r >= 'a' && r <= 'h' {
		return File(r-'a') + FileA, true
	}
	if r >= 'A' && r <= 'H' {
		return File(r-'A') + FileA, true
	}
	return 0, false
}

func (f File) IsValid() bool {
	return f >= FileA && f <= FileH
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	if f < FileA || f > FileH {
		return "?"
	}
	return string(rune('a' + int(f) - int(FileA)))
}

// Named squares used pervasively by the generator, castling rules and tests.
var (
	A1 = NewSquare(FileA, Rank1)
	B1 = NewSquare(FileB, Rank1)
	C1 = NewSquare(FileC, Rank1)
	D1 = NewSquare(FileD, Rank1)
	E1 = NewSquare(FileE, Rank1)
	F1 = NewSquare(FileF, Rank1)
	G1 = NewSquare(FileG, Rank1)
	H1 = NewSquare(FileH, Rank1)

	A8 = NewSquare(FileA, Rank8)
	B8 = NewSquare(FileB, Rank8)
	C8 = NewSquare(FileC, Rank8)
	D8 = NewSquare(FileD, Rank8)
	E8 = NewSquare(FileE, Rank8)
	F8 = NewSquare(FileF, Rank8)
	G8 = NewSquare(FileG, Rank8)
	H8 = NewSquare(FileH, Rank8)
)
