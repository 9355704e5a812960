package board

import (
	"fmt"
	"strings"
)

// Placement describes a single piece placed on a square, used to seed a
// Position from a parsed FEN or a hand-built test position.
type Placement struct {
	Square Square
	Piece  Piece
}

// UndoRecord captures everything Apply mutated so Undo can restore the
// mailbox, metadata and hash bit-for-bit. Move itself carries no castling or
// en-passant flag, so UndoRecord additionally remembers the pre-promotion
// mover and the exact square a capture was lifted from (which differs from
// Move.To for en-passant captures).
type UndoRecord struct {
	Castling       Castling
	EnPassant      Square
	Hash           ZobristHash
	HalfMove       int
	FullMove       int
	Turn           Color
	Status         Result
	Mover          Piece
	Captured       Piece
	CapturedSquare Square
}

// Position is a 10x12 mailbox board plus full game-state needed to apply and
// undo moves and to determine draw conditions: side-to-move, castling
// rights, en-passant target, halfmove clock, fullmove number, game status,
// a repetition map, and a cached Zobrist hash.
type Position struct {
	zt *ZobristTable

	mailbox   [120]Piece
	turn      Color
	castling  Castling
	enpassant Square // zero value (off-board) means "none".

	halfmove int
	fullmove int
	status   Result

	hash        ZobristHash
	repetitions map[ZobristHash]int
}

// NewPosition builds a position from explicit placements. All other squares
// are empty on-board or Sentinel off-board.
func NewPosition(zt *ZobristTable, placements []Placement, turn Color, castling Castling, ep Square, halfmove, fullmove int) (*Position, error) {
	p := &Position{zt: zt, turn: turn, castling: castling, enpassant: ep, halfmove: halfmove, fullmove: fullmove}
	p.initSentinels()

	seen := map[Square]bool{}
	for _, pl := range placements {
		if !pl.Square.IsOnBoard() {
			return nil, fmt.Errorf("placement off board: %v", pl.Square)
		}
		if seen[pl.Square] {
			return nil, fmt.Errorf("duplicate placement: %v", pl.Square)
		}
		seen[pl.Square] = true
		p.mailbox[pl.Square] = pl.Piece
	}

	if p.countKings(White) != 1 || p.countKings(Black) != 1 {
		return nil, fmt.Errorf("invalid number of kings")
	}

	p.hash = zt.Hash(p.mailbox, p.turn)
	p.repetitions = map[ZobristHash]int{p.hash: 1}
	return p, nil
}

func (p *Position) initSentinels() {
	for sq := 0; sq < 120; sq++ {
		if !Square(sq).IsOnBoard() {
			p.mailbox[sq] = Sentinel
		}
	}
}

func (p *Position) countKings(c Color) int {
	n := 0
	for sq := 0; sq < 120; sq++ {
		pc := p.mailbox[sq]
		if !pc.IsEmpty() && !pc.IsSentinel() && pc.Color() == c && pc.Type() == King {
			n++
		}
	}
	return n
}

// hasInsufficientMaterial reports king-vs-king: the only side-to-move-agnostic
// draw the generator adjudicates besides repetition. A lone king against a
// lone king is the sole case; odds of any other piece surviving, even a pawn,
// are excluded.
func (p *Position) hasInsufficientMaterial() bool {
	n := 0
	for sq := 0; sq < 120; sq++ {
		pc := p.mailbox[sq]
		if !pc.IsEmpty() && !pc.IsSentinel() {
			n++
		}
	}
	return n == 2
}

func (p *Position) Turn() Color           { return p.turn }
func (p *Position) Castling() Castling    { return p.castling }
func (p *Position) HalfMove() int         { return p.halfmove }
func (p *Position) FullMove() int         { return p.fullmove }
func (p *Position) Status() Result        { return p.status }
func (p *Position) Hash() ZobristHash     { return p.hash }

// EnPassant returns the en-passant target square, if the previous move was a
// two-square pawn advance.
func (p *Position) EnPassant() (Square, bool) {
	return p.enpassant, p.enpassant.IsOnBoard()
}

// At returns the piece occupying sq, Empty if vacant, Sentinel if off-board.
func (p *Position) At(sq Square) Piece {
	return p.mailbox[sq]
}

// SetStatus is used by the caller (generator found no legal moves, or an
// external adjudication) to record a terminal game status.
func (p *Position) SetStatus(r Result) {
	p.status = r
}

// Clone returns an independent copy of p. The copy shares the (immutable)
// Zobrist table but owns its own mailbox and repetition map, so the two
// positions never alias: mutating one via Apply/Undo never affects the
// other. Used to fork a worker-private position off the search root for
// each Lazy-SMP worker.
func (p *Position) Clone() *Position {
	c := &Position{
		zt:        p.zt,
		mailbox:   p.mailbox,
		turn:      p.turn,
		castling:  p.castling,
		enpassant: p.enpassant,
		halfmove:  p.halfmove,
		fullmove:  p.fullmove,
		status:    p.status,
		hash:      p.hash,
	}
	c.repetitions = make(map[ZobristHash]int, len(p.repetitions))
	for k, v := range p.repetitions {
		c.repetitions[k] = v
	}
	return c
}

// KingSquare returns the square of the color's king.
func (p *Position) KingSquare(c Color) Square {
	for sq := 0; sq < 120; sq++ {
		pc := p.mailbox[sq]
		if !pc.IsEmpty() && !pc.IsSentinel() && pc.Color() == c && pc.Type() == King {
			return Square(sq)
		}
	}
	return Square(0)
}

// Apply makes the given pseudo-legal move on the mailbox, in place, and
// returns an undo record. It does not itself check legality (that the
// mover's king ends up unattacked) -- callers filter pseudo-legal moves into
// legal ones using Apply + IsChecked + Undo.
func (p *Position) Apply(m Move) (UndoRecord, error) {
	mover := p.mailbox[m.From]
	if mover.IsEmpty() || mover.IsSentinel() {
		return UndoRecord{}, fmt.Errorf("invalid move: from square %v is empty", m.From)
	}
	if p.mailbox[m.To].IsSentinel() {
		return UndoRecord{}, fmt.Errorf("invalid move: to square %v is off board", m.To)
	}

	undo := UndoRecord{
		Castling:  p.castling,
		EnPassant: p.enpassant,
		Hash:      p.hash,
		HalfMove:  p.halfmove,
		FullMove:  p.fullmove,
		Turn:      p.turn,
		Status:    p.status,
		Mover:     mover,
	}

	color := mover.Color()
	priorEP := p.enpassant

	// (2) new en-passant target.
	if mover.Type() == Pawn && abs(int(m.To.Rank())-int(m.From.Rank())) == 2 {
		p.enpassant = Square((int(m.From) + int(m.To)) / 2)
	} else {
		p.enpassant = Square(0)
	}

	// (3) castling rook hop.
	isCastle := mover.Type() == King && abs(int(m.To.File())-int(m.From.File())) == 2
	if isCastle {
		rank := m.From.Rank()
		if m.To.File() > m.From.File() {
			rookFrom := NewSquare(FileH, rank)
			rookTo := NewSquare(FileF, rank)
			p.mailbox[rookTo] = p.mailbox[rookFrom]
			p.mailbox[rookFrom] = Empty
		} else {
			rookFrom := NewSquare(FileA, rank)
			rookTo := NewSquare(FileD, rank)
			p.mailbox[rookTo] = p.mailbox[rookFrom]
			p.mailbox[rookFrom] = Empty
		}
	}

	// (4) revoke castling rights keyed off from-square.
	p.castling = p.castling.Revoke(revocationFor(m.From, color))

	// (7) en-passant capture: lift the pawn a rank behind `to`.
	undo.Captured = Empty
	undo.CapturedSquare = m.To
	if mover.Type() == Pawn && priorEP.IsOnBoard() && m.To == priorEP {
		var capSq Square
		if color == White {
			capSq = Square(int(m.To) + 10)
		} else {
			capSq = Square(int(m.To) - 10)
		}
		undo.Captured = p.mailbox[capSq]
		undo.CapturedSquare = capSq
		p.mailbox[capSq] = Empty
	} else if !p.mailbox[m.To].IsEmpty() {
		undo.Captured = p.mailbox[m.To]
	}

	// (5) place piece at `to` (promoted type if promotion, else mover).
	if m.IsPromotion() {
		p.mailbox[m.To] = NewPiece(color, m.Promotion)
	} else {
		p.mailbox[m.To] = mover
	}

	// (6) clear `from`.
	p.mailbox[m.From] = Empty

	// no-progress clock: reset on pawn move or capture, else increment.
	if mover.Type() == Pawn || !undo.Captured.IsEmpty() {
		p.halfmove = 0
	} else {
		p.halfmove++
	}

	// (8) flip side to move; bump fullmove when it becomes white's turn.
	p.turn = p.turn.Opponent()
	if p.turn == White {
		p.fullmove++
	}

	// (9) recompute cached hash.
	p.hash = p.zt.Hash(p.mailbox, p.turn)

	// (10) bump repetition count.
	if p.repetitions == nil {
		p.repetitions = map[ZobristHash]int{}
	}
	p.repetitions[p.hash]++
	if p.repetitions[p.hash] >= 3 {
		p.status = Draw
	}
	if p.hasInsufficientMaterial() {
		p.status = Draw
	}

	return undo, nil
}

// Undo reverses a prior Apply, restoring the mailbox, metadata and hash
// bit-for-bit.
func (p *Position) Undo(m Move, u UndoRecord) {
	p.repetitions[p.hash]--

	p.mailbox[m.From] = u.Mover
	p.mailbox[m.To] = Empty
	if !u.Captured.IsEmpty() {
		p.mailbox[u.CapturedSquare] = u.Captured
	}

	if u.Mover.Type() == King && abs(int(m.To.File())-int(m.From.File())) == 2 {
		rank := m.From.Rank()
		if m.To.File() > m.From.File() {
			rookFrom := NewSquare(FileH, rank)
			rookTo := NewSquare(FileF, rank)
			p.mailbox[rookFrom] = p.mailbox[rookTo]
			p.mailbox[rookTo] = Empty
		} else {
			rookFrom := NewSquare(FileA, rank)
			rookTo := NewSquare(FileD, rank)
			p.mailbox[rookFrom] = p.mailbox[rookTo]
			p.mailbox[rookTo] = Empty
		}
	}

	p.castling = u.Castling
	p.enpassant = u.EnPassant
	p.hash = u.Hash
	p.halfmove = u.HalfMove
	p.fullmove = u.FullMove
	p.turn = u.Turn
	p.status = u.Status
}

// revocationFor returns which castling rights a move originating at sq
// revokes: a king move revokes both rights for its color; a rook move from
// its home corner revokes that corner's right.
func revocationFor(sq Square, c Color) Castling {
	switch {
	case c == White && sq == E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case c == White && sq == H1:
		return WhiteKingSideCastle
	case c == White && sq == A1:
		return WhiteQueenSideCastle
	case c == Black && sq == E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case c == Black && sq == H8:
		return BlackKingSideCastle
	case c == Black && sq == A8:
		return BlackQueenSideCastle
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			sb.WriteString(p.mailbox[NewSquare(f, r)].String())
		}
		if r != Rank1 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if p.enpassant.IsOnBoard() {
		ep = p.enpassant.String()
	}
	return fmt.Sprintf("%v %v %v %v", sb.String(), p.turn, p.castling, ep)
}
