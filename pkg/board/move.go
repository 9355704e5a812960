package board

import "fmt"

// Move is a not-necessarily-legal move along with scoring metadata. It
// deliberately does not carry a castling or en-passant flag: both are
// derived from the moving piece and the from->to delta when the move is
// applied to a Position.
type Move struct {
	From, To  Square
	Capture   Piece // captured piece, or Empty if none.
	Promotion PieceType // desired piece type for promotion, or NoPieceType/Pawn (the zero value) if none.
	Score     Score
}

// IsCapture returns true iff the move removes an enemy piece, including
// en-passant captures (Capture is still populated for those).
func (m Move) IsCapture() bool {
	return !m.Capture.IsEmpty()
}

// IsPromotion returns true iff the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType && m.Promotion != Pawn
}

// ParseMove parses a move in pure algebraic coordinate notation, such as
// "a2a4" or "a7a8q". The parsed move carries no contextual information
// (capture, castling, en passant); that is filled in when applied.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	promo := NoPieceType
	if len(runes) == 5 {
		p, ok := ParsePieceType(runes[4])
		if !ok || p == Pawn || p == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		promo = p
	}

	return Move{From: from, To: to, Promotion: promo}, nil
}

func (m Move) Equals(o Move) bool {
	if m.From != o.From || m.To != o.To || m.IsPromotion() != o.IsPromotion() {
		return false
	}
	return !m.IsPromotion() || m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
