package board

import "math/rand"

// ZobristHash is a position hash based on piece-squares and side to move. It
// is intended for transposition table keys and 3-fold repetition detection.
//
// Deliberately NOT mixed into the hash: castling rights and the en-passant
// file. Two positions identical in mailbox and side-to-move but differing
// only in castling rights or en-passant target collide. This is a known,
// intentional limitation; see DESIGN.md.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable is a pseudo-randomized table for computing a position hash,
// seeded deterministically so every process derives identical hashes.
type ZobristTable struct {
	pieces [120][37]ZobristHash // indexed by Square, then by Piece+11 (non-negative).
	turn   ZobristHash          // xor'd in exactly when black is to move.
}

func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))
	for sq := 0; sq < 120; sq++ {
		for p := 0; p < 37; p++ {
			ret.pieces[sq][p] = ZobristHash(r.Uint64())
		}
	}
	ret.turn = ZobristHash(r.Uint64())
	return ret
}

// PieceKey returns the table entry for a piece standing on sq. Used by Hash
// for whole-position hashing.
func (z *ZobristTable) PieceKey(sq Square, p Piece) ZobristHash {
	return z.pieces[sq][p+11]
}

// TurnKey returns the key xor'd in exactly when black is to move.
func (z *ZobristTable) TurnKey() ZobristHash {
	return z.turn
}

// Hash computes the zobrist hash for a mailbox position from scratch.
func (z *ZobristTable) Hash(mailbox [120]Piece, turn Color) ZobristHash {
	var hash ZobristHash
	for sq := 0; sq < 120; sq++ {
		p := mailbox[sq]
		if p.IsEmpty() || p.IsSentinel() {
			continue
		}
		hash ^= z.PieceKey(Square(sq), p)
	}
	if turn == Black {
		hash ^= z.turn
	}
	return hash
}
