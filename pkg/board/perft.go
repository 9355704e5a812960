package board

// Perft counts the number of leaf nodes reachable from p at the given depth,
// by exhaustive legal move enumeration. Used to validate the move generator
// against known node counts for standard test positions.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range LegalMoves(p) {
		u, err := p.Apply(m)
		if err != nil {
			continue
		}
		nodes += Perft(p, depth-1)
		p.Undo(m, u)
	}
	return nodes
}
