package engine

// Board is the 8x8 grid. It is a fixed-size value: copying a Board for
// move simulation is a plain value copy with no shared storage.
type Board [8][8]Piece

// At returns the piece on sq. The caller guarantees sq is in bounds.
func (b *Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

func (b *Board) put(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// PathClear reports whether every square strictly between from and to is
// empty. The line must be horizontal, vertical or an exact diagonal;
// callers guarantee collinearity.
func (b *Board) PathClear(from, to Square) bool {
	dr := sign(to.Row - from.Row)
	dc := sign(to.Col - from.Col)
	cur := Square{Row: from.Row + dr, Col: from.Col + dc}
	for cur != to {
		if !b.At(cur).IsEmpty() {
			return false
		}
		cur.Row += dr
		cur.Col += dc
	}
	return true
}

// findKing locates the king of the given color. The second return is
// false when no king exists; attack scans treat that as "no check".
func (b *Board) findKing(c Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b[r][f]
			if p.Kind == King && p.Color == c {
				return Square{Row: r, Col: f}, true
			}
		}
	}
	return Square{}, false
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	if n < 0 {
		return -1
	}
	return 0
}

// startingBoard returns the standard initial position.
func startingBoard() Board {
	var b Board
	back := [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		b[0][f] = Piece{Kind: back[f], Color: Black}
		b[1][f] = Piece{Kind: Pawn, Color: Black}
		b[6][f] = Piece{Kind: Pawn, Color: White}
		b[7][f] = Piece{Kind: back[f], Color: White}
	}
	return b
}
