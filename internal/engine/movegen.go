package engine

// Direction offsets shared by the pattern generators.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// forward is the row delta of a pawn push for the given color.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// pawnStartRow is the row pawns of the given color start on.
func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// promotionRow is the farthest row for the given color's pawns.
func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// LegalMoves returns the target squares the piece on from may legally move
// to: pseudo-legal targets filtered by "does not leave the mover's own
// king attacked". An empty source square yields no moves. Result order is
// generator order; callers compare as sets.
func (s *State) LegalMoves(from Square) []Square {
	if !from.InBounds() {
		return nil
	}
	p := s.Board.At(from)
	if p.IsEmpty() {
		return nil
	}
	candidates := s.pseudoMoves(from, p)
	legal := candidates[:0]
	for _, to := range candidates {
		if !s.leavesKingInCheck(from, to, p) {
			legal = append(legal, to)
		}
	}
	return legal
}

// pseudoMoves dispatches on the piece kind. Targets are geometrically
// valid and respect occupancy, but king safety is not yet checked.
func (s *State) pseudoMoves(from Square, p Piece) []Square {
	switch p.Kind {
	case Pawn:
		return pawnTargets(&s.Board, from, p.Color, s.EnPassant, s.EPSquare)
	case Knight:
		return stepTargets(&s.Board, from, p.Color, knightOffsets[:])
	case Bishop:
		return slideTargets(&s.Board, from, p.Color, diagonalDirs[:])
	case Rook:
		return slideTargets(&s.Board, from, p.Color, straightDirs[:])
	case Queen:
		targets := slideTargets(&s.Board, from, p.Color, straightDirs[:])
		return append(targets, slideTargets(&s.Board, from, p.Color, diagonalDirs[:])...)
	case King:
		targets := stepTargets(&s.Board, from, p.Color, kingOffsets[:])
		return append(targets, s.castleTargets(from, p.Color)...)
	default:
		return nil
	}
}

// pawnTargets generates pushes, diagonal captures and the en-passant
// capture onto epSquare when armed.
func pawnTargets(b *Board, from Square, c Color, ep bool, epSquare Square) []Square {
	var targets []Square
	dir := forward(c)

	one := Square{Row: from.Row + dir, Col: from.Col}
	if one.InBounds() && b.At(one).IsEmpty() {
		targets = append(targets, one)
		two := Square{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == pawnStartRow(c) && b.At(two).IsEmpty() {
			targets = append(targets, two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		diag := Square{Row: from.Row + dir, Col: from.Col + dc}
		if !diag.InBounds() {
			continue
		}
		victim := b.At(diag)
		if !victim.IsEmpty() && victim.Color != c {
			targets = append(targets, diag)
		} else if ep && diag == epSquare {
			targets = append(targets, diag)
		}
	}
	return targets
}

// stepTargets generates the fixed-offset moves of knights and kings.
func stepTargets(b *Board, from Square, c Color, offsets [][2]int) []Square {
	var targets []Square
	for _, off := range offsets {
		to := Square{Row: from.Row + off[0], Col: from.Col + off[1]}
		if !to.InBounds() {
			continue
		}
		if p := b.At(to); p.IsEmpty() || p.Color != c {
			targets = append(targets, to)
		}
	}
	return targets
}

// slideTargets generates sliding moves along dirs until blocked; an enemy
// blocker is included as a capture.
func slideTargets(b *Board, from Square, c Color, dirs [][2]int) []Square {
	var targets []Square
	for _, dir := range dirs {
		to := Square{Row: from.Row + dir[0], Col: from.Col + dir[1]}
		for to.InBounds() {
			p := b.At(to)
			if p.IsEmpty() {
				targets = append(targets, to)
			} else {
				if p.Color != c {
					targets = append(targets, to)
				}
				break
			}
			to = Square{Row: to.Row + dir[0], Col: to.Col + dir[1]}
		}
	}
	return targets
}

// castleTargets yields the two-square king moves for which castling is
// legal: rights intact, the squares between king and rook empty, and the
// king neither in check nor crossing an attacked square (destination
// included).
func (s *State) castleTargets(from Square, c Color) []Square {
	row := 7
	kingSide, queenSide := s.Castling.WhiteKingSide, s.Castling.WhiteQueenSide
	if c == Black {
		row = 0
		kingSide, queenSide = s.Castling.BlackKingSide, s.Castling.BlackQueenSide
	}
	home := Square{Row: row, Col: 4}
	if from != home {
		return nil
	}

	var targets []Square
	enemy := c.Other()

	if kingSide &&
		s.Board.At(Square{Row: row, Col: 5}).IsEmpty() &&
		s.Board.At(Square{Row: row, Col: 6}).IsEmpty() &&
		!SquareAttacked(&s.Board, home, enemy) &&
		!SquareAttacked(&s.Board, Square{Row: row, Col: 5}, enemy) &&
		!SquareAttacked(&s.Board, Square{Row: row, Col: 6}, enemy) {
		targets = append(targets, Square{Row: row, Col: 6})
	}

	if queenSide &&
		s.Board.At(Square{Row: row, Col: 1}).IsEmpty() &&
		s.Board.At(Square{Row: row, Col: 2}).IsEmpty() &&
		s.Board.At(Square{Row: row, Col: 3}).IsEmpty() &&
		!SquareAttacked(&s.Board, home, enemy) &&
		!SquareAttacked(&s.Board, Square{Row: row, Col: 3}, enemy) &&
		!SquareAttacked(&s.Board, Square{Row: row, Col: 2}, enemy) {
		targets = append(targets, Square{Row: row, Col: 2})
	}
	return targets
}

// leavesKingInCheck simulates from→to on a scratch copy of the board and
// reports whether the mover's own king would then be attacked.
func (s *State) leavesKingInCheck(from, to Square, p Piece) bool {
	scratch := s.Board

	// En-passant capture removes the pawn behind the destination.
	if p.Kind == Pawn && s.EnPassant && to == s.EPSquare && scratch.At(to).IsEmpty() && from.Col != to.Col {
		scratch.put(Square{Row: to.Row - forward(p.Color), Col: to.Col}, NoPiece)
	}

	scratch.put(to, p)
	scratch.put(from, NoPiece)

	king, ok := scratch.findKing(p.Color)
	if !ok {
		return false
	}
	return SquareAttacked(&scratch, king, p.Color.Other())
}

// hasAnyLegalMove reports whether the given color has at least one legal
// move anywhere on the board.
func (s *State) hasAnyLegalMove(c Color) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{Row: r, Col: f}
			p := s.Board.At(from)
			if p.IsEmpty() || p.Color != c {
				continue
			}
			for _, to := range s.pseudoMoves(from, p) {
				if !s.leavesKingInCheck(from, to, p) {
					return true
				}
			}
		}
	}
	return false
}
