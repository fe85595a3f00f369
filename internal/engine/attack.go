package engine

// SquareAttacked reports whether any piece of byColor has sq among its
// pseudo-legal targets. En passant is forced off and the king contributes
// only its eight adjacent squares (castling is not an attack vector);
// this also keeps attack scanning free of mutual recursion with the
// castling legality checks.
func SquareAttacked(b *Board, sq Square, byColor Color) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{Row: r, Col: f}
			p := b.At(from)
			if p.IsEmpty() || p.Color != byColor {
				continue
			}
			var targets []Square
			switch p.Kind {
			case Pawn:
				targets = pawnTargets(b, from, p.Color, false, Square{})
			case Knight:
				targets = stepTargets(b, from, p.Color, knightOffsets[:])
			case Bishop:
				targets = slideTargets(b, from, p.Color, diagonalDirs[:])
			case Rook:
				targets = slideTargets(b, from, p.Color, straightDirs[:])
			case Queen:
				targets = slideTargets(b, from, p.Color, straightDirs[:])
				targets = append(targets, slideTargets(b, from, p.Color, diagonalDirs[:])...)
			case King:
				targets = stepTargets(b, from, p.Color, kingOffsets[:])
			}
			for _, t := range targets {
				if t == sq {
					return true
				}
			}
		}
	}
	return false
}
