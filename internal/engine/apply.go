package engine

import "time"

// Apply validates from→to for the side to move and returns the fully
// updated successor state. On rejection the returned error is one of the
// sentinel values and the receiver is untouched; callers keep their state.
func (s *State) Apply(from, to Square) (State, error) {
	if !from.InBounds() || !to.InBounds() {
		return State{}, ErrIllegalMove
	}
	moving := s.Board.At(from)
	if moving.IsEmpty() {
		return State{}, ErrEmptySquare
	}
	if moving.Color != s.Turn {
		return State{}, ErrWrongTurn
	}
	if !containsSquare(s.LegalMoves(from), to) {
		return State{}, ErrIllegalMove
	}

	next := s.clone()

	isEnPassant := moving.Kind == Pawn && s.EnPassant && to == s.EPSquare &&
		s.Board.At(to).IsEmpty() && from.Col != to.Col
	isCastle := moving.Kind == King && abs(to.Col-from.Col) == 2

	// En passant: the captured pawn sits behind the destination square.
	captured := NoPiece
	if isEnPassant {
		behind := Square{Row: to.Row - forward(moving.Color), Col: to.Col}
		captured = next.Board.At(behind)
		next.Board.put(behind, NoPiece)
	}

	// Castling relocates the rook next to the king's new square.
	if isCastle {
		row := from.Row
		if to.Col > from.Col {
			next.Board.put(Square{Row: row, Col: 5}, next.Board.At(Square{Row: row, Col: 7}))
			next.Board.put(Square{Row: row, Col: 7}, NoPiece)
		} else {
			next.Board.put(Square{Row: row, Col: 3}, next.Board.At(Square{Row: row, Col: 0}))
			next.Board.put(Square{Row: row, Col: 0}, NoPiece)
		}
	}

	if victim := next.Board.At(to); !victim.IsEmpty() {
		captured = victim
	}
	next.Board.put(to, moving)
	next.Board.put(from, NoPiece)

	// Auto-promotion: a pawn on the farthest rank becomes a queen.
	promotion := NoKind
	if moving.Kind == Pawn && to.Row == promotionRow(moving.Color) {
		promotion = Queen
		next.Board.put(to, Piece{Kind: Queen, Color: moving.Color})
	}

	if !captured.IsEmpty() {
		if captured.Color == White {
			next.CapturedWhite = append(next.CapturedWhite, captured)
		} else {
			next.CapturedBlack = append(next.CapturedBlack, captured)
		}
	}

	next.updateCastlingRights(moving, from)

	// A double push arms en passant for exactly one reply.
	next.EnPassant = false
	next.EPSquare = Square{}
	if moving.Kind == Pawn && abs(to.Row-from.Row) == 2 {
		next.EnPassant = true
		next.EPSquare = Square{Row: (from.Row + to.Row) / 2, Col: from.Col}
	}

	if !captured.IsEmpty() || moving.Kind == Pawn {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock++
	}
	if moving.Color == Black {
		next.FullMove++
	}
	next.Turn = moving.Color.Other()

	next.Status = next.classifyStatus()

	record := Move{
		From:      from,
		To:        to,
		Piece:     moving,
		Captured:  captured,
		Notation:  notate(moving, from, to, !captured.IsEmpty(), isCastle, isEnPassant),
		Time:      time.Now().UTC(),
		Check:     next.Status == StatusCheck || next.Status == StatusCheckmate,
		Checkmate: next.Status == StatusCheckmate,
		Castle:    isCastle,
		EnPassant: isEnPassant,
		Promotion: promotion,
	}
	next.Moves = append(next.Moves, record)

	return next, nil
}

// updateCastlingRights clears rights when the king moves, or a rook moves
// off its home square. Capture of an unmoved rook does not clear rights.
func (s *State) updateCastlingRights(moving Piece, from Square) {
	switch moving.Kind {
	case King:
		if moving.Color == White {
			s.Castling.WhiteKingSide = false
			s.Castling.WhiteQueenSide = false
		} else {
			s.Castling.BlackKingSide = false
			s.Castling.BlackQueenSide = false
		}
	case Rook:
		switch from {
		case Square{Row: 7, Col: 0}:
			s.Castling.WhiteQueenSide = false
		case Square{Row: 7, Col: 7}:
			s.Castling.WhiteKingSide = false
		case Square{Row: 0, Col: 0}:
			s.Castling.BlackQueenSide = false
		case Square{Row: 0, Col: 7}:
			s.Castling.BlackKingSide = false
		}
	}
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
