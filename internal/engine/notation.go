package engine

import "strings"

// notate renders a move in short algebraic form. Castling is "O-O" or
// "O-O-O"; otherwise the piece letter (origin file for capturing pawns),
// "x" on captures, the destination square, and " e.p." for en passant.
// Disambiguation and check/mate suffixes are intentionally omitted; the
// move record carries those as flags.
func notate(p Piece, from, to Square, isCapture, isCastle, isEnPassant bool) string {
	if isCastle {
		if to.Col > from.Col {
			return "O-O"
		}
		return "O-O-O"
	}

	var sb strings.Builder
	if p.Kind == Pawn {
		if isCapture {
			sb.WriteByte(byte('a' + from.Col))
		}
	} else {
		sb.WriteString(p.Kind.Letter())
	}
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.Algebraic())
	if isEnPassant {
		sb.WriteString(" e.p.")
	}
	return sb.String()
}
