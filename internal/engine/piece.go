// Package engine implements the chess rules: move generation, legality
// filtering, state transition and terminal-state classification. It is a
// pure library; every operation maps an input state to a new state and
// never mutates its input.
package engine

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Kind is a piece kind. The zero value marks an empty square.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Letter returns the uppercase notation prefix for the kind.
// Pawns have no prefix.
func (k Kind) Letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

// Piece is an immutable (kind, color) pair. The zero value is "no piece".
type Piece struct {
	Kind  Kind
	Color Color
}

// NoPiece is the empty-square value.
var NoPiece = Piece{}

// IsEmpty reports whether p marks an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Glyph returns the FEN letter for the piece: uppercase for white,
// lowercase for black, '.' for an empty square.
func (p Piece) Glyph() byte {
	if p.IsEmpty() {
		return '.'
	}
	var b byte
	switch p.Kind {
	case Pawn:
		b = 'p'
	case Knight:
		b = 'n'
	case Bishop:
		b = 'b'
	case Rook:
		b = 'r'
	case Queen:
		b = 'q'
	case King:
		b = 'k'
	}
	if p.Color == White {
		b -= 'a' - 'A'
	}
	return b
}

// pieceFromGlyph is the inverse of Glyph for FEN parsing.
func pieceFromGlyph(b byte) (Piece, bool) {
	color := Black
	if b >= 'A' && b <= 'Z' {
		color = White
		b += 'a' - 'A'
	}
	var kind Kind
	switch b {
	case 'p':
		kind = Pawn
	case 'n':
		kind = Knight
	case 'b':
		kind = Bishop
	case 'r':
		kind = Rook
	case 'q':
		kind = Queen
	case 'k':
		kind = King
	default:
		return NoPiece, false
	}
	return Piece{Kind: kind, Color: color}, true
}
