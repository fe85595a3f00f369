package engine

import (
	"errors"
	"time"
)

// Status classifies a position for the side to move. It is derived from
// the board and counters, never set directly.
type Status uint8

const (
	StatusActive Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return "draw"
	default:
		return "active"
	}
}

// Over reports whether the game has reached a terminal status.
func (s Status) Over() bool {
	return s == StatusCheckmate || s == StatusStalemate || s == StatusDraw
}

// CastlingRights tracks per-color, per-side availability. Rights are
// monotonically non-increasing: once cleared they are never restored.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// Move is one entry of the append-only move history.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece // NoPiece for quiet moves
	Notation  string
	Time      time.Time
	Check     bool
	Checkmate bool
	Castle    bool
	EnPassant bool
	Promotion Kind // NoKind unless a pawn was promoted
}

// State is the full game aggregate. Every transition produces a brand-new
// State; callers may retain prior states and compare them safely.
type State struct {
	Board  Board
	Turn   Color
	Status Status

	// Moves is the ordered move history.
	Moves []Move

	// CapturedWhite and CapturedBlack record removed pieces in capture
	// order, keyed by the color of the captured piece.
	CapturedWhite []Piece
	CapturedBlack []Piece

	Castling CastlingRights

	// EPSquare is the square skipped by the immediately preceding
	// two-square pawn advance; valid only while EnPassant is true.
	EnPassant bool
	EPSquare  Square

	// HalfMoveClock counts moves since the last capture or pawn move.
	HalfMoveClock int
	// FullMove increments after each black move; starts at 1.
	FullMove int
}

// Rejection signals returned by Apply. No operation panics on illegal
// input; the prior state is always left untouched.
var (
	ErrEmptySquare = errors.New("no piece on source square")
	ErrWrongTurn   = errors.New("piece does not belong to the side to move")
	ErrIllegalMove = errors.New("illegal move")
)

// NewGame returns the deterministic initial position.
func NewGame() State {
	return State{
		Board: startingBoard(),
		Turn:  White,
		Castling: CastlingRights{
			WhiteKingSide:  true,
			WhiteQueenSide: true,
			BlackKingSide:  true,
			BlackQueenSide: true,
		},
		FullMove: 1,
	}
}

// InCheck reports whether c's king is currently attacked. A board with no
// king cannot be in check.
func (s *State) InCheck(c Color) bool {
	king, ok := s.Board.findKing(c)
	if !ok {
		return false
	}
	return SquareAttacked(&s.Board, king, c.Other())
}

// clone copies s with freshly allocated history and ledgers, so appends on
// the copy can never reach the original's backing arrays.
func (s *State) clone() State {
	next := *s
	next.Moves = append(make([]Move, 0, len(s.Moves)+1), s.Moves...)
	next.CapturedWhite = append(make([]Piece, 0, len(s.CapturedWhite)+1), s.CapturedWhite...)
	next.CapturedBlack = append(make([]Piece, 0, len(s.CapturedBlack)+1), s.CapturedBlack...)
	return next
}
