package engine

import (
	"fmt"
	"strings"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN serializes the position in Forsyth-Edwards notation. Move history
// and captured ledgers are not part of the format.
func (s *State) FEN() string {
	var sb strings.Builder

	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			p := s.Board[r][f]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Glyph())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(s.Turn.String())

	sb.WriteByte(' ')
	rights := ""
	if s.Castling.WhiteKingSide {
		rights += "K"
	}
	if s.Castling.WhiteQueenSide {
		rights += "Q"
	}
	if s.Castling.BlackKingSide {
		rights += "k"
	}
	if s.Castling.BlackQueenSide {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if s.EnPassant {
		sb.WriteString(s.EPSquare.Algebraic())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", s.HalfMoveClock, s.FullMove)
	return sb.String()
}

// ParseFEN builds a state from a six-field FEN string. The parsed state
// has an empty move history and empty captured ledgers; the status is
// recomputed from the position.
func ParseFEN(fen string) (State, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return State{}, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	var s State

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return State{}, fmt.Errorf("invalid FEN: expected 8 ranks")
	}
	for r := 0; r < 8; r++ {
		f := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			p, ok := pieceFromGlyph(ch)
			if !ok {
				return State{}, fmt.Errorf("invalid FEN: bad piece %q in rank %d", ch, 8-r)
			}
			if f >= 8 {
				return State{}, fmt.Errorf("invalid FEN: too many pieces in rank %d", 8-r)
			}
			s.Board[r][f] = p
			f++
		}
		if f != 8 {
			return State{}, fmt.Errorf("invalid FEN: rank %d has %d files", 8-r, f)
		}
	}

	switch parts[1] {
	case "w":
		s.Turn = White
	case "b":
		s.Turn = Black
	default:
		return State{}, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	if parts[2] != "-" {
		for i := 0; i < len(parts[2]); i++ {
			switch parts[2][i] {
			case 'K':
				s.Castling.WhiteKingSide = true
			case 'Q':
				s.Castling.WhiteQueenSide = true
			case 'k':
				s.Castling.BlackKingSide = true
			case 'q':
				s.Castling.BlackQueenSide = true
			default:
				return State{}, fmt.Errorf("invalid FEN: castling field %q", parts[2])
			}
		}
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return State{}, fmt.Errorf("invalid FEN: en passant field: %w", err)
		}
		s.EnPassant = true
		s.EPSquare = sq
	}

	if _, err := fmt.Sscanf(parts[4], "%d", &s.HalfMoveClock); err != nil {
		return State{}, fmt.Errorf("invalid FEN: halfmove counter")
	}
	if _, err := fmt.Sscanf(parts[5], "%d", &s.FullMove); err != nil {
		return State{}, fmt.Errorf("invalid FEN: fullmove counter")
	}

	s.Status = s.classifyStatus()
	return s, nil
}
