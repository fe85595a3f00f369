package engine

// classifyStatus derives the status for the side to move. Terminal
// conditions are checked before draws, draws before plain check.
func (s *State) classifyStatus() Status {
	inCheck := s.InCheck(s.Turn)

	if !s.hasAnyLegalMove(s.Turn) {
		if inCheck {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if inCheck {
		return StatusCheck
	}
	if s.HalfMoveClock >= 50 {
		return StatusDraw
	}
	if s.insufficientMaterial() {
		return StatusDraw
	}
	return StatusActive
}

// insufficientMaterial applies the deliberately coarse rule: at most
// three pieces remain and all of them are kings, knights or bishops.
func (s *State) insufficientMaterial() bool {
	count := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := s.Board[r][f]
			if p.IsEmpty() {
				continue
			}
			switch p.Kind {
			case King, Knight, Bishop:
				count++
			default:
				return false
			}
			if count > 3 {
				return false
			}
		}
	}
	return true
}
