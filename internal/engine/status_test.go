package engine

import "testing"

func TestFoolsMateIsCheckmate(t *testing.T) {
	s := play(t, NewGame(),
		"f2", "f3", "e7", "e5",
		"g2", "g4", "d8", "h4")
	if s.Status != StatusCheckmate {
		t.Fatalf("status = %v, want checkmate", s.Status)
	}
	if !s.Status.Over() {
		t.Error("checkmate should be terminal")
	}
}

func TestBackRankMateFromFEN(t *testing.T) {
	s := fromFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if s.Status != StatusCheckmate {
		t.Errorf("status = %v, want checkmate", s.Status)
	}
}

func TestStalemate(t *testing.T) {
	// Black to move, not in check, no legal moves.
	s := fromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if s.Status != StatusStalemate {
		t.Errorf("status = %v, want stalemate", s.Status)
	}
}

func TestCheckIsNotMateWhenEscapable(t *testing.T) {
	s := play(t, NewGame(),
		"e2", "e4", "e7", "e5",
		"d1", "h5", "b8", "c6",
		"h5", "f7") // not mate: the king can capture the undefended queen
	if s.Status != StatusCheck {
		t.Errorf("status = %v, want check", s.Status)
	}
}

func TestFiftyMoveRuleDraw(t *testing.T) {
	// One quiet rook move away from the threshold.
	s := fromFEN(t, "r7/8/8/3k4/8/3K4/8/R7 w - - 49 80")
	if s.Status == StatusDraw {
		t.Fatal("clock 49 must not yet be a draw")
	}
	s = play(t, s, "a1", "a2")
	if s.HalfMoveClock != 50 {
		t.Fatalf("half-move clock = %d, want 50", s.HalfMoveClock)
	}
	if s.Status != StatusDraw {
		t.Errorf("status = %v, want draw at clock 50", s.Status)
	}
}

func TestFiftyMoveDrawRegardlessOfMobility(t *testing.T) {
	s := fromFEN(t, "r7/8/8/3k4/8/3K4/8/R7 w - - 50 80")
	if s.Status != StatusDraw {
		t.Errorf("status = %v, want draw", s.Status)
	}
}

func TestInsufficientMaterialDraw(t *testing.T) {
	cases := []struct {
		fen  string
		want Status
	}{
		{"8/8/8/3k4/8/3K4/8/8 w - - 0 1", StatusDraw},      // bare kings
		{"8/8/8/3k4/8/3KB3/8/8 w - - 0 1", StatusDraw},     // king + bishop
		{"8/8/8/3k4/8/3KN3/8/8 w - - 0 1", StatusDraw},     // king + knight
		{"8/8/8/3k4/8/3K4/8/R7 w - - 0 1", StatusActive},   // rook is mating material
		{"8/8/8/n2k4/8/3KB3/8/8 w - - 0 1", StatusActive},  // four pieces: over the threshold
		{"8/8/8/3k4/8/3K4/4P3/8 w - - 0 1", StatusActive},  // a pawn is never insufficient
	}
	for _, c := range cases {
		s := fromFEN(t, c.fen)
		if s.Status != c.want {
			t.Errorf("%s: status = %v, want %v", c.fen, s.Status, c.want)
		}
	}
}

func TestInitialStatusActive(t *testing.T) {
	s := NewGame()
	if s.Status != StatusActive {
		t.Errorf("status = %v, want active", s.Status)
	}
}

func TestCheckStatusAfterSimpleCheck(t *testing.T) {
	// 1.e4 e5 2.Qh5 Nc6 3.Qxf7+? -- covered above; here a quieter check.
	s := play(t, NewGame(), "e2", "e4", "f7", "f6", "d1", "h5")
	if s.Status != StatusCheck {
		t.Errorf("status = %v, want check", s.Status)
	}
}
