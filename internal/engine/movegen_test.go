package engine

import "testing"

func sq(t *testing.T, text string) Square {
	t.Helper()
	s, err := ParseSquare(text)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func fromFEN(t *testing.T, fen string) State {
	t.Helper()
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s
}

func targetSet(moves []Square) map[string]bool {
	set := make(map[string]bool, len(moves))
	for _, m := range moves {
		set[m.Algebraic()] = true
	}
	return set
}

func countMoves(s *State, c Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{Row: r, Col: f}
			if p := s.Board.At(from); !p.IsEmpty() && p.Color == c {
				n += len(s.LegalMoves(from))
			}
		}
	}
	return n
}

func TestInitialPositionMoveCount(t *testing.T) {
	s := NewGame()
	if got := countMoves(&s, White); got != 20 {
		t.Errorf("white has %d legal moves in the initial position, want 20", got)
	}
	if got := countMoves(&s, Black); got != 20 {
		t.Errorf("black has %d legal moves in the initial position, want 20", got)
	}
}

func TestEmptySquareHasNoMoves(t *testing.T) {
	s := NewGame()
	if moves := s.LegalMoves(sq(t, "e4")); len(moves) != 0 {
		t.Errorf("empty square yielded moves: %v", moves)
	}
	if moves := s.LegalMoves(Square{Row: -1, Col: 3}); len(moves) != 0 {
		t.Errorf("out-of-bounds square yielded moves: %v", moves)
	}
}

func TestPawnMoves(t *testing.T) {
	s := NewGame()

	got := targetSet(s.LegalMoves(sq(t, "e2")))
	if len(got) != 2 || !got["e3"] || !got["e4"] {
		t.Errorf("e2 pawn moves = %v, want {e3 e4}", got)
	}

	// A pawn off its starting rank pushes one square only.
	s = fromFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1")
	got = targetSet(s.LegalMoves(sq(t, "e4")))
	if len(got) != 1 || !got["e5"] {
		t.Errorf("e4 pawn moves = %v, want {e5}", got)
	}

	// A blocker directly ahead stops both the single and the double push.
	s = fromFEN(t, "rnbqkbnr/pppppppp/8/8/8/4n3/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if got = targetSet(s.LegalMoves(sq(t, "e2"))); len(got) != 0 {
		t.Errorf("blocked e2 pawn moves = %v, want none", got)
	}
}

func TestPawnCapturesOnlyDiagonally(t *testing.T) {
	// White pawn e4 faces black pawn e5; black pawn d5 is capturable.
	s := fromFEN(t, "rnbqkbnr/ppp1pppp/8/3pp3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1")
	got := targetSet(s.LegalMoves(sq(t, "e4")))
	if len(got) != 1 || !got["d5"] {
		t.Errorf("e4 pawn moves = %v, want {d5}", got)
	}
}

func TestKnightMoves(t *testing.T) {
	s := NewGame()
	got := targetSet(s.LegalMoves(sq(t, "g1")))
	if len(got) != 2 || !got["f3"] || !got["h3"] {
		t.Errorf("g1 knight moves = %v, want {f3 h3}", got)
	}

	// Centralized knight on an empty board has all eight targets.
	s = fromFEN(t, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	got = targetSet(s.LegalMoves(sq(t, "d4")))
	want := []string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"}
	if len(got) != len(want) {
		t.Fatalf("d4 knight has %d moves, want %d: %v", len(got), len(want), got)
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("d4 knight missing target %s", w)
		}
	}
}

func TestSlidingPieceBlockers(t *testing.T) {
	// Rook d4, friendly pawn d6, enemy pawn f4.
	s := fromFEN(t, "4k3/8/3P4/8/3R1p2/8/8/4K3 w - - 0 1")
	got := targetSet(s.LegalMoves(sq(t, "d4")))

	if got["d6"] || got["d7"] {
		t.Error("rook must stop before a friendly blocker")
	}
	if !got["d5"] {
		t.Error("rook should reach the square before a friendly blocker")
	}
	if !got["f4"] {
		t.Error("rook should capture the enemy blocker")
	}
	if got["g4"] {
		t.Error("rook must not slide past a capture")
	}
}

func TestQueenIsRookPlusBishop(t *testing.T) {
	s := fromFEN(t, "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")
	queen := targetSet(s.LegalMoves(sq(t, "d4")))

	s2 := fromFEN(t, "4k3/8/8/8/3R4/8/8/4K3 w - - 0 1")
	s3 := fromFEN(t, "4k3/8/8/8/3B4/8/8/4K3 w - - 0 1")
	union := targetSet(s2.LegalMoves(sq(t, "d4")))
	for m := range targetSet(s3.LegalMoves(sq(t, "d4"))) {
		union[m] = true
	}

	if len(queen) != len(union) {
		t.Fatalf("queen moves (%d) != rook+bishop union (%d)", len(queen), len(union))
	}
	for m := range union {
		if !queen[m] {
			t.Errorf("queen missing %s", m)
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	// Bishop e2 is pinned to the king e1 by the rook e8.
	s := fromFEN(t, "4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if moves := s.LegalMoves(sq(t, "e2")); len(moves) != 0 {
		t.Errorf("pinned bishop has moves %v, want none", targetSet(moves))
	}
}

func TestLegalMovesNeverLeaveOwnKingAttacked(t *testing.T) {
	positions := []string{
		StartingFEN,
		"4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1",
		"r3k2r/pppq1ppp/2n2n2/3pp3/3PP3/2N2N2/PPPQ1PPP/R3K2R w KQkq - 4 8",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}
	for _, fen := range positions {
		s := fromFEN(t, fen)
		for r := 0; r < 8; r++ {
			for f := 0; f < 8; f++ {
				from := Square{Row: r, Col: f}
				p := s.Board.At(from)
				if p.IsEmpty() || p.Color != s.Turn {
					continue
				}
				for _, to := range s.LegalMoves(from) {
					next, err := s.Apply(from, to)
					if err != nil {
						t.Fatalf("%s: applying generated move %s-%s: %v", fen, from.Algebraic(), to.Algebraic(), err)
					}
					if next.InCheck(p.Color) {
						t.Errorf("%s: move %s-%s leaves own king in check", fen, from.Algebraic(), to.Algebraic())
					}
				}
			}
		}
	}
}

func TestKingCannotStepIntoAttack(t *testing.T) {
	// Black rook on e8 covers the e-file; white king d1 may not enter it.
	s := fromFEN(t, "4r2k/8/8/8/8/8/8/3K4 w - - 0 1")
	got := targetSet(s.LegalMoves(sq(t, "d1")))
	for _, bad := range []string{"e1", "e2"} {
		if got[bad] {
			t.Errorf("king may not step onto attacked square %s", bad)
		}
	}
	if !got["c1"] || !got["c2"] || !got["d2"] {
		t.Errorf("king moves = %v, want c1/c2/d2 present", got)
	}
}

func TestSquareAttacked(t *testing.T) {
	s := fromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	cases := []struct {
		square string
		by     Color
		want   bool
	}{
		{"a8", White, true},  // rook up the open a-file
		{"h1", White, false}, // rook blocked by the king on e1
		{"e8", White, false},
		{"d2", White, true}, // king adjacency
		{"e2", Black, false},
		{"d7", Black, true}, // black king adjacency
	}
	for _, c := range cases {
		target := sq(t, c.square)
		if got := SquareAttacked(&s.Board, target, c.by); got != c.want {
			t.Errorf("SquareAttacked(%s, %v) = %v, want %v", c.square, c.by, got, c.want)
		}
	}
}

func TestAttackScanWithoutKingReportsNoCheck(t *testing.T) {
	// A board with no black king must not panic and cannot be "in check".
	s := fromFEN(t, "8/8/8/8/8/8/8/R3K3 b - - 0 1")
	if s.InCheck(Black) {
		t.Error("kingless side reported in check")
	}
}
