package engine

import (
	"reflect"
	"testing"
)

// play applies a sequence of from-to pairs, failing the test on rejection.
func play(t *testing.T, s State, moves ...string) State {
	t.Helper()
	if len(moves)%2 != 0 {
		t.Fatal("moves must come in from/to pairs")
	}
	for i := 0; i < len(moves); i += 2 {
		next, err := s.Apply(sq(t, moves[i]), sq(t, moves[i+1]))
		if err != nil {
			t.Fatalf("move %s-%s rejected: %v", moves[i], moves[i+1], err)
		}
		s = next
	}
	return s
}

func TestApplyRejections(t *testing.T) {
	s := NewGame()

	if _, err := s.Apply(sq(t, "e4"), sq(t, "e5")); err != ErrEmptySquare {
		t.Errorf("empty source: got %v, want ErrEmptySquare", err)
	}
	if _, err := s.Apply(sq(t, "e7"), sq(t, "e5")); err != ErrWrongTurn {
		t.Errorf("opponent piece: got %v, want ErrWrongTurn", err)
	}
	if _, err := s.Apply(sq(t, "e2"), sq(t, "e5")); err != ErrIllegalMove {
		t.Errorf("triple pawn push: got %v, want ErrIllegalMove", err)
	}
	if _, err := s.Apply(sq(t, "g1"), sq(t, "g3")); err != ErrIllegalMove {
		t.Errorf("non-knight pattern: got %v, want ErrIllegalMove", err)
	}
}

func TestRejectedApplyLeavesStateUntouched(t *testing.T) {
	s := play(t, NewGame(), "e2", "e4", "e7", "e5")
	before := s.clone()

	if _, err := s.Apply(sq(t, "d1"), sq(t, "d5")); err == nil {
		t.Fatal("expected rejection")
	}
	if !reflect.DeepEqual(before, s) {
		t.Error("rejected move mutated the input state")
	}
}

func TestApplyDoesNotAliasPriorState(t *testing.T) {
	s := NewGame()
	next := play(t, s, "e2", "e4")

	if s.Board.At(sq(t, "e2")).IsEmpty() {
		t.Error("prior state's board changed after Apply")
	}
	if len(s.Moves) != 0 {
		t.Error("prior state's history changed after Apply")
	}
	if next.Board.At(sq(t, "e4")).Kind != Pawn {
		t.Error("new state missing the moved pawn")
	}
}

func TestAppliedGeneratedMoveAlwaysSucceeds(t *testing.T) {
	s := NewGame()
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			from := Square{Row: r, Col: f}
			p := s.Board.At(from)
			if p.IsEmpty() || p.Color != s.Turn {
				continue
			}
			for _, to := range s.LegalMoves(from) {
				if _, err := s.Apply(from, to); err != nil {
					t.Errorf("generated move %s-%s rejected: %v", from.Algebraic(), to.Algebraic(), err)
				}
			}
		}
	}
}

func TestTurnAndCountersAdvance(t *testing.T) {
	s := NewGame()
	if s.Turn != White || s.FullMove != 1 {
		t.Fatal("unexpected initial turn/full-move")
	}

	s = play(t, s, "g1", "f3")
	if s.Turn != Black {
		t.Error("turn did not flip to black")
	}
	if s.HalfMoveClock != 1 {
		t.Errorf("knight move: half-move clock = %d, want 1", s.HalfMoveClock)
	}
	if s.FullMove != 1 {
		t.Errorf("full-move advanced after a white move: %d", s.FullMove)
	}

	s = play(t, s, "g8", "f6")
	if s.FullMove != 2 {
		t.Errorf("full-move = %d after black's reply, want 2", s.FullMove)
	}
	if s.HalfMoveClock != 2 {
		t.Errorf("half-move clock = %d, want 2", s.HalfMoveClock)
	}

	// A pawn move resets the clock.
	s = play(t, s, "e2", "e4")
	if s.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d after pawn move, want 0", s.HalfMoveClock)
	}
}

func TestCaptureGoesToLedgerAndResetsClock(t *testing.T) {
	s := play(t, NewGame(),
		"e2", "e4", "d7", "d5",
		"g1", "f3", "g8", "f6") // quiet knight moves push the clock up
	if s.HalfMoveClock != 2 {
		t.Fatalf("half-move clock = %d, want 2", s.HalfMoveClock)
	}

	s = play(t, s, "e4", "d5")
	if s.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d after capture, want 0", s.HalfMoveClock)
	}
	if len(s.CapturedBlack) != 1 || s.CapturedBlack[0].Kind != Pawn {
		t.Errorf("captured-black ledger = %v, want one black pawn", s.CapturedBlack)
	}
	if len(s.CapturedWhite) != 0 {
		t.Errorf("captured-white ledger = %v, want empty", s.CapturedWhite)
	}

	rec := s.Moves[len(s.Moves)-1]
	if rec.Captured.Kind != Pawn || rec.Captured.Color != Black {
		t.Errorf("move record captured = %v, want black pawn", rec.Captured)
	}
}

func TestEnPassant(t *testing.T) {
	// 1.e4 a6 2.e5 d5 arms en passant on d6.
	s := play(t, NewGame(), "e2", "e4", "a7", "a6", "e4", "e5", "d7", "d5")
	if !s.EnPassant || s.EPSquare.Algebraic() != "d6" {
		t.Fatalf("en passant target = %v/%v, want armed on d6", s.EnPassant, s.EPSquare.Algebraic())
	}

	targets := targetSet(s.LegalMoves(sq(t, "e5")))
	if !targets["d6"] {
		t.Fatalf("e5 pawn should be able to capture en passant on d6, got %v", targets)
	}

	s = play(t, s, "e5", "d6")
	if !s.Board.At(sq(t, "d5")).IsEmpty() {
		t.Error("the doubly-pushed pawn on d5 must be removed")
	}
	if got := s.Board.At(sq(t, "d6")); got.Kind != Pawn || got.Color != White {
		t.Errorf("d6 = %v, want the capturing white pawn", got)
	}
	if len(s.CapturedBlack) != 1 || s.CapturedBlack[0].Kind != Pawn {
		t.Errorf("captured ledger = %v, want the en-passant pawn", s.CapturedBlack)
	}

	rec := s.Moves[len(s.Moves)-1]
	if !rec.EnPassant {
		t.Error("move record should be flagged en passant")
	}
	if rec.Notation != "exd6 e.p." {
		t.Errorf("notation = %q, want %q", rec.Notation, "exd6 e.p.")
	}
	if s.EnPassant {
		t.Error("en passant target must clear after the capture")
	}
}

func TestEnPassantExpiresAfterOneMove(t *testing.T) {
	s := play(t, NewGame(), "e2", "e4", "a7", "a6", "e4", "e5", "d7", "d5")
	// White declines; the window closes.
	s = play(t, s, "b1", "c3", "a6", "a5")
	if s.EnPassant {
		t.Fatal("en passant target should have expired")
	}
	if targets := targetSet(s.LegalMoves(sq(t, "e5"))); targets["d6"] {
		t.Error("expired en-passant capture still offered")
	}
}

func TestKingSideCastling(t *testing.T) {
	s := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	targets := targetSet(s.LegalMoves(sq(t, "e1")))
	if !targets["g1"] || !targets["c1"] {
		t.Fatalf("king moves = %v, want castling targets g1 and c1", targets)
	}

	s = play(t, s, "e1", "g1")
	if got := s.Board.At(sq(t, "g1")); got.Kind != King {
		t.Errorf("g1 = %v, want king", got)
	}
	if got := s.Board.At(sq(t, "f1")); got.Kind != Rook {
		t.Errorf("f1 = %v, want relocated rook", got)
	}
	if !s.Board.At(sq(t, "h1")).IsEmpty() {
		t.Error("h1 should be vacated")
	}
	if s.Castling.WhiteKingSide || s.Castling.WhiteQueenSide {
		t.Error("white castling rights must clear after castling")
	}
	if !s.Castling.BlackKingSide || !s.Castling.BlackQueenSide {
		t.Error("black castling rights must survive white castling")
	}

	rec := s.Moves[len(s.Moves)-1]
	if !rec.Castle || rec.Notation != "O-O" {
		t.Errorf("record = castle:%v notation:%q, want castle O-O", rec.Castle, rec.Notation)
	}
}

func TestQueenSideCastling(t *testing.T) {
	s := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	s = play(t, s, "e8", "c8")
	if got := s.Board.At(sq(t, "c8")); got.Kind != King {
		t.Errorf("c8 = %v, want king", got)
	}
	if got := s.Board.At(sq(t, "d8")); got.Kind != Rook {
		t.Errorf("d8 = %v, want relocated rook", got)
	}
	rec := s.Moves[len(s.Moves)-1]
	if rec.Notation != "O-O-O" {
		t.Errorf("notation = %q, want O-O-O", rec.Notation)
	}
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	// Black rook on f4 covers f1: the king would pass through check on the
	// king side, even though g1 itself is safe once f1 is excluded.
	s := fromFEN(t, "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq - 0 1")
	targets := targetSet(s.LegalMoves(sq(t, "e1")))
	if targets["g1"] {
		t.Error("king-side castling through an attacked square must be illegal")
	}
	if !targets["c1"] {
		t.Error("queen-side castling should remain legal")
	}
}

func TestCastlingBlockedWhileInCheck(t *testing.T) {
	s := fromFEN(t, "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1")
	targets := targetSet(s.LegalMoves(sq(t, "e1")))
	if targets["g1"] || targets["c1"] {
		t.Errorf("castling out of check must be illegal, got %v", targets)
	}
}

func TestCastlingRequiresEmptyPath(t *testing.T) {
	s := NewGame() // all back-rank squares occupied
	targets := targetSet(s.LegalMoves(sq(t, "e1")))
	if targets["g1"] || targets["c1"] {
		t.Errorf("castling with occupied path must be illegal, got %v", targets)
	}
}

func TestRookMoveClearsSingleCastlingRight(t *testing.T) {
	s := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	s = play(t, s, "h1", "h2")
	if s.Castling.WhiteKingSide {
		t.Error("king-side right must clear when the h1 rook moves")
	}
	if !s.Castling.WhiteQueenSide {
		t.Error("queen-side right must survive an h1 rook move")
	}
}

func TestKingMoveClearsBothCastlingRights(t *testing.T) {
	s := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	s = play(t, s, "e1", "e2")
	if s.Castling.WhiteKingSide || s.Castling.WhiteQueenSide {
		t.Error("both white rights must clear when the king moves")
	}
}

func TestRookCaptureOnHomeSquareKeepsRights(t *testing.T) {
	// The simplified rights rule: capturing an unmoved rook does not clear
	// the defender's flag.
	s := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	s = play(t, s, "a1", "a8")
	if !s.Castling.BlackQueenSide {
		t.Error("capturing the a8 rook should not clear black's queen-side flag under the simplified rule")
	}
}

func TestPawnPromotionIsAlwaysQueen(t *testing.T) {
	s := fromFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	s = play(t, s, "a7", "a8")
	got := s.Board.At(sq(t, "a8"))
	if got.Kind != Queen || got.Color != White {
		t.Fatalf("a8 = %v, want a white queen", got)
	}
	rec := s.Moves[len(s.Moves)-1]
	if rec.Promotion != Queen {
		t.Errorf("record promotion = %v, want queen", rec.Promotion)
	}

	// Black promotes too, also to a queen.
	s2 := fromFEN(t, "k7/8/8/8/8/8/6p1/7K b - - 0 1")
	s2 = play(t, s2, "g2", "g1")
	got = s2.Board.At(sq(t, "g1"))
	if got.Kind != Queen || got.Color != Black {
		t.Fatalf("g1 = %v, want a black queen", got)
	}
}

func TestCheckFlagsOnMoveRecord(t *testing.T) {
	// Scholar's mate: Qxf7#.
	s := play(t, NewGame(),
		"e2", "e4", "e7", "e5",
		"f1", "c4", "b8", "c6",
		"d1", "h5", "g8", "f6",
		"h5", "f7")

	rec := s.Moves[len(s.Moves)-1]
	if !rec.Check || !rec.Checkmate {
		t.Errorf("record check=%v checkmate=%v, want both true", rec.Check, rec.Checkmate)
	}
	if s.Status != StatusCheckmate {
		t.Errorf("status = %v, want checkmate", s.Status)
	}
}
