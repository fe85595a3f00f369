package engine

import (
	"strings"
	"testing"
)

func TestStartingPositionFEN(t *testing.T) {
	s := NewGame()
	if got := s.FEN(); got != StartingFEN {
		t.Errorf("FEN() = %q, want %q", got, StartingFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 12 40",
		"8/8/8/3k4/8/3K4/8/8 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 3 15",
	}
	for _, fen := range fens {
		s, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		if got := s.FEN(); got != fen {
			t.Errorf("round trip of %q produced %q", fen, got)
		}
	}
}

func TestFENAfterMoves(t *testing.T) {
	s := play(t, NewGame(), "e2", "e4")
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := s.FEN(); got != want {
		t.Errorf("FEN after 1.e4 = %q, want %q", got, want)
	}

	s = play(t, s, "c7", "c5", "g1", "f3")
	want = "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := s.FEN(); got != want {
		t.Errorf("FEN after 1.e4 c5 2.Nf3 = %q, want %q", got, want)
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", // 5 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",      // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkz - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q): expected error", fen)
		}
	}
}

func TestParseFENRecomputesStatus(t *testing.T) {
	s := fromFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if s.Status != StatusCheckmate {
		t.Errorf("parsed status = %v, want checkmate", s.Status)
	}
	if len(s.Moves) != 0 || len(s.CapturedWhite) != 0 || len(s.CapturedBlack) != 0 {
		t.Error("parsed position must start with empty history and ledgers")
	}
}

func TestASCIIBoard(t *testing.T) {
	s := NewGame()
	out := ASCII(&s.Board)

	if !strings.HasPrefix(out, "  a b c d e f g h\n") {
		t.Error("missing file header")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "8 r n b q k b n r") {
		t.Errorf("rank 8 rendered as %q", lines[1])
	}
	if !strings.HasPrefix(lines[8], "1 R N B Q K B N R") {
		t.Errorf("rank 1 rendered as %q", lines[8])
	}
}
