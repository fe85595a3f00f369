package game

import (
	"testing"

	"chesskit/internal/core"
	"chesskit/internal/engine"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	white := core.NewPlayer(core.PlayerConfig{Name: "alice"}, engine.White)
	black := core.NewPlayer(core.PlayerConfig{Name: "bob"}, engine.Black)
	return New(engine.NewGame(), white, black)
}

func mustApply(t *testing.T, g *Game, from, to string) {
	t.Helper()
	f, err := engine.ParseSquare(from)
	if err != nil {
		t.Fatal(err)
	}
	target, err := engine.ParseSquare(to)
	if err != nil {
		t.Fatal(err)
	}
	s := g.Current()
	next, err := s.Apply(f, target)
	if err != nil {
		t.Fatalf("apply %s-%s: %v", from, to, err)
	}
	g.Push(next)
}

func TestNewGameState(t *testing.T) {
	g := newTestGame(t)

	if g.MoveCount() != 0 {
		t.Errorf("move count = %d, want 0", g.MoveCount())
	}
	if g.Turn() != engine.White {
		t.Error("white moves first")
	}
	if g.CurrentFEN() != engine.StartingFEN {
		t.Errorf("FEN = %q, want starting position", g.CurrentFEN())
	}
	if g.Player(engine.White).Name != "alice" || g.Player(engine.Black).Name != "bob" {
		t.Error("player seats misassigned")
	}
	if g.NextPlayer().Name != "alice" {
		t.Errorf("next player = %q, want alice", g.NextPlayer().Name)
	}
}

func TestPushAdvancesHistory(t *testing.T) {
	g := newTestGame(t)
	mustApply(t, g, "e2", "e4")
	mustApply(t, g, "e7", "e5")

	if g.MoveCount() != 2 {
		t.Fatalf("move count = %d, want 2", g.MoveCount())
	}
	moves := g.Moves()
	if len(moves) != 2 || moves[0].Notation != "e4" || moves[1].Notation != "e5" {
		t.Errorf("history = %v", moves)
	}
	if g.Turn() != engine.White {
		t.Error("turn should be back to white")
	}
}

func TestUndoTruncatesHistory(t *testing.T) {
	g := newTestGame(t)
	mustApply(t, g, "e2", "e4")
	mustApply(t, g, "e7", "e5")
	mustApply(t, g, "g1", "f3")

	if err := g.Undo(2); err != nil {
		t.Fatal(err)
	}
	if g.MoveCount() != 1 {
		t.Fatalf("move count = %d, want 1", g.MoveCount())
	}
	if g.Turn() != engine.Black {
		t.Error("after undoing to one move, black is to move")
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if g.CurrentFEN() != want {
		t.Errorf("FEN = %q, want %q", g.CurrentFEN(), want)
	}
}

func TestUndoRejectsBadCounts(t *testing.T) {
	g := newTestGame(t)
	mustApply(t, g, "e2", "e4")

	if err := g.Undo(0); err == nil {
		t.Error("undo 0 should fail")
	}
	if err := g.Undo(2); err == nil {
		t.Error("undoing past the initial position should fail")
	}
	if g.MoveCount() != 1 {
		t.Error("failed undo must not change history")
	}
}

func TestUndoRestoresTerminalGame(t *testing.T) {
	g := newTestGame(t)
	mustApply(t, g, "f2", "f3")
	mustApply(t, g, "e7", "e5")
	mustApply(t, g, "g2", "g4")
	mustApply(t, g, "d8", "h4")

	if g.Status() != engine.StatusCheckmate {
		t.Fatalf("status = %v, want checkmate", g.Status())
	}
	if err := g.Undo(1); err != nil {
		t.Fatal(err)
	}
	if g.Status().Over() {
		t.Errorf("status after undo = %v, want playable", g.Status())
	}
}
