// Package game holds the game aggregate: an append-only history of
// immutable engine states plus the two seats. Undo is a truncation of the
// history, never a replay.
package game

import (
	"fmt"

	"chesskit/internal/core"
	"chesskit/internal/engine"
)

// Snapshot is one entry of the history. The first snapshot carries the
// initial position and no move.
type Snapshot struct {
	State engine.State
	// Move is the transition that produced State; zero for the first entry.
	Move engine.Move
}

type Game struct {
	snapshots []Snapshot
	players   map[engine.Color]*core.Player
}

// New starts a game from an initial engine state.
func New(initial engine.State, white, black *core.Player) *Game {
	return &Game{
		snapshots: []Snapshot{{State: initial}},
		players: map[engine.Color]*core.Player{
			engine.White: white,
			engine.Black: black,
		},
	}
}

// Current returns the latest state. The returned value is a copy; callers
// cannot mutate the history through it.
func (g *Game) Current() engine.State {
	return g.snapshots[len(g.snapshots)-1].State
}

// Push appends the state produced by a move.
func (g *Game) Push(next engine.State) {
	var last engine.Move
	if n := len(next.Moves); n > 0 {
		last = next.Moves[n-1]
	}
	g.snapshots = append(g.snapshots, Snapshot{State: next, Move: last})
}

// Undo steps the history back count moves by truncation.
func (g *Game) Undo(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	available := len(g.snapshots) - 1
	if available < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, available)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	return nil
}

// Moves returns the move history of the current position.
func (g *Game) Moves() []engine.Move {
	return g.Current().Moves
}

// MoveCount returns the number of applied moves.
func (g *Game) MoveCount() int {
	return len(g.snapshots) - 1
}

func (g *Game) Turn() engine.Color {
	return g.Current().Turn
}

func (g *Game) Status() engine.Status {
	return g.Current().Status
}

func (g *Game) Player(color engine.Color) *core.Player {
	return g.players[color]
}

// NextPlayer returns the seat whose turn it is.
func (g *Game) NextPlayer() *core.Player {
	return g.players[g.Turn()]
}

func (g *Game) CurrentFEN() string {
	s := g.Current()
	return s.FEN()
}

func (g *Game) InitialFEN() string {
	s := g.snapshots[0].State
	return s.FEN()
}
