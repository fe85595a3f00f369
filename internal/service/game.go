package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"chesskit/internal/core"
	"chesskit/internal/engine"
	"chesskit/internal/game"
	"chesskit/internal/storage"
)

// CreateGame registers a new game, optionally starting from a FEN position.
func (s *Service) CreateGame(id string, whiteConfig, blackConfig core.PlayerConfig, initialFEN string) error {
	initial := engine.NewGame()
	if initialFEN != "" {
		var err error
		initial, err = engine.ParseFEN(initialFEN)
		if err != nil {
			return fmt.Errorf("invalid FEN: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s already exists", id)
	}

	whitePlayer := core.NewPlayer(whiteConfig, engine.White)
	blackPlayer := core.NewPlayer(blackConfig, engine.Black)

	s.games[id] = game.New(initial, whitePlayer, blackPlayer)

	// Persist if storage enabled
	if s.store != nil {
		record := storage.GameRecord{
			GameID:        id,
			InitialFEN:    initial.FEN(),
			WhitePlayerID: whitePlayer.ID,
			WhiteName:     whitePlayer.Name,
			BlackPlayerID: blackPlayer.ID,
			BlackName:     blackPlayer.Name,
			StartTimeUTC:  time.Now().UTC(),
		}
		s.store.RecordNewGame(record)
	}

	return nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	return g, nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ensure UUID uniqueness (handle potential conflicts)
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// MakeMove applies a move through the engine and appends the resulting
// state to the game history. On rejection the game is left untouched and
// the engine's sentinel error is returned.
func (s *Service) MakeMove(gameID string, from, to engine.Square) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return engine.State{}, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}

	current := g.Current()
	next, err := current.Apply(from, to)
	if err != nil {
		return engine.State{}, err
	}

	g.Push(next)

	// Notify waiting clients about the state change
	s.waiter.NotifyGame(gameID, g.MoveCount())

	// Persist if storage enabled
	if s.store != nil {
		last := next.Moves[len(next.Moves)-1]
		record := storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   g.MoveCount(),
			FromSquare:   from.Algebraic(),
			ToSquare:     to.Algebraic(),
			Notation:     last.Notation,
			FENAfterMove: next.FEN(),
			PlayerColor:  current.Turn.String(),
			MoveTimeUTC:  last.Time,
		}
		s.store.RecordMove(record)
	}

	return next, nil
}

// LegalMoves returns the legal target squares for a piece.
func (s *Service) LegalMoves(gameID string, from engine.Square) ([]engine.Square, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}

	state := g.Current()
	return state.LegalMoves(from), nil
}

// Undo removes the specified number of moves from game history
func (s *Service) Undo(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}

	if err := g.Undo(count); err != nil {
		return err
	}

	// Notify waiting clients about the undo
	s.waiter.NotifyGame(gameID, g.MoveCount())

	// Delete undone moves from storage if enabled
	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, g.MoveCount())
	}

	return nil
}

// DeleteGame removes a game from memory
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}

	// Notify and remove all waiters before deletion
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}
