// Package core holds the shared vocabulary of the server side: players,
// request/response shapes and error codes. It deliberately contains no
// rules logic; that lives in internal/engine.
package core

import (
	"github.com/google/uuid"

	"chesskit/internal/engine"
)

// Player is a seat at the board.
type Player struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Color engine.Color `json:"-"`
}

// PlayerConfig is the request-side shape of a player.
type PlayerConfig struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
}

// NewPlayer creates a Player from PlayerConfig with a fresh ID.
func NewPlayer(config PlayerConfig, color engine.Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Name:  config.Name,
		Color: color,
	}
}

// PlayersResponse carries both seats in API responses.
type PlayersResponse struct {
	White *Player `json:"white"`
	Black *Player `json:"black"`
}
