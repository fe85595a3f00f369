package core

// Request types

type CreateGameRequest struct {
	White PlayerConfig `json:"white" validate:"required"`
	Black PlayerConfig `json:"black" validate:"required"`
	FEN   string       `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	From string `json:"from" validate:"required,len=2"` // e.g. "e2"
	To   string `json:"to" validate:"required,len=2"`   // e.g. "e4"
}

type UndoRequest struct {
	Count int `json:"count" validate:"required,min=1,max=300"`
}

// Response types

type GameResponse struct {
	GameID   string          `json:"gameId"`
	FEN      string          `json:"fen"`
	Turn     string          `json:"turn"`   // "w" or "b"
	Status   string          `json:"status"` // "active", "check", "checkmate", "stalemate", "draw"
	Moves    []MoveInfo      `json:"moves"`
	Captured CapturedPieces  `json:"captured"`
	Players  PlayersResponse `json:"players"`
}

// MoveInfo is one history entry on the wire.
type MoveInfo struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Notation  string `json:"notation"`
	Check     bool   `json:"check,omitempty"`
	Checkmate bool   `json:"checkmate,omitempty"`
	Castle    bool   `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

// CapturedPieces lists removed pieces by the color of the captured piece,
// as FEN letters in capture order.
type CapturedPieces struct {
	White []string `json:"white"`
	Black []string `json:"black"`
}

type LegalMovesResponse struct {
	Square  string   `json:"square"`
	Targets []string `json:"targets"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
