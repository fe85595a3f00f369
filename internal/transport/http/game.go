package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chesskit/internal/core"
	"chesskit/internal/engine"
	"chesskit/internal/game"
	"chesskit/internal/service"
)

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}

func gameNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
		Error: "game not found",
		Code:  core.ErrGameNotFound,
	})
}

// validatedBody retrieves the body parsed and checked by the validation
// middleware. On a nil return the error response has already been written
// and the accompanying error must be returned as-is.
func validatedBody[T any](c *fiber.Ctx) (*T, error) {
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}
	return body, nil
}

func glyphs(pieces []engine.Piece) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, string(p.Glyph()))
	}
	return out
}

func toGameResponse(gameID string, g *game.Game) core.GameResponse {
	state := g.Current()

	moves := make([]core.MoveInfo, 0, len(state.Moves))
	for _, m := range state.Moves {
		info := core.MoveInfo{
			From:      m.From.Algebraic(),
			To:        m.To.Algebraic(),
			Notation:  m.Notation,
			Check:     m.Check,
			Checkmate: m.Checkmate,
			Castle:    m.Castle,
			EnPassant: m.EnPassant,
		}
		if m.Promotion != engine.NoKind {
			info.Promotion = m.Promotion.Letter()
		}
		moves = append(moves, info)
	}

	return core.GameResponse{
		GameID: gameID,
		FEN:    state.FEN(),
		Turn:   state.Turn.String(),
		Status: state.Status.String(),
		Moves:  moves,
		Captured: core.CapturedPieces{
			White: glyphs(state.CapturedWhite),
			Black: glyphs(state.CapturedBlack),
		},
		Players: core.PlayersResponse{
			White: g.Player(engine.White),
			Black: g.Player(engine.Black),
		},
	}
}

// CreateGame creates a new game, optionally from a FEN position
func (h *Handler) CreateGame(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateGameRequest](c)
	if req == nil {
		return err
	}

	gameID := h.svc.GenerateGameID()
	if err := h.svc.CreateGame(gameID, req.White, req.Black, req.FEN); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "could not create game",
			Code:    core.ErrInvalidFEN,
			Details: err.Error(),
		})
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.Status(fiber.StatusCreated).JSON(toGameResponse(gameID, g))
}

// GetGame retrieves current game state
func (h *Handler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(toGameResponse(gameID, g))
}

// MakeMove submits a move as a from/to square pair
func (h *Handler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, err := validatedBody[core.MoveRequest](c)
	if req == nil {
		return err
	}

	from, err := engine.ParseSquare(req.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid source square",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}
	to, err := engine.ParseSquare(req.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid destination square",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if _, err := h.svc.MakeMove(gameID, from, to); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return gameNotFound(c)
		case errors.Is(err, engine.ErrEmptySquare),
			errors.Is(err, engine.ErrWrongTurn),
			errors.Is(err, engine.ErrIllegalMove):
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "move rejected",
				Code:    core.ErrInvalidMove,
				Details: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
				Error: "internal server error",
				Code:  core.ErrInternalError,
			})
		}
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(toGameResponse(gameID, g))
}

// LegalMoves returns the legal target squares for a piece
func (h *Handler) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	from, err := engine.ParseSquare(c.Params("square"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid square",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	targets, err := h.svc.LegalMoves(gameID, from)
	if err != nil {
		return gameNotFound(c)
	}

	resp := core.LegalMovesResponse{
		Square:  from.Algebraic(),
		Targets: make([]string, 0, len(targets)),
	}
	for _, t := range targets {
		resp.Targets = append(resp.Targets, t.Algebraic())
	}

	return c.JSON(resp)
}

// UndoMove undoes one or more moves
func (h *Handler) UndoMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, err := validatedBody[core.UndoRequest](c)
	if req == nil {
		return err
	}

	if err := h.svc.Undo(gameID, req.Count); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return gameNotFound(c)
		}
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "undo rejected",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	return c.JSON(toGameResponse(gameID, g))
}

// DeleteGame ends and cleans up a game
func (h *Handler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return gameNotFound(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the FEN and ASCII representation of the board
func (h *Handler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	state := g.Current()
	return c.JSON(core.BoardResponse{
		FEN:   state.FEN(),
		Board: engine.ASCII(&state.Board),
	})
}

// WaitGame long-polls until the game's move count differs from the
// client's, the wait times out, or the client disconnects
func (h *Handler) WaitGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	moveCount, err := strconv.Atoi(c.Query("moves", "-1"))
	if err != nil {
		moveCount = -1
	}

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return gameNotFound(c)
	}

	// Already different, return immediately
	if moveCount != g.MoveCount() {
		return c.JSON(toGameResponse(gameID, g))
	}

	ctx := c.Context()
	notify := h.svc.RegisterWait(gameID, moveCount, ctx)

	select {
	case <-notify:
		// State changed or timeout; game might have been deleted
		g, err := h.svc.GetGame(gameID)
		if err != nil {
			return gameNotFound(c)
		}
		return c.JSON(toGameResponse(gameID, g))

	case <-ctx.Done():
		// Client disconnected
		return nil
	}
}
