// Package cli drives the interactive terminal client: it parses command
// lines, calls the game service and renders through the view.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"chesskit/internal/cli"
	"chesskit/internal/core"
	"chesskit/internal/engine"
	"chesskit/internal/service"
)

type Handler struct {
	svc    *service.Service
	view   *cli.View
	gameID string
}

func New(svc *service.Service, view *cli.View) *Handler {
	return &Handler{
		svc:  svc,
		view: view,
	}
}

// Prompt returns the input prompt for the current game state.
func (h *Handler) Prompt() string {
	if h.gameID == "" {
		return "> "
	}
	g, err := h.svc.GetGame(h.gameID)
	if err != nil || g.Status().Over() {
		return "> "
	}
	return fmt.Sprintf("[%s]> ", g.Turn())
}

// HandleLine processes one input line. It returns false to exit.
func (h *Handler) HandleLine(line string) bool {
	cmd := cli.ParseCommand(line)

	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		h.startGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.startGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		h.handleMove(cmd.Args)

	case cli.CmdLegal:
		h.handleLegal(cmd.Args)

	case cli.CmdUndo:
		h.handleUndo(cmd.Args)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
			h.showBoard()
		}

	case cli.CmdHistory:
		g, ok := h.currentGame()
		if !ok {
			return true
		}
		h.view.ShowHistory(g.InitialFEN(), g.CurrentFEN(), g.Moves(), g.Status())

	case cli.CmdCaptured:
		g, ok := h.currentGame()
		if !ok {
			return true
		}
		state := g.Current()
		h.view.ShowCaptured(state.CapturedWhite, state.CapturedBlack)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *Handler) currentGame() (gameGetter, bool) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return nil, false
	}
	g, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return nil, false
	}
	return g, true
}

// gameGetter is the slice of the game aggregate the view needs.
type gameGetter interface {
	Current() engine.State
	InitialFEN() string
	CurrentFEN() string
	Moves() []engine.Move
	Status() engine.Status
}

func (h *Handler) startGame(fen string) {
	id := h.svc.GenerateGameID()
	err := h.svc.CreateGame(id,
		core.PlayerConfig{Name: "white"},
		core.PlayerConfig{Name: "black"},
		fen)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}

	h.gameID = id
	h.view.ShowMessage("Game started.")
	h.showBoard()
}

// parseMoveArgs accepts "e2 e4" and the compact "e2e4" form.
func parseMoveArgs(args []string) (from, to engine.Square, err error) {
	switch len(args) {
	case 1:
		text := args[0]
		if len(text) != 4 {
			return from, to, fmt.Errorf("expected a move like e2e4")
		}
		from, err = engine.ParseSquare(text[:2])
		if err != nil {
			return from, to, err
		}
		to, err = engine.ParseSquare(text[2:])
		return from, to, err
	case 2:
		from, err = engine.ParseSquare(args[0])
		if err != nil {
			return from, to, err
		}
		to, err = engine.ParseSquare(args[1])
		return from, to, err
	default:
		return from, to, fmt.Errorf("usage: move <from> <to>")
	}
}

func (h *Handler) handleMove(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}

	from, to, err := parseMoveArgs(args)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	next, err := h.svc.MakeMove(h.gameID, from, to)
	if err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %w", err))
		return
	}

	last := next.Moves[len(next.Moves)-1]
	h.view.ShowMessage(fmt.Sprintf("%s plays %s", last.Piece.Color, last.Notation))
	h.view.DisplayBoard(&next.Board)

	if next.Status.Over() {
		winner := ""
		if next.Status == engine.StatusCheckmate {
			// The side that just moved delivered the mate
			winner = last.Piece.Color.String()
		}
		h.view.ShowGameOver(next.Status, winner)
		h.gameID = ""
	} else if next.Status == engine.StatusCheck {
		h.view.ShowMessage("Check!")
	}
}

func (h *Handler) handleLegal(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game.")
		return
	}
	if len(args) < 1 {
		h.view.ShowMessage("Usage: legal <square>")
		return
	}

	from, err := engine.ParseSquare(args[0])
	if err != nil {
		h.view.ShowError(err)
		return
	}

	targets, err := h.svc.LegalMoves(h.gameID, from)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	if len(targets) == 0 {
		h.view.ShowMessage(fmt.Sprintf("No legal moves from %s", from.Algebraic()))
		return
	}

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Algebraic())
	}
	h.view.ShowMessage(fmt.Sprintf("%s: %s", from.Algebraic(), strings.Join(names, " ")))
}

func (h *Handler) handleUndo(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game.")
		return
	}

	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
			return
		}
		count = n
	}

	if err := h.svc.Undo(h.gameID, count); err != nil {
		h.view.ShowError(err)
		return
	}

	if count == 1 {
		h.view.ShowMessage("Move undone")
	} else {
		h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
	}
	h.showBoard()
}

func (h *Handler) showBoard() {
	if h.gameID == "" {
		return
	}
	g, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return
	}
	state := g.Current()
	h.view.DisplayBoard(&state.Board)
}
