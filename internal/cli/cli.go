// Package cli is the terminal view for the interactive client: command
// parsing, themed board rendering and message output.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"chesskit/internal/engine"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdLegal
	CmdUndo
	CmdColor
	CmdHistory
	CmdCaptured
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

type View struct {
	output io.Writer
	theme  ColorTheme
	isTTY  bool
}

func New(output io.Writer) *View {
	v := &View{
		output: output,
		theme:  ThemeOff,
	}
	if f, ok := output.(*os.File); ok {
		v.isTTY = term.IsTerminal(int(f.Fd()))
	}
	if v.isTTY {
		v.theme = ThemeBrown
	}
	return v
}

// ParseCommand maps one input line to a Command.
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "move":
		return &Command{Type: CmdMove, Args: args}
	case "legal":
		return &Command{Type: CmdLegal, Args: args}
	case "undo":
		return &Command{Type: CmdUndo, Args: args}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "history":
		return &Command{Type: CmdHistory}
	case "captured":
		return &Command{Type: CmdCaptured}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume a bare move like "e2e4"
		return &Command{Type: CmdMove, Args: parts}
	}
}

func (v *View) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	if theme != ThemeOff && !v.isTTY {
		return fmt.Errorf("color themes need a terminal")
	}
	v.theme = theme
	return nil
}

func (v *View) ShowMessage(msg string) {
	fmt.Fprintln(v.output, msg)
}

func (v *View) ShowError(err error) {
	v.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (v *View) DisplayBoard(b *engine.Board) {
	theme := themes[v.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < 8; f++ {
			piece := b.At(engine.Square{Row: r, Col: f})
			glyph := piece.Glyph()

			if v.theme == ThemeOff {
				if piece.IsEmpty() {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", glyph))
				}
				continue
			}

			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}

			if piece.IsEmpty() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				color := theme.black
				if piece.Color == engine.White {
					color = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, glyph, theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h")

	v.ShowMessage(sb.String())
}

func (v *View) ShowHelp() {
	help := `Commands:
  new                   - Start a new game
  resume <FEN>          - Resume from a board position
  move <from> <to>      - Make a move (e.g., move e2 e4); bare "e2e4" works too
  legal <square>        - List legal targets for a piece
  undo [count]          - Undo last move(s), default 1
  history               - Show the move history
  captured              - Show captured pieces
  color <theme>         - Set board color theme (off|brown|green|gray)
  quit/exit             - Exit the program
  help/?                - Show this help message`

	v.ShowMessage(help)
}

func (v *View) ShowWelcome() {
	v.ShowMessage("chesskit interactive board")
	v.ShowMessage("Commands: new, resume <FEN>, move <from> <to>, legal <square>, undo, history, captured, help/?")
	v.ShowMessage("Example: 'resume 4k3/8/8/8/8/8/8/4K2R w K - 0 1' to start from a puzzle.")
	v.ShowMessage("")
}

// ShowHistory prints the move list in numbered pairs.
func (v *View) ShowHistory(initialFEN, currentFEN string, moves []engine.Move, status engine.Status) {
	v.ShowMessage(fmt.Sprintf("Starting FEN: %s", initialFEN))

	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i].Notation
		if i+1 < len(moves) {
			v.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1].Notation))
		} else {
			v.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
	v.ShowMessage(fmt.Sprintf("Current FEN: %s", currentFEN))
	v.ShowMessage(fmt.Sprintf("Status: %s", status))
}

// ShowCaptured prints both capture ledgers.
func (v *View) ShowCaptured(white, black []engine.Piece) {
	v.ShowMessage("Captured white pieces: " + ledger(white))
	v.ShowMessage("Captured black pieces: " + ledger(black))
}

func ledger(pieces []engine.Piece) string {
	if len(pieces) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, p := range pieces {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(p.Glyph())
	}
	return sb.String()
}

func (v *View) ShowGameOver(status engine.Status, winner string) {
	if winner != "" {
		v.ShowMessage(fmt.Sprintf("\nGame over: %s, %s wins", status, winner))
	} else {
		v.ShowMessage(fmt.Sprintf("\nGame over: %s", status))
	}
	v.ShowMessage("Start a new game with 'new' or 'resume'.")
}
