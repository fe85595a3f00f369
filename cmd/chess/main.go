// Package main implements the interactive terminal board for hot-seat
// play against the rules engine.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"chesskit/internal/cli"
	"chesskit/internal/service"
	clitransport "chesskit/internal/transport/cli"
)

func main() {
	svc := service.New(nil, nil)
	defer svc.Shutdown(time.Second)

	view := cli.New(os.Stdout)
	handler := clitransport.New(svc, view)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          handler.Prompt(),
		HistoryFile:     ".chesskit_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	view.ShowWelcome()

	for {
		rl.SetPrompt(handler.Prompt())

		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !handler.HandleLine(line) {
			break
		}
	}
}
