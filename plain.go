package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/types"
)

const plainHelp = `Commands:
  d3          play a disc (column letter, row digit)
  undo        take back your last move and the replies to it
  hints       toggle legal move markers on the board
  moves       list your legal moves
  transcript  print the moves played so far
  help        show this text
  quit        leave the game
`

// runPlain plays a game over a line-oriented text interface. The engine
// should run the computer synchronously so every prompt follows its reply.
func runPlain(eng engine.GameEngine, in io.Reader, out io.Writer) error {
	player := eng.GetPlayerColor()
	hints := false

	eng.OnMove(func(p board.Pos, color board.Color, passed bool, state *types.BoardState) {
		switch {
		case passed:
			fmt.Fprintf(out, "%s has no move and passes\n", color)
		case color != player:
			fmt.Fprintf(out, "%s plays %s\n", color, p)
		}
	})
	eng.OnGameEnd(func(outcome string) {
		fmt.Fprintf(out, "Game over: %s\n", outcome)
	})

	if err := eng.Connect(); err != nil {
		return err
	}
	defer eng.Close()

	show := func() {
		s := eng.GetBoardState()
		b := &s.Board
		if hints && !s.Finished() && s.PlayerToMove == player {
			b = b.WithHints(player)
		}
		fmt.Fprint(out, b.String())
		fmt.Fprintf(out, "Black %d  White %d\n", s.Black, s.White)
		if si := s.LastSearch; si != nil {
			fmt.Fprintf(out, "Search: %s score %+d, %d nodes in %dms\n", si.Move, si.Score, si.Nodes, si.ElapsedMs)
		}
	}

	fmt.Fprintf(out, "You play %s. Type help for commands.\n", player)
	show()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", player.Short())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch cmd {
		case "":
		case "quit", "q", "exit":
			return nil
		case "help", "?":
			fmt.Fprint(out, plainHelp)
		case "undo", "u":
			if err := eng.Undo(); err != nil {
				fmt.Fprintf(out, "Can't undo: %s\n", err)
				continue
			}
			show()
		case "hints", "v":
			hints = !hints
			show()
		case "moves":
			s := eng.GetBoardState()
			if s.Finished() || s.PlayerToMove != player {
				fmt.Fprintln(out, "No moves to play")
				continue
			}
			names := make([]string, len(s.Legal))
			for i, p := range s.Legal {
				names[i] = p.String()
			}
			fmt.Fprintln(out, strings.Join(names, " "))
		case "transcript":
			fmt.Fprintln(out, eng.Transcript().String())
		default:
			p, err := board.ParsePos(cmd)
			if err != nil {
				fmt.Fprintf(out, "Unknown command %q, type help for commands\n", cmd)
				continue
			}
			if err := eng.PlayMove(p); err != nil {
				fmt.Fprintf(out, "Can't play %s: %s\n", p, err)
				continue
			}
			show()
		}
	}
}
