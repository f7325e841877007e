package handlers

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/board"
)

// Commands are newline separated:
//
//	o row col // click the cell at row:col
//	n         // start a new game
//	g         // do nothing, reply with the current state
type command struct {
	name     string
	row, col int
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"n": 0,
	"o": 2,
}

type CommandError struct {
	Line int
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("col must be an int")
		return
	}
	return
}

func parseCommand(c string) (cmd command, err error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return cmd, errors.New("empty command")
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return cmd, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return cmd, errors.New("invalid number of arguments")
	}
	cmd.name = parts[0]
	if cmd.name == "o" {
		cmd.row, cmd.col, err = parseRowCol(parts[1:])
	}
	return
}

// parseCommands parses a whole batch up front so a malformed line leaves
// the game untouched.
func parseCommands(text string) ([]command, error) {
	var cmds []command
	for i, line := range byPiece(strings.TrimSpace(text), "\n") {
		cmd, err := parseCommand(line)
		if err != nil {
			return nil, &CommandError{Line: i, Err: err}
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// executeCommands applies cmds in order and stops at the first command that
// ends the game. A batch sent to a finished game still runs, so "n" after
// a no-op works.
func executeCommands(e *board.Engine, cmds []command) {
	for _, cmd := range cmds {
		before := e.State()
		switch cmd.name {
		case "o":
			e.Click(cmd.row, cmd.col)
		case "n":
			e.NewGame()
		case "g":
		}
		if !before.Terminal() && e.State().Terminal() {
			return
		}
	}
}
