package handlers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/board"
)

func TestParseCommands(t *testing.T) {
	cmds, err := parseCommands("  o 1 2\r\ng\n  n  \n")
	require.NoError(t, err)
	assert.Equal(t, []command{
		{name: "o", row: 1, col: 2},
		{name: "g"},
		{name: "n"},
	}, cmds)
}

func TestParseCommandsErrors(t *testing.T) {
	tests := []struct {
		text string
		line int
		msg  string
	}{
		{"", 0, "empty command"},
		{"g\n\ng", 1, "empty command"},
		{"x", 0, `unknown command "x"`},
		{"g\no 1", 1, "invalid number of arguments"},
		{"n 1", 0, "invalid number of arguments"},
		{"o a 1", 0, "row must be an int"},
		{"g\ng\no 1 b", 2, "col must be an int"},
	}
	for _, tt := range tests {
		_, err := parseCommands(tt.text)
		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr, tt.text)
		assert.Equal(t, tt.line, cmdErr.Line, tt.text)
		assert.Equal(t, tt.msg, cmdErr.Err.Error(), tt.text)
	}
}

func TestExecuteCommands(t *testing.T) {
	e, err := board.NewEngine(board.Params{Rows: 1, Cols: 3, BombCount: 0}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	executeCommands(e, []command{{name: "g"}, {name: "o", row: 0, col: 1}, {name: "n"}})
	assert.Equal(t, board.Won, e.State())

	executeCommands(e, []command{{name: "n"}})
	assert.Equal(t, board.Playing, e.State())
	assert.Zero(t, e.Board().OpenCount())
}

func TestExecuteCommandsOnFinishedGame(t *testing.T) {
	e, err := board.NewEngine(board.Params{Rows: 1, Cols: 3, BombCount: 0}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	e.Click(0, 0)
	require.Equal(t, board.Won, e.State())

	executeCommands(e, []command{{name: "g"}, {name: "n"}})
	assert.Equal(t, board.Playing, e.State())
}
