package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSet(b *Board) map[Position]bool {
	open := make(map[Position]bool)
	for i, c := range b.Cells {
		if c.Open {
			row, col := b.IndexToCoords(i)
			open[Position{row, col}] = true
		}
	}
	return open
}

func TestRevealBombLoses(t *testing.T) {
	b := mustBoard(t, 2, 2, Position{0, 0})

	assert.Equal(t, Lost, b.Reveal(0, 0))
	assert.Equal(t, Lost, b.State)
	assert.Zero(t, b.OpenCount(), "a lost click opens nothing")
	c, _ := b.Cell(0, 0)
	assert.False(t, c.Open, "the clicked bomb stays closed")
}

func TestRevealFirstClickExpandsFromNumberedCell(t *testing.T) {
	// 2x2 with a bomb at 0:0: every safe cell counts 1. The clicked cell
	// still expands, so its orthogonal neighbours open and the game is won.
	b := mustBoard(t, 2, 2, Position{0, 0})

	assert.Equal(t, Won, b.Reveal(1, 1))
	assert.Equal(t, map[Position]bool{{0, 1}: true, {1, 0}: true, {1, 1}: true}, openSet(b))

	assert.Equal(t, Won, b.Reveal(0, 0), "a won board ignores clicks")
	assert.Equal(t, Won, b.State)
}

func TestRevealNumberedNeighbourDoesNotExpand(t *testing.T) {
	// counts: 0 1 * 1 0
	b := mustBoard(t, 1, 5, Position{0, 2})

	assert.Equal(t, Playing, b.Reveal(0, 0))
	assert.Equal(t, map[Position]bool{{0, 0}: true, {0, 1}: true}, openSet(b))

	assert.Equal(t, Won, b.Reveal(0, 4))
	assert.Equal(t, 4, b.OpenCount())
}

func TestRevealFirstClickOnNumberedCell(t *testing.T) {
	// counts: 0 1 * 1 0
	b := mustBoard(t, 1, 5, Position{0, 2})

	assert.Equal(t, Playing, b.Reveal(0, 1))
	assert.Equal(t, map[Position]bool{{0, 0}: true, {0, 1}: true}, openSet(b))
	c, _ := b.Cell(0, 2)
	assert.False(t, c.Open, "expansion never opens a bomb")
}

func TestRevealOrthogonalOnly(t *testing.T) {
	// * at 0:1 and 1:0, 2:2 is the only zero cell
	b := mustBoard(t, 3, 3, Position{0, 1}, Position{1, 0})

	assert.Equal(t, Playing, b.Reveal(2, 2))
	assert.Equal(t,
		map[Position]bool{{2, 2}: true, {1, 2}: true, {2, 1}: true},
		openSet(b),
		"the diagonal 1:1 is not reached",
	)
}

func TestRevealEmptyRowWinsInOneClick(t *testing.T) {
	for col := range 3 {
		b := mustBoard(t, 1, 3)
		for c := range 3 {
			cell, _ := b.Cell(0, c)
			assert.Zero(t, cell.Adjacent)
		}
		assert.Equal(t, Won, b.Reveal(0, col))
		assert.Equal(t, 3, b.OpenCount())
	}
}

func TestRevealIsIdempotent(t *testing.T) {
	b := mustBoard(t, 1, 5, Position{0, 2})
	b.Reveal(0, 0)
	before := b.Clone()

	assert.Equal(t, Playing, b.Reveal(0, 0))
	assert.Equal(t, Playing, b.Reveal(0, 1))
	assert.Equal(t, before, b)
}

func TestRevealOutOfBounds(t *testing.T) {
	b := mustBoard(t, 2, 3, Position{0, 0})
	before := b.Clone()

	for _, p := range []Position{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {100, 100}} {
		assert.Equal(t, Playing, b.Reveal(p.Row, p.Col))
	}
	assert.Equal(t, before, b)
}

func TestRevealAfterLossIsNoop(t *testing.T) {
	b := mustBoard(t, 1, 5, Position{0, 2})
	require.Equal(t, Lost, b.Reveal(0, 2))

	assert.Equal(t, Lost, b.Reveal(0, 0))
	assert.Zero(t, b.OpenCount())
}

// Every click on every cell of a batch of random boards must satisfy the
// flood fill invariants.
func TestRevealProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	params := []Params{
		DefaultParams,
		{Rows: 6, Cols: 6, BombCount: 4},
		{Rows: 9, Cols: 9, BombCount: 10},
		{Rows: 3, Cols: 7, BombCount: 8},
	}
	for _, p := range params {
		for range 20 {
			fresh, err := New(p, r)
			require.NoError(t, err)
			for i := range fresh.Cells {
				b := fresh.Clone()
				row, col := b.IndexToCoords(i)
				state := b.Reveal(row, col)
				checkRevealProperties(t, b, row, col, state)
			}
		}
	}
}

func checkRevealProperties(t *testing.T, b *Board, row, col int, state GameState) {
	t.Helper()
	target := b.CoordsToIndex(row, col)

	if b.Cells[target].Bomb {
		assert.Equal(t, Lost, state)
		assert.Zero(t, b.OpenCount())
		return
	}

	assert.True(t, b.Cells[target].Open)
	assert.Equal(t, b.allSafeCellsOpen(), state == Won)
	if state != Won {
		assert.Equal(t, Playing, state)
	}

	expands := func(i int) bool {
		return i == target || (b.Cells[i].Open && b.Cells[i].Adjacent == 0)
	}

	for i, c := range b.Cells {
		if c.Bomb {
			assert.False(t, c.Open, "bomb %d opened", i)
			continue
		}
		r, cc := b.IndexToCoords(i)
		reached := false
		for _, d := range orthogonal {
			nr, nc := r+d.Row, cc+d.Col
			if !b.InBounds(nr, nc) {
				continue
			}
			j := b.CoordsToIndex(nr, nc)
			if expands(j) {
				reached = true
			}
		}
		if i != target {
			assert.Equal(t, reached, c.Open,
				"cell %d:%d open=%v but reachable=%v", r, cc, c.Open, reached)
		}
	}
}
