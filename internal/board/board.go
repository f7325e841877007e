package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

var ErrInvalidBombs = errors.New("invalid bomb positions")

type Cell struct {
	Bomb     bool
	Open     bool
	Adjacent int
}

type Position struct {
	Row, Col int
}

// Board is a rows x cols grid stored row-major. It is not safe for
// concurrent use.
type Board struct {
	Params
	Cells []Cell
	State GameState
}

// New lays out a fresh board with params.BombCount bombs drawn uniformly
// without replacement.
func New(params Params, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var (
		size  = params.Size()
		bombs = make([]int, 0, params.BombCount)
		taken = make([]bool, size)
	)
	for len(bombs) < params.BombCount {
		i := r.IntN(size)
		if taken[i] {
			continue
		}
		taken[i] = true
		bombs = append(bombs, i)
	}

	return layout(params, bombs), nil
}

// NewWithBombs lays out a board with bombs at exactly the given positions.
func NewWithBombs(params Params, positions ...Position) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(positions) != params.BombCount {
		return nil, fmt.Errorf("%w: want %d positions, have %d",
			ErrInvalidBombs, params.BombCount, len(positions))
	}

	var (
		bombs = make([]int, 0, len(positions))
		taken = make(map[int]bool, len(positions))
	)
	for _, p := range positions {
		if !params.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: %d:%d is out of bounds",
				ErrInvalidBombs, p.Row, p.Col)
		}
		i := params.CoordsToIndex(p.Row, p.Col)
		if taken[i] {
			return nil, fmt.Errorf("%w: %d:%d is listed twice",
				ErrInvalidBombs, p.Row, p.Col)
		}
		taken[i] = true
		bombs = append(bombs, i)
	}

	return layout(params, bombs), nil
}

func layout(params Params, bombs []int) *Board {
	b := &Board{
		Params: params,
		Cells:  make([]Cell, params.Size()),
		State:  Playing,
	}
	for _, i := range bombs {
		b.Cells[i].Bomb = true
	}
	for i := range b.Cells {
		b.Cells[i].Adjacent = b.countAdjacentBombs(i)
	}
	return b
}

// neighborRange clips the (2*dist+1)^2 square around index to the grid.
func (b *Board) neighborRange(index int, dist int) (fromRow, toRow, fromCol, toCol int) {
	row, col := b.IndexToCoords(index)
	fromRow, toRow = max(0, row-dist), min(row+dist, b.Rows-1)
	fromCol, toCol = max(0, col-dist), min(col+dist, b.Cols-1)
	return
}

func (b *Board) countAdjacentBombs(index int) (count int) {
	for _, i := range b.Neighbors(index) {
		if b.Cells[i].Bomb {
			count++
		}
	}
	return
}

// Neighbors returns the in-bounds 8-neighbourhood of index.
func (b *Board) Neighbors(index int) []int {
	fromRow, toRow, fromCol, toCol := b.neighborRange(index, 1)
	indices := make([]int, 0, 8)
	for r := fromRow; r <= toRow; r++ {
		for c := fromCol; c <= toCol; c++ {
			if i := b.CoordsToIndex(r, c); i != index {
				indices = append(indices, i)
			}
		}
	}
	return indices
}

func (b *Board) Cell(row, col int) (cell Cell, ok bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return b.Cells[b.CoordsToIndex(row, col)], true
}

func (b *Board) BombCountOnBoard() (count int) {
	for _, c := range b.Cells {
		if c.Bomb {
			count++
		}
	}
	return
}

func (b *Board) OpenCount() (count int) {
	for _, c := range b.Cells {
		if c.Open {
			count++
		}
	}
	return
}

func (b *Board) Clone() *Board {
	clone := *b
	clone.Cells = make([]Cell, len(b.Cells))
	copy(clone.Cells, b.Cells)
	return &clone
}

// String renders the board for debug logs: '-' closed, '*' bomb on a lost
// board, digits for open cells.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Rows {
		for col := range b.Cols {
			c := b.Cells[b.CoordsToIndex(row, col)]
			switch {
			case c.Bomb && b.State == Lost:
				sb.WriteString("* ")
			case c.Open:
				sb.WriteString(strconv.Itoa(c.Adjacent) + " ")
			default:
				sb.WriteString("- ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
