package board

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid board params")

type Params struct {
	Rows      int `schema:"rows" json:"rows"`
	Cols      int `schema:"cols" json:"cols"`
	BombCount int `schema:"bombs" json:"bomb_count"`
}

var DefaultParams = Params{Rows: 8, Cols: 5, BombCount: 3}

func (p Params) Size() int {
	return p.Rows * p.Cols
}

func (p Params) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: board must have at least one row and column (have %dx%d)",
			ErrInvalidParams, p.Rows, p.Cols)
	}
	if p.BombCount < 0 || p.BombCount >= p.Size() {
		return fmt.Errorf("%w: bomb count must be in [0, %d) (have %d)",
			ErrInvalidParams, p.Size(), p.BombCount)
	}
	return nil
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p Params) CoordsToIndex(row, col int) int {
	return row*p.Cols + col
}

func (p Params) IndexToCoords(index int) (row int, col int) {
	row, col = index/p.Cols, index%p.Cols
	return
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.BombCount)
}
