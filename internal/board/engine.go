package board

import (
	"hash/maphash"
	"math/rand/v2"
)

// Engine holds the current game of a single player. Every NewGame call
// replaces the board wholesale.
type Engine struct {
	params Params
	rnd    *rand.Rand
	board  *Board
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func NewEngine(params Params, r *rand.Rand) (*Engine, error) {
	b, err := New(params, r)
	if err != nil {
		return nil, err
	}
	return &Engine{params: params, rnd: r, board: b}, nil
}

func (e *Engine) NewGame() *Board {
	// params were validated by NewEngine
	b, _ := New(e.params, e.rnd)
	e.board = b
	return e.Board()
}

func (e *Engine) Click(row, col int) GameState {
	return e.board.Reveal(row, col)
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

func (e *Engine) State() GameState {
	return e.board.State
}

func (e *Engine) Params() Params {
	return e.params
}
