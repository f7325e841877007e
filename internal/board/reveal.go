package board

import "github.com/gammazero/deque"

var orthogonal = [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Reveal opens the cell at row:col and flood-fills from it.
//
// The clicked cell always opens and always expands, whatever its own count.
// Cells reached by the expansion open too, but only zero-count ones expand
// further. Expansion walks orthogonal neighbours only and never opens a bomb.
//
// Clicks on a finished board, outside the grid, or on an open cell are
// no-ops. Clicking a bomb loses the game and leaves the bomb closed.
func (b *Board) Reveal(row, col int) GameState {
	if b.State.Terminal() || !b.InBounds(row, col) {
		return b.State
	}

	index := b.CoordsToIndex(row, col)
	target := &b.Cells[index]
	if target.Open {
		return b.State
	}
	if target.Bomb {
		b.State = Lost
		return b.State
	}

	target.Open = true

	var todo deque.Deque[int]
	b.pushOrthogonal(&todo, index)
	for todo.Len() > 0 {
		i := todo.PopFront()
		cell := &b.Cells[i]
		if cell.Open || cell.Bomb {
			continue
		}
		cell.Open = true
		if cell.Adjacent == 0 {
			b.pushOrthogonal(&todo, i)
		}
	}

	if b.allSafeCellsOpen() {
		b.State = Won
	}
	return b.State
}

func (b *Board) pushOrthogonal(todo *deque.Deque[int], index int) {
	row, col := b.IndexToCoords(index)
	for _, d := range orthogonal {
		r, c := row+d.Row, col+d.Col
		if b.InBounds(r, c) && !b.Cells[b.CoordsToIndex(r, c)].Open {
			todo.PushBack(b.CoordsToIndex(r, c))
		}
	}
}

func (b *Board) allSafeCellsOpen() bool {
	for _, c := range b.Cells {
		if !c.Open && !c.Bomb {
			return false
		}
	}
	return true
}
