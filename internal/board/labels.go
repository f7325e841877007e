package board

import "strconv"

const BombLabel = "X"

// Label is the text a client shows for row:col. A lost board shows every
// cell, open or not.
func (b *Board) Label(row, col int) string {
	cell, ok := b.Cell(row, col)
	if !ok {
		return ""
	}
	if !cell.Open && b.State != Lost {
		return ""
	}
	if cell.Bomb {
		return BombLabel
	}
	return strconv.Itoa(cell.Adjacent)
}

func (b *Board) Labels() [][]string {
	labels := make([][]string, b.Rows)
	for row := range b.Rows {
		labels[row] = make([]string, b.Cols)
		for col := range b.Cols {
			labels[row][col] = b.Label(row, col)
		}
	}
	return labels
}
