package universe

import (
	"github.com/pkg/errors"
)

var ErrBufferSize = errors.New("grid buffers size mismatch")

//liveNeighbours counts the live neighbours of the cell with index i
//the grid is bounded: neighbours across the top/right/bottom/left edges are never counted
func liveNeighbours(cells []Cell, width int, i int) (n int) {
	total := len(cells)

	topEdge := i < width
	bottomEdge := i+width >= total
	leftEdge := i%width == 0
	rightEdge := (i+1)%width == 0

	alive := func(idx int) bool {
		return idx >= 0 && idx < total && cells[idx].IsAlive()
	}

	if !topEdge && alive(i-width) {
		n++
	}
	if !topEdge && !rightEdge && alive(i-width+1) {
		n++
	}
	if !rightEdge && alive(i+1) {
		n++
	}
	if !bottomEdge && !rightEdge && alive(i+width+1) {
		n++
	}
	if !bottomEdge && alive(i+width) {
		n++
	}
	if !bottomEdge && !leftEdge && alive(i+width-1) {
		n++
	}
	if !leftEdge && alive(i-1) {
		n++
	}
	if !topEdge && !leftEdge && alive(i-width-1) {
		n++
	}
	return
}

//cellNextState applies the B3/S23 rule
func cellNextState(current CellState, liveNeighbours int) CellState {
	switch {
	case liveNeighbours == 3:
		return Alive
	case liveNeighbours == 2 && current == Alive:
		return Alive
	}
	return Dead
}

//calcRange writes the next states of cells [from, to) into next
//cells is read only, so several ranges can be calculated concurrently
func calcRange(cells []Cell, width int, next []CellState, from int, to int) (liveCells int) {
	for i := from; i < to; i++ {
		s := cellNextState(cells[i].State(), liveNeighbours(cells, width, i))
		if s == Alive {
			liveCells++
		}
		next[i] = s
	}
	return
}

//checkRange verifies the range [from, to) fits both the snapshot and the next buffer
func checkRange(cells []Cell, next []CellState, from int, to int) error {
	if len(next) != len(cells) || from < 0 || from > to || to > len(cells) {
		return errors.Wrapf(ErrBufferSize, "range [%d, %d) of %d cells, next buffer %d", from, to, len(cells), len(next))
	}
	return nil
}
