package universe

//CellState is the state of a single cell, either Dead or Alive
type CellState int

const (
	Dead CellState = iota
	Alive
)

func (s CellState) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

//Cell is a single unit of the grid, the zero value is a dead cell
//cells are owned by the Universe, callers get copies of their states only
type Cell struct {
	state CellState
}

//State returns the current state of the cell
func (c Cell) State() CellState {
	return c.state
}

//IsAlive reports whether the cell is alive
func (c Cell) IsAlive() bool {
	return c.state == Alive
}

//setState overwrites the state and reports whether it was changed
func (c *Cell) setState(s CellState) (changed bool) {
	if s != Alive {
		s = Dead
	}
	changed = c.state != s
	c.state = s
	return
}

//toggle flips Alive <-> Dead and returns the new state
func (c *Cell) toggle() CellState {
	if c.state == Alive {
		c.state = Dead
	} else {
		c.state = Alive
	}
	return c.state
}
