package universe

/*
	Simple engine with two buffers
	All cells state is calculated to the next buffer by one goroutine,
	the universe then commits this buffer replacing the old states
*/

const (
	EngineSimple        = "simple"
	EngineMultithreaded = "multithreaded"
)

//nextIteration calculates the next state of every cell of the snapshot into next
//implementations must not modify cells
type nextIteration func(cells []Cell, width int, next []CellState) (liveCells int, err error)

//engines is the registry of the available compute engines
var engines = map[string]func(o Options) nextIteration{
	EngineSimple:        newSimpleIteration,
	EngineMultithreaded: newMultithreadedIteration,
}

//EngineNames returns the names of the registered engines
func EngineNames() []string {
	return []string{EngineMultithreaded, EngineSimple}
}

func newSimpleIteration(_ Options) nextIteration {
	return func(cells []Cell, width int, next []CellState) (int, error) {
		if err := checkRange(cells, next, 0, len(cells)); err != nil {
			return 0, err
		}
		return calcRange(cells, width, next, 0, len(cells)), nil
	}
}
