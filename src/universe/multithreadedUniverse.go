package universe

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

/*
	Engine with multithreaded computation algorithm
	the field is splitted into row bands each of which is computed by individual goroutine,
	every band reads the same snapshot and writes its own part of the next buffer
*/

const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

//workArea describes the rows of the grid calculated by one worker
type workArea struct {
	from int //first cell index
	to   int //last cell index + 1
}

//splitRows splits the grid into row bands, at most workers bands with at least DefMinRowsPerWorker rows each
func splitRows(width int, height int, workers int) []workArea {
	if workers <= 0 {
		workers = DefWorkers
	}
	rowsPerWorker := height / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*workers < height {
		rowsPerWorker++
	}
	areas := make([]workArea, 0, workers)
	for y1 := 0; y1 < height; y1 += rowsPerWorker {
		y2 := y1 + rowsPerWorker
		if y2 > height {
			y2 = height
		}
		areas = append(areas, workArea{from: y1 * width, to: y2 * width})
	}
	return areas
}

func newMultithreadedIteration(o Options) nextIteration {
	areas := splitRows(o.Width, o.Height, o.Workers)
	live := make([]int, len(areas))
	return func(cells []Cell, width int, next []CellState) (liveCells int, err error) {
		var eg errgroup.Group
		for i := range areas {
			i := i
			eg.Go(func() error {
				a := areas[i]
				if err := checkRange(cells, next, a.from, a.to); err != nil {
					return errors.Wrapf(err, "worker %d", i)
				}
				live[i] = calcRange(cells, width, next, a.from, a.to)
				return nil
			})
		}
		if err = eg.Wait(); err != nil {
			return 0, err
		}
		for _, n := range live {
			liveCells += n
		}
		return liveCells, nil
	}
}
