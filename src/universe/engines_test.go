package universe

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestSplitRows(t *testing.T) {
	for _, tt := range []struct{ width, height, workers int }{
		{7, 1, 10}, {5, 29, 3}, {40, 15, 10}, {10, 100, 10}, {3, 31, 4}, {2, 2, 0},
	} {
		areas := splitRows(tt.width, tt.height, tt.workers)
		next := 0
		for _, a := range areas {
			if a.from != next || a.to <= a.from || a.from%tt.width != 0 || a.to%tt.width != 0 {
				t.Fatalf("%+v: bad area %+v in %+v", tt, a, areas)
			}
			next = a.to
		}
		if next != tt.width*tt.height {
			t.Fatalf("%+v: areas %+v do not cover the grid", tt, areas)
		}
		workers := tt.workers
		if workers <= 0 {
			workers = DefWorkers
		}
		if len(areas) > workers {
			t.Fatalf("%+v: %d areas for %d workers", tt, len(areas), workers)
		}
	}
}

func TestEngines_Equivalent(t *testing.T) {
	for _, d := range [][2]int{{7, 1}, {1, 7}, {13, 29}, {40, 15}} {
		for _, workers := range []int{1, 3, 10} {
			simple := DefaultOptions
			simple.Width, simple.Height = d[0], d[1]
			multi := simple
			multi.Engine = EngineMultithreaded
			multi.Workers = workers

			a, _ := newTestUniverseWithOptions(t, simple)
			b, _ := newTestUniverseWithOptions(t, multi)
			a.Randomize(0.4, rand.New(rand.NewSource(int64(workers))))
			b.Randomize(0.4, rand.New(rand.NewSource(int64(workers))))
			for i := 0; i < 8; i++ {
				a.Step()
				b.Step()
				if !reflect.DeepEqual(a.Cells(), b.Cells()) {
					t.Fatalf("%dx%d, %d workers: engines differ after step %d", d[0], d[1], workers, i+1)
				}
				if a.Status().LiveCells != b.Status().LiveCells {
					t.Fatalf("%dx%d, %d workers: live cells %d != %d", d[0], d[1], workers, a.Status().LiveCells, b.Status().LiveCells)
				}
			}
		}
	}
}

func TestEngineNames(t *testing.T) {
	for _, name := range EngineNames() {
		if _, ok := engines[name]; !ok {
			t.Fatalf("engine %q is not registered", name)
		}
	}
	if len(EngineNames()) != len(engines) {
		t.Fatal("EngineNames does not list every engine")
	}
}

func TestEngines_BufferSizeMismatch(t *testing.T) {
	o := DefaultOptions
	o.Width, o.Height = 6, 9
	cells := make([]Cell, o.Width*o.Height)
	for _, name := range EngineNames() {
		o.Engine = name
		o.Workers = 3
		iterate := engines[name](o)
		if _, err := iterate(cells, o.Width, make([]CellState, len(cells)-1)); errors.Cause(err) != ErrBufferSize {
			t.Fatalf("%s: short next buffer: %v", name, err)
		}
		if _, err := iterate(cells, o.Width, make([]CellState, len(cells))); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	//bands are split for 6x9, a smaller snapshot does not fit them
	iterate := newMultithreadedIteration(o)
	small := make([]Cell, 6*4)
	if _, err := iterate(small, 6, make([]CellState, len(small))); errors.Cause(err) != ErrBufferSize {
		t.Fatalf("bands outside the snapshot: %v", err)
	}
}

func TestStep_FailedIterationKeepsGrid(t *testing.T) {
	u, _ := newTestUniverse(t, 5, 5)
	u.SettleTemplate("blinker")
	before := u.Cells()
	var changes []Change
	u.Subscribe(ObserverFunc(func(c Change) { changes = append(changes, c) }))
	u.next = u.next[:len(u.next)-1]
	if u.Step() {
		t.Fatal("Step reported success with a broken next buffer")
	}
	if !reflect.DeepEqual(before, u.Cells()) {
		t.Fatal("grid changed by the failed step")
	}
	if st := u.Status(); st.Generation != 0 {
		t.Fatalf("generation %d after the failed step", st.Generation)
	}
	if len(changes) != 0 {
		t.Fatalf("failed step notified %v", changes)
	}
}

func TestRun_FailedIterationStops(t *testing.T) {
	u, c := newTestUniverse(t, 5, 5)
	u.SettleTemplate("blinker")
	u.Start()
	u.next = u.next[:len(u.next)-1]
	c.last().fire()
	if u.IsRunning() {
		t.Fatal("still running after the failed step")
	}
	if !c.last().stopped {
		t.Fatal("ticker is not stopped")
	}
	expectLive(t, u, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
}
