package universe

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

//Area is the field where cells are living
//Cells are stored in row-major order, index = x + y*Width
type Area struct {
	Width  int
	Height int
	Cells  []Cell
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	LiveCells     int
	IterationTime time.Duration //duration of the last step calculation
	Running       bool
	Interval      time.Duration
}

//BaseUniverse is the universe's engine, implements Universe interface
//
//Lock order is mu -> state -> area.
//mu is the update lock: it is held across the whole read-compute-commit-notify sequence of a step
//and by every other grid mutation, so only one of them is in flight at a time.
//The compute phase reads area.Cells under mu only, writers always hold both mu and area.
type BaseUniverse struct {
	options Options
	clock   Clock

	mu   sync.Mutex
	next []CellState //next generation buffer, guarded by mu

	area struct {
		Area
		sync.RWMutex
	}
	state struct {
		Status
		ticker Ticker //armed if and only if Running
		epoch  uint64 //incremented on every Start and Stop, stale ticks are ignored
		sync.Mutex
	}
	observers observers
	templates struct {
		m map[string]Template
		sync.RWMutex
	}
	nextIteration nextIteration
}

//New creates the BaseUniverse instance with all cells dead
//nil options means DefaultOptions, nil clock means RealClock
func New(o *Options, clock Clock) (*BaseUniverse, error) {
	if o == nil {
		d := DefaultOptions
		o = &d
	}
	if err := o.Validate(); err != nil {
		return nil, errors.Wrap(err, "[New] invalid options")
	}
	if clock == nil {
		clock = RealClock{}
	}
	u := &BaseUniverse{
		options: *o,
		clock:   clock,
		next:    make([]CellState, o.Width*o.Height),
	}
	u.area.Area = createArea(o.Width, o.Height)
	u.state.Interval = o.Interval
	u.nextIteration = engines[o.Engine](u.options)
	u.templates.m = make(map[string]Template, len(DefaultTemplates))
	for _, t := range DefaultTemplates {
		u.templates.m[t.Name] = t
	}
	return u, nil
}

//Width returns the grid width in cells
func (u *BaseUniverse) Width() int {
	return u.options.Width
}

//Height returns the grid height in cells
func (u *BaseUniverse) Height() int {
	return u.options.Height
}

//Options returns the universe configuration
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Status returns current universe status
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//IsRunning reports whether the universe is advancing generations on the timer
func (u *BaseUniverse) IsRunning() bool {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Running
}

//StepInterval returns the interval between the steps of the running simulation
func (u *BaseUniverse) StepInterval() time.Duration {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Interval
}

//StepIntervalMilliseconds returns StepInterval in milliseconds
func (u *BaseUniverse) StepIntervalMilliseconds() int {
	return int(u.StepInterval() / time.Millisecond)
}

//Cells returns a copy of the cell states in row-major order
func (u *BaseUniverse) Cells() []CellState {
	u.area.RLock()
	defer u.area.RUnlock()
	states := make([]CellState, len(u.area.Cells))
	for i, c := range u.area.Cells {
		states[i] = c.State()
	}
	return states
}

//CellAt returns the state of the cell at x, y, cells outside the grid are dead
func (u *BaseUniverse) CellAt(x int, y int) CellState {
	if x < 0 || y < 0 || x >= u.options.Width || y >= u.options.Height {
		return Dead
	}
	u.area.RLock()
	defer u.area.RUnlock()
	return u.area.Cells[x+y*u.options.Width].State()
}

//Subscribe registers the observer, the returned func cancels the subscription
func (u *BaseUniverse) Subscribe(o Observer) (unsubscribe func()) {
	return u.observers.subscribe(o)
}

//RegisterViewer subscribes the viewer and binds it to the universe
func (u *BaseUniverse) RegisterViewer(v Viewer) (unsubscribe func()) {
	unsubscribe = u.Subscribe(v)
	v.Register(u)
	return
}

//Start arms the step timer, does nothing if the universe is already running
func (u *BaseUniverse) Start() bool {
	u.state.Lock()
	if u.state.Running {
		u.state.Unlock()
		return false
	}
	u.state.epoch++
	epoch := u.state.epoch
	u.state.ticker = u.clock.Every(u.state.Interval, func() { u.tick(epoch) })
	u.state.Running = true
	u.state.Unlock()
	u.observers.notify(propertyChange(PropertyIsGameRunning))
	return true
}

//Stop disarms the step timer, does nothing if the universe is not running
//a step which is already calculating is finished and committed
func (u *BaseUniverse) Stop() bool {
	u.state.Lock()
	if !u.state.Running {
		u.state.Unlock()
		return false
	}
	t := u.state.ticker
	u.state.ticker = nil
	u.state.Running = false
	u.state.epoch++
	u.state.Unlock()
	t.Stop()
	u.observers.notify(propertyChange(PropertyIsGameRunning))
	return true
}

//Step does one manual simulation step, rejected while the universe is running
func (u *BaseUniverse) Step() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.IsRunning() {
		return false
	}
	_, _, ok := u.advance()
	return ok
}

//StepAsync does Step on its own goroutine, returns immediately
//the channel receives the Step result and is closed
func (u *BaseUniverse) StepAsync() <-chan bool {
	done := make(chan bool, 1)
	go func() {
		done <- u.Step()
		close(done)
	}()
	return done
}

//Reset stops the universe and kills all cells, resets the counters
func (u *BaseUniverse) Reset() {
	u.Stop()
	u.mu.Lock()
	defer u.mu.Unlock()
	u.area.Lock()
	var changes []Change
	for i := range u.area.Cells {
		if u.area.Cells[i].setState(Dead) {
			changes = append(changes, Change{Property: PropertyCellState, Index: i, State: Dead})
		}
	}
	u.area.Unlock()
	u.state.Lock()
	u.state.Generation = 0
	u.state.LiveCells = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	changes = append(changes, propertyChange(PropertyGridCells), propertyChange(PropertyGeneration))
	u.observers.notify(changes...)
}

//ToggleCellAt inverses the cell under the pixel position x, y of the viewport
//rejected while running, for non-positive viewport dimensions and for positions mapped outside the grid
func (u *BaseUniverse) ToggleCellAt(xPx float64, yPx float64, viewportWidth float64, viewportHeight float64) bool {
	for _, v := range []float64{xPx, yPx, viewportWidth, viewportHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return false
	}
	w, h := u.options.Width, u.options.Height
	cellX := math.Floor(xPx / viewportWidth * float64(w))
	cellY := math.Floor(yPx / viewportHeight * float64(h))
	index := cellX + cellY*float64(w)
	if index < 0 || index >= float64(w*h) {
		return false
	}
	return u.toggleIndex(int(index))
}

//ToggleCell inverses the cell at the grid position x, y, rejected while running
func (u *BaseUniverse) ToggleCell(x int, y int) bool {
	if x < 0 || y < 0 || x >= u.options.Width || y >= u.options.Height {
		return false
	}
	return u.toggleIndex(x + y*u.options.Width)
}

//SetStepInterval changes the step interval, values outside [MinInterval, MaxInterval] are rejected
//the armed timer gets the new period without restarting the run
func (u *BaseUniverse) SetStepInterval(d time.Duration) bool {
	if !u.options.intervalInRange(d) {
		return false
	}
	u.state.Lock()
	changed := u.state.Interval != d
	u.state.Interval = d
	if changed && u.state.ticker != nil {
		u.state.ticker.Reset(d)
	}
	u.state.Unlock()
	if changed {
		u.observers.notify(propertyChange(PropertyStepInterval))
	}
	return true
}

//Settle makes the cells alive at the given [x, y] coordinates, rejected while running
//coordinates outside the grid are skipped
func (u *BaseUniverse) Settle(vc [][]int) bool {
	return u.bulkUpdate(func(cells []Cell, changes []Change) []Change {
		for _, v := range vc {
			if len(v) < 2 || v[0] < 0 || v[1] < 0 || v[0] >= u.options.Width || v[1] >= u.options.Height {
				continue
			}
			i := v[0] + v[1]*u.options.Width
			if cells[i].setState(Alive) {
				changes = append(changes, Change{Property: PropertyCellState, Index: i, State: Alive})
			}
		}
		return changes
	})
}

//Randomize populates the whole universe with random data, every cell is alive with the probability density
//rejected while running or for density outside [0, 1], nil rng means a time seeded one
func (u *BaseUniverse) Randomize(density float64, rng *rand.Rand) bool {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return false
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return u.bulkUpdate(func(cells []Cell, changes []Change) []Change {
		for i := range cells {
			s := Dead
			if rng.Float64() < density {
				s = Alive
			}
			if cells[i].setState(s) {
				changes = append(changes, Change{Property: PropertyCellState, Index: i, State: s})
			}
		}
		return changes
	})
}

//tick is called by the armed timer
func (u *BaseUniverse) tick(epoch uint64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.Lock()
	current := u.state.Running && u.state.epoch == epoch
	u.state.Unlock()
	if !current {
		return
	}
	changed, liveCells, ok := u.advance()
	if !ok {
		u.Stop()
		return
	}
	maxSteps := u.options.MaxSteps
	if (maxSteps > 0 && u.Status().Generation >= maxSteps) ||
		(u.options.StopWhenStable && (!changed || liveCells == 0)) {
		u.Stop()
	}
}

//advance calculates and commits one generation, the caller holds mu
func (u *BaseUniverse) advance() (changed bool, liveCells int, ok bool) {
	start := time.Now()
	//the grid is written under mu only, the snapshot can be read without the area lock
	liveCells, err := u.nextIteration(u.area.Cells, u.area.Width, u.next)
	if err != nil {
		log.Printf("[advance] generation %d is not calculated: %v", u.Status().Generation+1, err)
		return false, 0, false
	}

	var changes []Change
	u.area.Lock()
	for i, s := range u.next {
		if u.area.Cells[i].setState(s) {
			changes = append(changes, Change{Property: PropertyCellState, Index: i, State: s})
		}
	}
	u.area.Unlock()

	u.state.Lock()
	u.state.Generation++
	u.state.LiveCells = liveCells
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()

	changed = len(changes) > 0
	changes = append(changes, propertyChange(PropertyGeneration))
	u.observers.notify(changes...)
	return changed, liveCells, true
}

//toggleIndex inverses the cell with index i
func (u *BaseUniverse) toggleIndex(i int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.IsRunning() {
		return false
	}
	u.area.Lock()
	s := u.area.Cells[i].toggle()
	u.area.Unlock()
	u.state.Lock()
	if s == Alive {
		u.state.LiveCells++
	} else {
		u.state.LiveCells--
	}
	u.state.Unlock()
	u.observers.notify(Change{Property: PropertyCellState, Index: i, State: s})
	return true
}

//bulkUpdate applies fn to the cells under the update lock, rejected while running
//fn appends the changes it made, GridCells is notified after them
func (u *BaseUniverse) bulkUpdate(fn func(cells []Cell, changes []Change) []Change) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.IsRunning() {
		return false
	}
	u.area.Lock()
	changes := fn(u.area.Cells, nil)
	liveCells := countLive(u.area.Cells)
	u.area.Unlock()
	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.Unlock()
	changes = append(changes, propertyChange(PropertyGridCells))
	u.observers.notify(changes...)
	return true
}

func countLive(cells []Cell) (n int) {
	for _, c := range cells {
		if c.IsAlive() {
			n++
		}
	}
	return
}

//createArea allocates the new area with all cells dead
func createArea(width int, height int) Area {
	return Area{Width: width, Height: height, Cells: make([]Cell, width*height)}
}
