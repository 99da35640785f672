package universe

import (
	"math/rand"
	"time"
)

//Universe is the Game of Life engine as seen by a front-end
type Universe interface {
	Width() int
	Height() int
	Options() Options
	Status() Status
	IsRunning() bool
	StepInterval() time.Duration
	Cells() []CellState
	CellAt(x int, y int) CellState
	Subscribe(o Observer) (unsubscribe func())
	RegisterViewer(v Viewer) (unsubscribe func())
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string) bool
	Settle(vc [][]int) bool
	Randomize(density float64, rng *rand.Rand) bool
	ToggleCell(x int, y int) bool
	ToggleCellAt(xPx float64, yPx float64, viewportWidth float64, viewportHeight float64) bool
	SetStepInterval(d time.Duration) bool
	Start() bool
	Stop() bool
	Step() bool
	StepAsync() <-chan bool
	Reset()
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Observer
	Register(u Universe)
	Start() error
}

var _ Universe = (*BaseUniverse)(nil)
