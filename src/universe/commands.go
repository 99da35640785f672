package universe

import "math/rand"

//Command is an action a front-end binds to its controls
type Command struct {
	name       string
	execute    func() bool
	canExecute func() bool
}

//Name returns the command name
func (c Command) Name() string {
	return c.name
}

//CanExecute reports whether Execute would have any effect now
func (c Command) CanExecute() bool {
	return c.canExecute == nil || c.canExecute()
}

//Execute runs the command, returns false without doing anything if CanExecute is false
func (c Command) Execute() bool {
	if !c.CanExecute() {
		return false
	}
	return c.execute()
}

//ToggleCommand toggles the cell under a pixel position of the front-end's viewport
type ToggleCommand struct {
	u Universe
}

func (c ToggleCommand) Name() string {
	return "Toggle"
}

func (c ToggleCommand) CanExecute() bool {
	return !c.u.IsRunning()
}

func (c ToggleCommand) Execute(xPx float64, yPx float64, viewportWidth float64, viewportHeight float64) bool {
	if !c.CanExecute() {
		return false
	}
	return c.u.ToggleCellAt(xPx, yPx, viewportWidth, viewportHeight)
}

//Commands is the set of commands of the universe
//front-ends should re-evaluate CanExecute on every change notification
type Commands struct {
	Start     Command
	Stop      Command
	Step      Command
	Reset     Command
	Randomize Command
	Toggle    ToggleCommand
}

//NewCommands creates the commands bound to the universe
//rng and density are used by the Randomize command, nil rng means a time seeded one
func NewCommands(u Universe, density float64, rng *rand.Rand) Commands {
	stopped := func() bool { return !u.IsRunning() }
	return Commands{
		Start: Command{"Start", u.Start, stopped},
		Stop:  Command{"Stop", u.Stop, u.IsRunning},
		Step:  Command{"Step", u.Step, stopped},
		Reset: Command{"Reset", func() bool {
			u.Reset()
			return true
		}, nil},
		Randomize: Command{"Randomize", func() bool {
			return u.Randomize(density, rng)
		}, stopped},
		Toggle: ToggleCommand{u},
	}
}
