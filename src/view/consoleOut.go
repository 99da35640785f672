package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"lifegrid/src/universe"
)

//ConsoleOut is the non-interactive viewer, prints the progress of the running universe
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	every     int //print the progress every N generations
	startTime time.Time
	started   bool
	done      chan struct{}
	once      sync.Once
}

var _ universe.Viewer = (*ConsoleOut)(nil)

//NewConsoleOut creates the printer writing to w
func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{
		w:     w,
		au:    aurora.NewAurora(colors),
		every: 10,
		done:  make(chan struct{}),
	}
}

//Register prints the running configuration
func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := u.Options()
	st := u.Status()
	fmt.Fprintln(c.w, c.au.Bold("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       st.Interval,
		"Max iterations": o.MaxSteps,
		"Engine":         o.Engine,
		"Live cells":     st.LiveCells,
	})
}

//Start starts the universe, Done is closed when it stops
func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	c.started = true
	fmt.Fprintln(c.w, "\nSimulation started...")
	if !c.u.Start() {
		return errors.New("the universe is already running")
	}
	return nil
}

//Done is closed when the started universe stops
func (c *ConsoleOut) Done() <-chan struct{} {
	return c.done
}

func (c *ConsoleOut) Notify(ch universe.Change) {
	switch ch.Property {
	case universe.PropertyGeneration:
		st := c.u.Status()
		if st.Generation > 0 && st.Generation%c.every == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", st.Generation, st.LiveCells)
		}
	case universe.PropertyIsGameRunning:
		if !c.started || c.u.IsRunning() {
			return
		}
		c.once.Do(func() {
			st := c.u.Status()
			fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
			c.printHashData(map[string]interface{}{
				"Last iteration": st.Generation,
				"Total time":     time.Since(c.startTime).Round(time.Millisecond),
				"Live cells":     st.LiveCells,
			})
			close(c.done)
		})
	}
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
