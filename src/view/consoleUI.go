package view

import (
	"bytes"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifegrid/src/universe"
)

const (
	fieldView         = "battlefield"
	statusView        = "status"
	configurationView = "configuration"
	helpView          = "help"
	headerView        = "header"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
	enabled  func() bool //nil - always enabled
}

//ConsoleUI is the interactive terminal viewer
//the grid is scaled to the battlefield view, one character is one "pixel" of the viewport
type ConsoleUI struct {
	u       universe.Universe
	cmds    universe.Commands
	g       *gocui.Gui
	k       []keyBindings
	density float64
	pending int32 //a redraw is already queued

	liveFiller string
	deadFiller string
}

var _ universe.Viewer = (*ConsoleUI)(nil)

//NewViewTerminal creates the interactive viewer, density is used to settle the universe with random data
func NewViewTerminal(density float64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		density:    density,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, "", nil},
		{'n', "N", "Next step", t.cmdNextRound, "", t.canStep},
		{'r', "R", "Run", t.cmdRun, "", t.canStart},
		{'s', "S", "Stop", t.cmdStop, "", t.canStop},
		{'c', "C", "Clear", t.cmdClear, "", nil},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, "", t.canRandomize},
		{'+', "+", "Faster", t.cmdFaster, "", nil},
		{'-', "-", "Slower", t.cmdSlower, "", nil},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, fieldView, t.canToggle},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//Register binds the viewer to the universe
func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	t.cmds = universe.NewCommands(u, t.density, rand.New(rand.NewSource(time.Now().UnixNano())))
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

//Notify queues one redraw for any number of changes notified before it is done
//it is called on the universe goroutines, gocui views are touched on the main loop only
func (t *ConsoleUI) Notify(_ universe.Change) {
	if !atomic.CompareAndSwapInt32(&t.pending, 0, 1) {
		return
	}
	t.g.Update(func(g *gocui.Gui) error {
		atomic.StoreInt32(&t.pending, 0)
		return nil
	})
}

func (t *ConsoleUI) renderField(v *gocui.View) {
	v.Clear()
	maxW, maxH := v.Size()
	if maxW <= 0 || maxH <= 0 {
		return
	}
	w, h := t.u.Width(), t.u.Height()
	cells := t.u.Cells()

	var b bytes.Buffer
	for row := 0; row < maxH; row++ {
		//line feed char
		if row != 0 {
			b.WriteByte(10)
		}
		for col := 0; col < maxW; col++ {
			x, y := viewportCell(col, row, maxW, maxH, w, h)
			if cells[x+y*w] == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

//viewportCell maps the center of the character col, row of the viewport to the grid cell
//it is the same mapping ToggleCellAt applies to the mouse position
func viewportCell(col int, row int, viewportW int, viewportH int, w int, h int) (x int, y int) {
	x = int((float64(col) + 0.5) / float64(viewportW) * float64(w))
	y = int((float64(row) + 0.5) / float64(viewportH) * float64(h))
	return
}

func (t *ConsoleUI) renderStatus(v *gocui.View) {
	s := t.u.Status()
	mode := aurora.Colorize("waiting", aurora.BlueFg).String()
	if s.Running {
		mode = aurora.Colorize("running", aurora.CyanFg).String()
	}
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.Generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", s.Interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	c := t.u.Options()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
	_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Engine))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v..%v", c.MinInterval, c.MaxInterval))
	_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
}

func (t *ConsoleUI) renderHelp(v *gocui.View) {
	v.Clear()
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		if k.enabled == nil || k.enabled() {
			b.WriteString(aurora.Green(k.name).String())
		} else {
			b.WriteString(aurora.BrightBlack(k.name).String())
		}
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	_, _ = fmt.Fprintln(v, b.String())
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView(configurationView)
		_ = g.DeleteView(statusView)
		_ = g.DeleteView(fieldView)
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	v, err := g.SetView(configurationView, 0, 3, leftColumnWidth, 3+(maxY-5-3)/2)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}
	t.renderConfiguration(v)

	v, err = g.SetView(statusView, 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	t.renderStatus(v)

	v, err = g.SetView(fieldView, leftColumnWidth+1, 3, maxX-1, maxY-5)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
	}
	t.renderField(v)

	v, err = g.SetView(helpView, -1, maxY-5, maxX, maxY-3)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
	}
	t.renderHelp(v)

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView(headerView, -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			text = text[:maxX]
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) canStart() bool     { return t.cmds.Start.CanExecute() }
func (t *ConsoleUI) canStop() bool      { return t.cmds.Stop.CanExecute() }
func (t *ConsoleUI) canStep() bool      { return t.cmds.Step.CanExecute() }
func (t *ConsoleUI) canRandomize() bool { return t.cmds.Randomize.CanExecute() }
func (t *ConsoleUI) canToggle() bool    { return t.cmds.Toggle.CanExecute() }

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	t.u.Stop()
	return gocui.ErrQuit
}

//cmdNextRound steps off the main loop so the input is not blocked by the calculation
func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	if t.cmds.Step.CanExecute() {
		t.u.StepAsync()
	}
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.cmds.Start.Execute()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.cmds.Stop.Execute()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.cmds.Reset.Execute()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.cmds.Randomize.Execute()
	return nil
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	t.changeInterval(0.5)
	return nil
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	t.changeInterval(2)
	return nil
}

//changeInterval scales the step interval, out of range values are replaced by the nearest bound
func (t *ConsoleUI) changeInterval(factor float64) {
	o := t.u.Options()
	d := time.Duration(float64(t.u.StepInterval()) * factor)
	if !t.u.SetStepInterval(d) {
		if d < o.MinInterval {
			t.u.SetStepInterval(o.MinInterval)
		} else {
			t.u.SetStepInterval(o.MaxInterval)
		}
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	maxW, maxH := v.Size()
	t.cmds.Toggle.Execute(float64(cx)+0.5, float64(cy)+0.5, float64(maxW), float64(maxH))
	return nil
}
