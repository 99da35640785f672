package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"lifegrid/src/universe"
	"lifegrid/src/view"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	density     float64
	template    string
	config      string
	noColors    bool
}

const defDensity = 0.3

func main() {
	eo, uo := initOptions()

	u, err := universe.New(uo, nil)
	if err != nil {
		log.Fatalf("can not create the universe: %v", err)
	}

	if eo.randomData {
		u.Randomize(eo.density, nil)
	} else if !u.SettleTemplate(eo.template) {
		log.Fatalf("unknown template %q", eo.template)
	}

	if eo.interactive {
		v := view.NewViewTerminal(eo.density)
		u.RegisterViewer(v)
		if err = v.Start(); err != nil {
			log.Panicln(err)
		}
		u.Stop()
		return
	}

	fmt.Printf("\"The Life\" game simulation started...\n")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	if err = runHeadless(u, os.Stdout, !eo.noColors, interrupt); err != nil {
		log.Fatal(err)
	}
}

//runHeadless runs the universe printing the progress until it stops by itself or the interrupt is received
func runHeadless(u universe.Universe, w io.Writer, colors bool, interrupt <-chan os.Signal) error {
	c := view.NewConsoleOut(w, colors)
	unsubscribe := u.RegisterViewer(c)
	defer unsubscribe()
	if err := c.Start(); err != nil {
		return errors.Wrap(err, "[runHeadless] can not start")
	}
	select {
	case <-c.Done():
	case <-interrupt:
		u.Stop()
		<-c.Done()
	}
	return nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	fo := universe.DefaultOptions
	uo = &fo
	eo = &EnvOptions{density: defDensity, template: "sample"}
	args := os.Args[1:]

	p, err := parseFlags(args, eo, uo)
	if err != nil {
		p.ShowHelpAndExit(err.Error())
	}

	if eo.config != "" {
		file, err := universe.LoadOptions(eo.config)
		if err != nil {
			p.ShowHelpAndExit(err.Error())
		}
		//second pass over the file values: only the flags given on the command line override them
		if p, err = parseFlags(args, eo, &file); err != nil {
			p.ShowHelpAndExit(err.Error())
		}
		uo = &file
	}

	if err = uo.Validate(); err != nil {
		p.ShowHelpAndExit(err.Error())
	}

	if !eo.interactive {
		p.ShowHelp()
	}

	return
}

//parseFlags parses args into eo and uo, options missing in args keep their current values
func parseFlags(args []string, eo *EnvOptions, uo *universe.Options) (*flaggy.Parser, error) {
	templateNames := make([]string, 0, len(universe.DefaultTemplates))
	for _, t := range universe.DefaultTemplates {
		templateNames = append(templateNames, t.Name)
	}

	p := flaggy.NewParser("lifegrid")
	p.Description = "Conway's Game of Life on a bounded grid"
	p.ShowHelpOnUnexpected = true
	p.String(&eo.config, "c", "config", "JSON file with the simulation options, the flags override its values")
	p.Int(&uo.Width, "x", "width", "Width of a simulation field")
	p.Int(&uo.Height, "y", "height", "Height of a simulation field")
	p.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	p.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 - unlimited")
	p.Bool(&uo.StopWhenStable, "b", "stable", "Stop the simulation when nothing changes")
	p.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	p.Int(&uo.Workers, "w", "workers", "Workers of the multithreaded engine")
	p.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	p.Bool(&eo.randomData, "r", "random", "Settle with random data")
	p.Float64(&eo.density, "d", "density", "Density of the random data, 0..1")
	p.String(&eo.template, "t", "template", "Template to settle ["+strings.Join(templateNames, "|")+"]")
	p.Bool(&eo.noColors, "", "noColors", "Disable the colored output of the non-interactive mode")

	return p, p.ParseArgs(args)
}
