package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"lifegrid/src/universe"
)

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultOptions
	o.Width, o.Height = 8, 8
	o.Interval = o.MinInterval
	o.MaxSteps = 20
	u, err := universe.New(&o, nil)
	if err != nil {
		t.Fatal(err)
	}
	u.SettleTemplate("blinker")

	var out bytes.Buffer
	c := NewConsoleOut(&out, false)
	u.RegisterViewer(c)
	if err = c.Start(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("the universe did not stop after MaxSteps")
	}

	text := out.String()
	for _, want := range []string{
		"Running configuration:",
		"Dimension: 8 x 8",
		"Live cells: 3",
		"Simulation started...",
		"Iterations done: 10, live cells: 3",
		"Iterations done: 20, live cells: 3",
		"Finished:",
		"Last iteration: 20",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output does not contain %q:\n%s", want, text)
		}
	}
	if u.IsRunning() {
		t.Fatal("still running after Done")
	}
}

func TestConsoleOut_StartWhileRunning(t *testing.T) {
	u, err := universe.New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	u.Start()
	defer u.Stop()
	var out bytes.Buffer
	c := NewConsoleOut(&out, false)
	u.RegisterViewer(c)
	if c.Start() == nil {
		t.Fatal("Start accepted for a running universe")
	}
}

func TestViewportCell(t *testing.T) {
	tests := []struct {
		col, row, vw, vh, w, h int
		x, y                   int
	}{
		{0, 0, 10, 10, 10, 10, 0, 0},
		{9, 9, 10, 10, 10, 10, 9, 9},
		{5, 2, 100, 100, 10, 10, 0, 0},
		{55, 23, 100, 100, 10, 10, 5, 2},
		{99, 99, 100, 100, 10, 10, 9, 9},
		{3, 1, 4, 2, 40, 15, 35, 11},
	}
	for _, tt := range tests {
		x, y := viewportCell(tt.col, tt.row, tt.vw, tt.vh, tt.w, tt.h)
		if x != tt.x || y != tt.y {
			t.Errorf("viewportCell(%d, %d, %d, %d, %d, %d) = %d, %d, expected %d, %d",
				tt.col, tt.row, tt.vw, tt.vh, tt.w, tt.h, x, y, tt.x, tt.y)
		}
	}
}
