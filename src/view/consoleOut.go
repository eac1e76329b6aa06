package view

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"vimlife/src/control"
)

//StopReason tells why a headless run ended
type StopReason string

const (
	StopMaxSteps    StopReason = "step limit reached"
	StopExtinct     StopReason = "population died out"
	StopStable      StopReason = "grid stopped changing"
	StopInterrupted StopReason = "interrupted"
	StopQuit        StopReason = "quit"
)

//ConsoleOut prints the simulation progress as plain text, it needs no terminal
type ConsoleOut struct {
	w         io.Writer
	startTime time.Time
}

func NewConsoleOut(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w}
}

//Run plays the simulation through the controller until maxSteps generations (0 means no limit),
//extinction, a still grid or ctx cancellation
func (c *ConsoleOut) Run(ctx context.Context, ctl *control.Controller, maxSteps int) StopReason {
	c.Start()
	ctl.Handle(control.PlayPause)
	for {
		m := ctl.Model()
		switch {
		case ctl.Done():
			return c.Finish(m, StopQuit)
		case ctx.Err() != nil:
			return c.Finish(m, StopInterrupted)
		case maxSteps > 0 && m.Status.IterationNum >= maxSteps:
			return c.Finish(m, StopMaxSteps)
		case m.Status.LiveCells == 0:
			return c.Finish(m, StopExtinct)
		case m.Status.IterationNum > 0 && !m.Status.Changed:
			return c.Finish(m, StopStable)
		}
		ctl.Handle(control.Tick)
		c.Refresh(ctl.Model())
	}
}

func (c *ConsoleOut) Register(m control.RenderModel, settings Settings) {
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", m.Width, m.Height)
	c.printHashData(settings)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) Refresh(m control.RenderModel) {
	if m.Status.IterationNum%10 == 0 {
		_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", m.Status.IterationNum)
	}
}

//Finish prints the summary and the final grid
func (c *ConsoleOut) Finish(m control.RenderModel, reason StopReason) StopReason {
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	resultData := map[string]interface{}{
		"Last iteration": m.Status.IterationNum,
		"Total time":     totalTime,
		"Live cells":     m.Status.LiveCells,
		"Reason":         reason,
	}
	_, _ = fmt.Fprintln(c.w, "\nFinished:")
	c.printHashData(resultData)
	_, _ = fmt.Fprintln(c.w)
	for y := 0; y < m.Height; y++ {
		row := make([]byte, m.Width)
		for x := range row {
			row[x] = '.'
			if m.Alive(x, y) {
				row[x] = '#'
			}
		}
		_, _ = fmt.Fprintf(c.w, "%s\n", row)
	}
	return reason
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	for _, propName := range sortedKeys(d) {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}

func sortedKeys[M ~map[string]V, V any](d M) []string {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	return propNames
}
