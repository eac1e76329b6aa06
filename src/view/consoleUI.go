package view

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"vimlife/src/control"
	"vimlife/src/universe"
)

//Settings are the configuration values shown in the side panel
type Settings map[string]interface{}

type ConsoleUI struct {
	c        *control.Controller
	g        *gocui.Gui
	k        []keyBindings
	log      *slog.Logger
	settings Settings
	interval time.Duration
	palette  palette
	origin   universe.Point //top-left cell of the field view
}

var (
	modeDescr = map[control.ModeKind]string{
		control.Normal:  aurora.Colorize("normal", aurora.BlueFg).String(),
		control.Visual:  aurora.Colorize("visual", aurora.MagentaFg).String(),
		control.Running: aurora.Colorize("running", aurora.CyanFg).String(),
	}
	headerColor = map[control.ModeKind]gocui.Attribute{
		control.Normal:  gocui.ColorCyan,
		control.Visual:  gocui.ColorMagenta,
		control.Running: gocui.ColorGreen,
	}
)

//NewViewTerminal takes over the terminal, Start runs the event loop and releases it
//interval is the generation cadence while running
func NewViewTerminal(c *control.Controller, interval time.Duration, settings Settings, log *slog.Logger) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		c:        c,
		k:        defaultKeyBindings(),
		log:      log,
		settings: settings,
		interval: interval,
		palette:  newPalette(),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	t.g.InputEsc = true
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		ev := kb.event
		if err := t.g.SetKeybinding("", kb.key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error { return t.dispatch(ev) }); err != nil {
			return errors.Wrapf(err, "bind %v", ev)
		}
	}
	return nil
}

//Start runs the UI loop and the clock until Quit or ctx cancellation
//every event, clock ticks included, is handled inside the gocui main loop
func (t *ConsoleUI) Start(ctx context.Context) error {
	defer t.g.Close()
	loopDone := make(chan struct{})
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(loopDone)
		if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		t.clock(ctx, loopDone)
		return nil
	})
	return eg.Wait()
}

//clock delivers a Tick every interval, the controller drops the ones arriving while paused
func (t *ConsoleUI) clock(ctx context.Context, loopDone <-chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-loopDone:
			return
		case <-ctx.Done():
			t.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
			return
		case <-ticker.C:
			t.g.Update(func(*gocui.Gui) error { return t.dispatch(control.Tick) })
		}
	}
}

func (t *ConsoleUI) dispatch(ev control.Event) error {
	if t.c.Handle(ev) {
		t.log.Info("quit requested")
		return gocui.ErrQuit
	}
	return nil
}

func (t *ConsoleUI) renderField(v *gocui.View, m control.RenderModel) {
	v.Clear()
	maxW, maxH := v.Size()
	t.origin = viewport(t.origin, m, maxW, maxH)
	_, _ = fmt.Fprint(v, renderField(m, t.palette, t.origin, maxW/cellWidth, maxH))
}

func (t *ConsoleUI) renderStatus(v *gocui.View, m control.RenderModel) {
	s := m.Status
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.IterationNum))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", modeDescr[m.Mode]))
	_, _ = fmt.Fprintln(v, t.renderProp("Cursor", "%v", m.Cursor))
	if m.Selection != nil {
		_, _ = fmt.Fprintln(v, t.renderProp("Selection", "%v (%d cells)", *m.Selection, m.Selection.Cells()))
	}
	_, _ = fmt.Fprintln(v, t.renderProp("View from", "%v", t.origin))
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View, m control.RenderModel) {
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", m.Width, m.Height))
	for _, k := range sortedKeys(t.settings) {
		_, _ = fmt.Fprintln(v, t.renderProp(k, "%v", t.settings[k]))
	}
}

func (t *ConsoleUI) renderHelp(v *gocui.View, m control.RenderModel) {
	v.Clear()
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, h := range helpLines[m.Mode] {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(h.name).String())
		b.WriteString(": ")
		b.WriteString(h.descr)
	}
	_, _ = fmt.Fprintln(v, b.String())
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//layout is called by gocui before every redraw, so the model is rendered once per handled event
func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 30
	minWindowHeight := 20
	m := t.c.Model()

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small", m.Mode); err != nil {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		_ = g.DeleteView("help")
		return nil
	}
	if _, err := t.headerLayout(g, 3, m.Title(), m.Mode); err != nil {
		return err
	}

	v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Configuration"
	t.renderConfiguration(v, m)

	v, err = g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Status"
	t.renderStatus(v, m)

	v, err = g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Field"
	t.renderField(v, m)

	v, err = g.SetView("help", -1, maxY-5, maxX, maxY-3)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = false
	t.renderHelp(v, m)

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string, mode control.ModeKind) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err != gocui.ErrUnknownView {
			return nil, err
		}
		err = nil
		v.Frame = false
		v.FgColor = gocui.ColorBlack
	}
	v.BgColor = headerColor[mode]
	v.Clear()
	pad := max((maxX-len([]rune(text)))/2, 0)
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return
}
