package control

import (
	"log/slog"

	"vimlife/src/logging"
	"vimlife/src/universe"
)

var moves = map[Event]universe.Point{
	MoveLeft:  {X: -1},
	MoveDown:  {Y: 1},
	MoveUp:    {Y: -1},
	MoveRight: {X: 1},
}

//Controller turns the event stream into universe mutations and mode/cursor changes
//it is not safe for concurrent use, all events must come from one loop
type Controller struct {
	u      universe.Universe
	log    *slog.Logger
	cursor universe.Point
	mode   Mode
	seed   int64 //next seed for Randomize
	done   bool
}

//New creates the controller in Normal mode with the cursor at the origin
func New(u universe.Universe, seed int64, log *slog.Logger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		u:    u,
		log:  log,
		mode: NormalMode{},
		seed: seed,
	}
}

//Handle processes one event to completion
//quit is true once Quit was handled, later events are ignored
func (c *Controller) Handle(ev Event) (quit bool) {
	if c.done {
		return true
	}
	if ev == Quit {
		c.log.Debug("quit", "mode", c.mode.Kind())
		c.done = true
		return true
	}

	prev := c.mode.Kind()
	switch m := c.mode.(type) {
	case NormalMode:
		c.handleNormal(ev)
	case VisualMode:
		c.handleVisual(m, ev)
	case RunningMode:
		c.handleRunning(ev)
	}
	if next := c.mode.Kind(); next != prev {
		c.log.Debug("mode changed", "event", ev, "from", prev, "to", next, "cursor", c.cursor)
	}
	return false
}

func (c *Controller) handleNormal(ev Event) {
	switch ev {
	case MoveLeft, MoveDown, MoveUp, MoveRight:
		c.move(moves[ev])
	case ToggleCell:
		c.must(c.u.Toggle(c.cursor.X, c.cursor.Y))
	case EnterVisual:
		c.mode = VisualMode{Anchor: c.cursor}
	case PlayPause:
		c.mode = RunningMode{}
	case Reset:
		c.u.Clear()
	case StepOnce:
		c.u.Step()
	case Randomize:
		c.randomize()
	default:
		c.ignore(ev)
	}
}

func (c *Controller) handleVisual(m VisualMode, ev Event) {
	switch ev {
	case MoveLeft, MoveDown, MoveUp, MoveRight:
		c.move(moves[ev])
	case ToggleCell:
		c.u.ToggleRegion(m.Anchor, c.cursor)
		c.mode = NormalMode{}
	case Escape:
		c.mode = NormalMode{}
	case PlayPause:
		c.mode = RunningMode{}
	case Reset:
		c.u.Clear()
		c.mode = NormalMode{}
	case Randomize:
		c.randomize()
		c.mode = NormalMode{}
	default:
		c.ignore(ev)
	}
}

func (c *Controller) handleRunning(ev Event) {
	switch ev {
	case Tick:
		c.u.Step()
	case PlayPause:
		c.mode = NormalMode{}
	case Reset:
		c.u.Clear()
		c.mode = NormalMode{}
	default:
		c.ignore(ev)
	}
}

//move shifts the cursor, stopping at the grid edges
func (c *Controller) move(d universe.Point) {
	w, h := c.u.Dimensions()
	c.cursor.X = min(max(c.cursor.X+d.X, 0), w-1)
	c.cursor.Y = min(max(c.cursor.Y+d.Y, 0), h-1)
}

func (c *Controller) randomize() {
	c.u.SettleWithRandomData(c.seed)
	c.seed++
}

//ignore drops events that mean nothing in the current mode
//a stray Tick after a pause is the common case
func (c *Controller) ignore(ev Event) {
	c.log.Debug("event ignored", "event", ev, "mode", c.mode.Kind())
}

//must stops on engine errors, the cursor is always on the grid so any error is a bug
func (c *Controller) must(err error) {
	if err == nil {
		return
	}
	c.log.Error("grid invariant violated", "err", err, "cursor", c.cursor, "mode", c.mode.Kind())
	panic(err)
}

//Cursor returns the focused cell
func (c *Controller) Cursor() universe.Point {
	return c.cursor
}

//Mode returns the current mode, a VisualMode value carries the anchor
func (c *Controller) Mode() Mode {
	return c.mode
}

//Anchor returns the selection anchor, ok is false outside Visual mode
func (c *Controller) Anchor() (p universe.Point, ok bool) {
	if m, ok := c.mode.(VisualMode); ok {
		return m.Anchor, true
	}
	return universe.Point{}, false
}

//Selection returns the normalized box spanning the anchor and the cursor
func (c *Controller) Selection() (r universe.Rect, ok bool) {
	a, ok := c.Anchor()
	if !ok {
		return universe.Rect{}, false
	}
	return universe.NewRect(a, c.cursor), true
}

//Done reports whether Quit was handled
func (c *Controller) Done() bool {
	return c.done
}

//Model builds the read-only render model, it has no side effects
func (c *Controller) Model() RenderModel {
	w, h := c.u.Dimensions()
	m := RenderModel{
		Width:  w,
		Height: h,
		Cursor: c.cursor,
		Mode:   c.mode.Kind(),
		Status: c.u.Status(),
		grid:   c.u,
	}
	if r, ok := c.Selection(); ok {
		m.Selection = &r
	}
	return m
}
