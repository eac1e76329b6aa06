package control

//Event is one decoded input, the key mapping belongs to the view
type Event int

const (
	MoveLeft Event = iota
	MoveDown
	MoveUp
	MoveRight
	ToggleCell
	EnterVisual
	Escape
	PlayPause
	Reset
	Quit
	Tick
	StepOnce  //one generation while paused in Normal
	Randomize //random population, leaves Visual
)

var eventNames = [...]string{
	MoveLeft:    "MoveLeft",
	MoveDown:    "MoveDown",
	MoveUp:      "MoveUp",
	MoveRight:   "MoveRight",
	ToggleCell:  "ToggleCell",
	EnterVisual: "EnterVisual",
	Escape:      "Escape",
	PlayPause:   "PlayPause",
	Reset:       "Reset",
	Quit:        "Quit",
	Tick:        "Tick",
	StepOnce:    "StepOnce",
	Randomize:   "Randomize",
}

//Events lists every event the controller understands
func Events() []Event {
	ee := make([]Event, len(eventNames))
	for i := range ee {
		ee[i] = Event(i)
	}
	return ee
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "Unknown"
}
