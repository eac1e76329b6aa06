package control

import "vimlife/src/universe"

//ModeKind names the interaction mode for the presentation layer
type ModeKind int

const (
	Normal ModeKind = iota
	Visual
	Running
)

var modeNames = map[ModeKind]string{
	Normal:  "NORMAL",
	Visual:  "VISUAL",
	Running: "RUNNING",
}

func (k ModeKind) String() string {
	if n, ok := modeNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}

//Mode is the controller state
//only VisualMode carries a selection anchor, so an anchor cannot exist outside Visual
type Mode interface {
	Kind() ModeKind
}

//NormalMode is paused, Space toggles the cell under the cursor
type NormalMode struct{}

//VisualMode is paused with a selection spanning Anchor and the cursor
type VisualMode struct {
	Anchor universe.Point
}

//RunningMode lets clock ticks advance the generations
type RunningMode struct{}

func (NormalMode) Kind() ModeKind  { return Normal }
func (VisualMode) Kind() ModeKind  { return Visual }
func (RunningMode) Kind() ModeKind { return Running }
