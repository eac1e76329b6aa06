package view

import (
	"github.com/jroimartin/gocui"

	"vimlife/src/control"
)

type keyBindings struct {
	key   interface{}
	event control.Event
}

type helpEntry struct {
	name  string
	descr string
}

//defaultKeyBindings maps physical keys to controller events
func defaultKeyBindings() []keyBindings {
	return []keyBindings{
		{'h', control.MoveLeft},
		{gocui.KeyArrowLeft, control.MoveLeft},
		{'j', control.MoveDown},
		{gocui.KeyArrowDown, control.MoveDown},
		{'k', control.MoveUp},
		{gocui.KeyArrowUp, control.MoveUp},
		{'l', control.MoveRight},
		{gocui.KeyArrowRight, control.MoveRight},
		{gocui.KeySpace, control.ToggleCell},
		{'v', control.EnterVisual},
		{gocui.KeyEsc, control.Escape},
		{gocui.KeyEnter, control.PlayPause},
		{'r', control.Reset},
		{'q', control.Quit},
		{gocui.KeyCtrlC, control.Quit},
		{'n', control.StepOnce},
		{'w', control.Randomize},
	}
}

var (
	helpReset  = helpEntry{"R", "Reset"}
	helpMove   = helpEntry{"hjkl/←↓↑→", "Move"}
	helpPlay   = helpEntry{"Enter", "Play/Pause"}
	helpRandom = helpEntry{"W", "Random"}
	helpQuit   = helpEntry{"Q", "Quit"}

	helpLines = map[control.ModeKind][]helpEntry{
		control.Normal: {
			helpReset, helpMove, helpPlay,
			{"Space", "Toggle cell"},
			{"V", "Visual mode"},
			{"N", "Next step"},
			helpRandom, helpQuit,
		},
		control.Visual: {
			helpReset, helpMove, helpPlay,
			{"Space", "Toggle selection"},
			{"Esc", "Normal mode"},
			helpRandom, helpQuit,
		},
		control.Running: {
			helpPlay, helpReset, helpQuit,
		},
	}
)
