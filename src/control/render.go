package control

import (
	"fmt"

	"vimlife/src/universe"
)

//RenderModel is what the presentation layer draws after each event
//Selection is set only in Visual mode
type RenderModel struct {
	Width     int
	Height    int
	Cursor    universe.Point
	Mode      ModeKind
	Selection *universe.Rect
	Status    universe.Status
	grid      universe.Reader
}

//Alive reports the cell state, coordinates outside the grid read as dead
func (m RenderModel) Alive(x int, y int) bool {
	if m.grid == nil {
		return false
	}
	c, err := m.grid.Get(x, y)
	return err == nil && c == universe.Alive
}

//InSelection reports whether the cell lies in the visual selection
func (m RenderModel) InSelection(x int, y int) bool {
	return m.Selection != nil && m.Selection.Contains(universe.Point{X: x, Y: y})
}

//CursorVisible is false while running, the simulation owns the display then
func (m RenderModel) CursorVisible() bool {
	return m.Mode != Running
}

//Title is the header line, e.g. "Conway's Game of Life [NORMAL]"
func (m RenderModel) Title() string {
	return fmt.Sprintf("Conway's Game of Life [%v]", m.Mode)
}
