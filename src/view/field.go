package view

import (
	"strings"

	"github.com/logrusorgru/aurora"

	"vimlife/src/control"
	"vimlife/src/universe"
)

//cellWidth is the number of terminal columns one cell takes
const cellWidth = 2

//palette holds the already coloured glyph of every cell look
type palette struct {
	live       string
	dead       string
	cursorLive string
	cursorDead string
	selLive    string
	selDead    string
}

const (
	liveGlyph = "██"
	deadGlyph = "░░"
)

func newPalette() palette {
	return palette{
		live:       aurora.Green(liveGlyph).String(),
		dead:       deadGlyph,
		cursorLive: aurora.Black(liveGlyph).BgWhite().String(),
		cursorDead: aurora.Black(deadGlyph).BgWhite().String(),
		selLive:    aurora.Blue(liveGlyph).BgWhite().String(),
		selDead:    aurora.White(deadGlyph).BgBlue().String(),
	}
}

func (p palette) glyph(m control.RenderModel, x int, y int) string {
	alive := m.Alive(x, y)
	switch {
	case m.CursorVisible() && m.Cursor == (universe.Point{X: x, Y: y}):
		if alive {
			return p.cursorLive
		}
		return p.cursorDead
	case m.InSelection(x, y):
		if alive {
			return p.selLive
		}
		return p.selDead
	case alive:
		return p.live
	}
	return p.dead
}

//renderField draws cols x rows cells of the model starting at origin
func renderField(m control.RenderModel, p palette, origin universe.Point, cols int, rows int) string {
	var b strings.Builder
	for y := origin.Y; y < origin.Y+rows && y < m.Height; y++ {
		//line feed char
		if y != origin.Y {
			b.WriteByte(10)
		}
		for x := origin.X; x < origin.X+cols && x < m.Width; x++ {
			b.WriteString(p.glyph(m, x, y))
		}
	}
	return b.String()
}

//scroll moves the origin along one axis the least needed to keep the cursor visible
func scroll(origin int, cursor int, visible int, total int) int {
	if visible <= 0 || visible >= total {
		return 0
	}
	if cursor < origin {
		origin = cursor
	}
	if cursor >= origin+visible {
		origin = cursor - visible + 1
	}
	return min(max(origin, 0), total-visible)
}

//viewport returns the new field origin for a view of w x h terminal cells
func viewport(origin universe.Point, m control.RenderModel, w int, h int) universe.Point {
	return universe.Point{
		X: scroll(origin.X, m.Cursor.X, w/cellWidth, m.Width),
		Y: scroll(origin.Y, m.Cursor.Y, h, m.Height),
	}
}
