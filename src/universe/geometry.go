package universe

import "fmt"

//Point is a cell coordinate, X is the column and Y is the row
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

//Rect is an inclusive axis-aligned box, Min is always the top-left corner
type Rect struct {
	Min Point
	Max Point
}

//NewRect builds the box spanning two corners given in any order
func NewRect(a Point, b Point) Rect {
	return Rect{
		Min: Point{min(a.X, b.X), min(a.Y, b.Y)},
		Max: Point{max(a.X, b.X), max(a.Y, b.Y)},
	}
}

//Contains reports whether p lies inside the box, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

//Clamp intersects the box with a width x height grid
//ok is false when nothing of the box is left on the grid
func (r Rect) Clamp(width int, height int) (c Rect, ok bool) {
	c = Rect{
		Min: Point{max(r.Min.X, 0), max(r.Min.Y, 0)},
		Max: Point{min(r.Max.X, width-1), min(r.Max.Y, height-1)},
	}
	ok = c.Min.X <= c.Max.X && c.Min.Y <= c.Max.Y
	return
}

//Cells returns the number of cells covered by the box
func (r Rect) Cells() int {
	return (r.Max.X - r.Min.X + 1) * (r.Max.Y - r.Min.Y + 1)
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}
