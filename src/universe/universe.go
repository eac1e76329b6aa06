package universe

//Universe is the grid engine contract
//every cell mutation goes through these methods, nothing else writes the area
type Universe interface {
	Reader
	Set(x int, y int, c Cell) error
	Toggle(x int, y int) error
	ToggleRegion(a Point, b Point)
	Step()
	Clear()
	Status() Status
	Options() Options
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string) error
	Settle(vc [][]int)
	SettleWithRandomData(seed int64)
}

//Reader is the read-only part of the engine, handed to the presentation layer
type Reader interface {
	Get(x int, y int) (Cell, error)
	Dimensions() (width int, height int)
	Area() Area
}
