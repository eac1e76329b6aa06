package universe

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

//Cell is the state of one grid position
type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

func (c Cell) String() string {
	if c {
		return "#"
	}
	return "."
}

//Area is the field where cells are living
//Entities rows share one contiguous backing slice
type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
}

//String renders the area as rows of '#' and '.' separated by spaces
func (a Area) String() string {
	var b strings.Builder
	b.Grow(a.Height * (a.Width*2 + 1))
	for _, row := range a.Entities {
		for x, e := range row {
			if x != 0 {
				b.WriteByte(' ')
			}
			b.WriteString(e.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//Options represents the Universe's configurable options
type Options struct {
	Width         int
	Height        int
	Topology      Topology
	Workers       int                    //used by the multithreaded engine only
	RandomDensity float64                //share of alive cells for SettleWithRandomData
	Advanced      map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	LiveCells     int
	IterationTime time.Duration
	Changed       bool //the last step changed at least one cell
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//default options
const (
	DefWidth         = 128
	DefHeight        = 80
	DefRandomDensity = 0.15
)

var (
	ErrOutOfBounds     = errors.New("coordinates out of bounds")
	ErrInvalidSize     = errors.New("invalid universe size")
	ErrUnknownTemplate = errors.New("unknown template")
)

var DefaultUniverseOptions = Options{
	Width:         DefWidth,
	Height:        DefHeight,
	Topology:      TopologyClamped,
	RandomDensity: DefRandomDensity,
}

var builtinTemplates = []Template{
	{"blinker", "period 2 oscillator", [][]int{{0, 0}, {1, 0}, {2, 0}}},
	{"block", "2x2 still life", [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{"glider", "the smallest spaceship", [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
	{"sample", "the test sample with 3 stable patterns", [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}},
}

//BaseUniverse is the base universe's engine
//implements Universe interface
//can be used to create different implementations by redefining nextIteration func
type BaseUniverse struct {
	options       Options
	state         Status
	area          Area
	templates     map[string]Template
	nextIteration func() (liveCells int, changed bool)
}

//NewBaseUniverse creates the BaseUniverse instance
func NewBaseUniverse(o *Options) (*BaseUniverse, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%dx%d", o.Width, o.Height)
	}

	u := BaseUniverse{
		options:   *o,
		templates: map[string]Template{},
	}
	u.options.Advanced = map[string]interface{}{"engine": "base"}
	if u.options.RandomDensity <= 0 || u.options.RandomDensity > 1 {
		u.options.RandomDensity = DefRandomDensity
	}
	//nextIteration can be implemented by successor
	u.nextIteration = u._nextIteration
	for _, tmpl := range builtinTemplates {
		u.AddTemplate(tmpl)
	}

	u.area = createArea(o.Width, o.Height)
	return &u, nil
}

//Get returns the cell state at point x, y
func (u *BaseUniverse) Get(x int, y int) (Cell, error) {
	if err := u.checkBounds(x, y); err != nil {
		return Dead, err
	}
	return u.area.Entities[y][x], nil
}

//Set overwrites the cell state at point x, y
func (u *BaseUniverse) Set(x int, y int, c Cell) error {
	if err := u.checkBounds(x, y); err != nil {
		return err
	}
	u.put(x, y, c)
	return nil
}

//Toggle inverses the cell state at point x, y
func (u *BaseUniverse) Toggle(x int, y int) error {
	if err := u.checkBounds(x, y); err != nil {
		return err
	}
	u.put(x, y, !u.area.Entities[y][x])
	return nil
}

//ToggleRegion inverses every cell of the box spanning a and b
//the part of the box outside the area is dropped
func (u *BaseUniverse) ToggleRegion(a Point, b Point) {
	r, ok := NewRect(a, b).Clamp(u.area.Width, u.area.Height)
	if !ok {
		return
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			u.put(x, y, !u.area.Entities[y][x])
		}
	}
}

//Dimensions returns the area size, constant for the universe lifetime
func (u *BaseUniverse) Dimensions() (width int, height int) {
	return u.area.Width, u.area.Height
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.templates[tmpl.Name] = tmpl
}

//Templates returns the known seeding templates sorted by name
func (u *BaseUniverse) Templates() []Template {
	names := make([]string, 0, len(u.templates))
	for name := range u.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	tt := make([]Template, 0, len(names))
	for _, name := range names {
		tt = append(tt, u.templates[name])
	}
	return tt
}

//Settle settles the universe with data
//vc - array of x,y coordinates, coordinates outside the area are skipped
func (u *BaseUniverse) Settle(vc [][]int) {
	u.settle(vc, 0, 0, Alive)
}

//SettleTemplate populates the universe with the seeding template
//the template is placed in the middle of the area
func (u *BaseUniverse) SettleTemplate(name string) error {
	tmpl, ok := u.templates[name]
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	if len(tmpl.Coordinates) == 0 {
		return nil
	}
	minX, minY := tmpl.Coordinates[0][0], tmpl.Coordinates[0][1]
	maxX, maxY := minX, minY
	for _, v := range tmpl.Coordinates {
		minX, maxX = min(minX, v[0]), max(maxX, v[0])
		minY, maxY = min(minY, v[1]), max(maxY, v[1])
	}
	dx := (u.area.Width-(maxX-minX+1))/2 - minX
	dy := (u.area.Height-(maxY-minY+1))/2 - minY
	u.settle(tmpl.Coordinates, dx, dy, Alive)
	return nil
}

//SettleWithRandomData clears the universe and populates it with random data
//the same seed always produces the same population
func (u *BaseUniverse) SettleWithRandomData(seed int64) {
	u.Clear()
	rnd := rand.New(rand.NewPCG(uint64(seed), 0))
	u.walkArea(func(x int, y int, e Cell) {
		if rnd.Float64() < u.options.RandomDensity {
			u.put(x, y, Alive)
		}
	})
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	return u.state
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Area returns current universe area (field where cells is living)
//the returned rows are replaced by the next Step, callers must not keep them
func (u *BaseUniverse) Area() Area {
	return u.area
}

//Step does the new one state calculation for entire universe
//neighbours are always counted against the previous generation
func (u *BaseUniverse) Step() {
	start := time.Now()
	liveCells, changed := u.nextIteration()
	u.state.IterationNum++
	u.state.LiveCells = liveCells
	u.state.Changed = changed
	u.state.IterationTime = time.Since(start)
}

//Clear kills all cells and resets all counters
func (u *BaseUniverse) Clear() {
	u.walkArea(func(x int, y int, e Cell) {
		u.area.Entities[y][x] = Dead
	})
	u.state = Status{}
}

//checkBounds fails with ErrOutOfBounds for coordinates outside the area
func (u *BaseUniverse) checkBounds(x int, y int) error {
	if x < 0 || y < 0 || x >= u.area.Width || y >= u.area.Height {
		return errors.Wrapf(ErrOutOfBounds, "cell %v on %dx%d area", Point{x, y}, u.area.Width, u.area.Height)
	}
	return nil
}

//put writes the in-bounds cell and keeps the live cells counter current
func (u *BaseUniverse) put(x int, y int, c Cell) {
	prev := u.area.Entities[y][x]
	if prev == c {
		return
	}
	u.area.Entities[y][x] = c
	if c {
		u.state.LiveCells++
	} else {
		u.state.LiveCells--
	}
}

//settle places the Cell at every x,y shifted by dx,dy
func (u *BaseUniverse) settle(vc [][]int, dx int, dy int, entity Cell) {
	for _, v := range vc {
		if len(v) < 2 {
			continue
		}
		x, y := v[0]+dx, v[1]+dy
		if u.checkBounds(x, y) != nil {
			continue
		}
		u.put(x, y, entity)
	}
}

//_nextIteration does one simulation cycle
//walking the area and calculating the next state for the each cell
//the simplest implementation: creates the new area buffer with full size on each call
//All cells state is calculated to the new buffer and then this buffer is stored to the universe replacing the old one
func (u *BaseUniverse) _nextIteration() (liveCells int, changed bool) {
	a := createArea(u.area.Width, u.area.Height)
	u.walkArea(func(x int, y int, e Cell) {
		nextState := u.cellNextState(x, y)
		changed = changed || nextState != e
		a.Entities[y][x] = nextState
		if nextState {
			liveCells++
		}
	})
	u.area.Entities = a.Entities
	return
}

//walkArea walk the entire area and calls the cb function for each cell
func (u *BaseUniverse) walkArea(cb func(x int, y int, entity Cell)) {
	for y := range u.area.Entities {
		for x := range u.area.Entities[y] {
			cb(x, y, u.area.Entities[y][x])
		}
	}
}

//cellNextState calculates the next state for the cell
func (u *BaseUniverse) cellNextState(x int, y int) Cell {
	liveNeighbours := 0
	area := u.area
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			nx, ny, ok := u.options.Topology.neighbour(x+i, y+j, area.Width, area.Height)
			if !ok {
				continue
			}
			if area.Entities[ny][nx] {
				liveNeighbours++
			}
		}
	}
	return applyConwayRules(liveNeighbours, area.Entities[y][x])
}

//applyConwayRules: (alive && neighbours == 2) || neighbours == 3
func applyConwayRules(neighbours int, current Cell) Cell {
	return Cell((current && neighbours == 2) || neighbours == 3)
}

//createArea allocate the new area and return the pointer
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
