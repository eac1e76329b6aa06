package universe

/*
	Universe implementation with buffers optimization
	nextIteration uses small buffer to store the current and previous lines only.
	a line is committed to the main buffer only when the line below it is calculated,
	so no neighbour is ever read from the new generation
*/

type SmallBuffUniverse struct {
	*BaseUniverse
	tmpBuff Area
}

func NewSmallBuffUniverse(o *Options) (Universe, error) {
	base, err := NewBaseUniverse(o)
	if err != nil {
		return nil, err
	}
	su := SmallBuffUniverse{BaseUniverse: base}
	//redefine the nextIteration
	su.BaseUniverse.nextIteration = su.nextIteration
	su.tmpBuff = createArea(su.area.Width, 2)
	su.options.Advanced["engine"] = "smallBuff"
	return &su, nil
}

func (su *SmallBuffUniverse) nextIteration() (liveCells int, changed bool) {
	height := su.area.Height
	//the toroidal last line reads the first one, keep the original copy aside
	var firstLine []Cell
	if su.options.Topology == TopologyToroidal && height > 1 {
		firstLine = append(firstLine, su.area.Entities[0]...)
	}
	for y := range su.area.Entities {
		for x := range su.area.Entities[y] {
			var nextState Cell
			if y == height-1 && firstLine != nil {
				nextState = su.lastLineState(x, y, firstLine)
			} else {
				nextState = su.cellNextState(x, y)
			}
			if nextState {
				liveCells++
			}
			changed = changed || nextState != su.area.Entities[y][x]
			su.tmpBuff.Entities[1][x] = nextState
		}
		if y-1 >= 0 {
			copy(su.area.Entities[y-1], su.tmpBuff.Entities[0])
		}
		su.tmpBuff.Entities[0], su.tmpBuff.Entities[1] = su.tmpBuff.Entities[1], su.tmpBuff.Entities[0]
	}
	copy(su.area.Entities[height-1], su.tmpBuff.Entities[0])
	return
}

//lastLineState calculates the toroidal bottom line state, reading the saved first line
//instead of the already committed one
func (su *SmallBuffUniverse) lastLineState(x int, y int, firstLine []Cell) Cell {
	saved := su.area.Entities[0]
	su.area.Entities[0] = firstLine
	next := su.cellNextState(x, y)
	su.area.Entities[0] = saved
	return next
}
