package universe

/*
	Simple Universe implementation with two buffers
	All cells state is calculated to the back buffer and then the buffers are swapped
*/
type SimpleUniverse struct {
	*BaseUniverse
	tmpBuff Area
}

func NewSimpleUniverse(o *Options) (Universe, error) {
	base, err := NewBaseUniverse(o)
	if err != nil {
		return nil, err
	}
	su := SimpleUniverse{BaseUniverse: base}
	//redefine the nextIteration
	su.BaseUniverse.nextIteration = su.nextIteration
	su.tmpBuff = createArea(su.area.Width, su.area.Height)
	su.options.Advanced["engine"] = "simple"
	return &su, nil
}

func (su *SimpleUniverse) nextIteration() (liveCells int, changed bool) {
	for y := range su.area.Entities {
		for x := range su.area.Entities[y] {
			nextState := su.cellNextState(x, y)
			if nextState {
				liveCells++
			}
			changed = changed || nextState != su.area.Entities[y][x]
			su.tmpBuff.Entities[y][x] = nextState
		}
	}
	su.area.Entities, su.tmpBuff.Entities = su.tmpBuff.Entities, su.area.Entities
	return
}
