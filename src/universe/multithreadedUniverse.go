package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Universe implementation with multithreaded computation algorithm
	the field is splitted into the row bands each of which is computed by individual goroutine
	the bands write to the back buffer only, Step returns after all of them are done
*/

const (
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

type MultithreadedUniverse struct {
	*BaseUniverse
	tmpBuff   Area
	workAreas []workArea
}

//workArea describe the row band of the worker, y1 and y2 are inclusive
type workArea struct {
	y1        int
	y2        int
	liveCells int
	changed   bool
}

func NewMultithreadedUniverse(o *Options) (Universe, error) {
	base, err := NewBaseUniverse(o)
	if err != nil {
		return nil, err
	}
	mu := MultithreadedUniverse{BaseUniverse: base}
	//redefine the nextIteration
	mu.BaseUniverse.nextIteration = mu.nextIteration
	mu.tmpBuff = createArea(mu.area.Width, mu.area.Height)

	workers := mu.options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	linesPerWorker := (mu.area.Height + workers - 1) / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	}
	for y1 := 0; y1 < mu.area.Height; y1 += linesPerWorker {
		y2 := min(y1+linesPerWorker-1, mu.area.Height-1)
		mu.workAreas = append(mu.workAreas, workArea{y1: y1, y2: y2})
	}
	mu.options.Workers = len(mu.workAreas)
	mu.options.Advanced["engine"] = "multithreaded"
	mu.options.Advanced["Workers"] = len(mu.workAreas)
	mu.options.Advanced["Rows per worker"] = linesPerWorker
	return &mu, nil
}

//nextIteration calculates next state for the universe
//starts goroutines, waits for all of them and swaps the buffers
func (mu *MultithreadedUniverse) nextIteration() (liveCells int, changed bool) {
	var eg errgroup.Group
	for i := range mu.workAreas {
		wa := &mu.workAreas[i]
		eg.Go(func() error {
			mu.calcArea(wa)
			return nil
		})
	}
	//calcArea never fails, Wait is the join point
	_ = eg.Wait()
	for _, wa := range mu.workAreas {
		liveCells += wa.liveCells
		changed = changed || wa.changed
	}
	mu.area.Entities, mu.tmpBuff.Entities = mu.tmpBuff.Entities, mu.area.Entities
	return
}

//calcArea calculates new states for the cells inside workArea
//reads the front buffer only and writes its own rows of the back buffer
func (mu *MultithreadedUniverse) calcArea(wa *workArea) {
	wa.liveCells = 0
	wa.changed = false
	for y := wa.y1; y <= wa.y2; y++ {
		for x := 0; x < mu.area.Width; x++ {
			nextState := mu.cellNextState(x, y)
			if nextState {
				wa.liveCells++
			}
			wa.changed = wa.changed || nextState != mu.area.Entities[y][x]
			mu.tmpBuff.Entities[y][x] = nextState
		}
	}
}
