package universe

import (
	"strings"

	"github.com/pkg/errors"
)

//Topology decides what lies beyond the area edges
type Topology int

const (
	TopologyClamped  Topology = iota //off-grid neighbours are dead
	TopologyToroidal                 //edges wrap around, corners included
)

var topologyNames = map[Topology]string{
	TopologyClamped:  "clamped",
	TopologyToroidal: "toroidal",
}

var ErrUnknownTopology = errors.New("unknown topology")

func (t Topology) String() string {
	if n, ok := topologyNames[t]; ok {
		return n
	}
	return "unknown"
}

//ParseTopology maps "clamped" or "toroidal" (also "torus", "wrap") to a Topology
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamped", "bounded":
		return TopologyClamped, nil
	case "toroidal", "torus", "wrap":
		return TopologyToroidal, nil
	}
	return TopologyClamped, errors.Wrapf(ErrUnknownTopology, "%q", s)
}

//neighbour resolves the neighbour coordinates, ok is false when it lies outside a clamped area
func (t Topology) neighbour(x int, y int, width int, height int) (nx int, ny int, ok bool) {
	if t == TopologyToroidal {
		return (x%width + width) % width, (y%height + height) % height, true
	}
	if x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, false
	}
	return x, y, true
}
