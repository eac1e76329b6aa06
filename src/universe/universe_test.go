package universe

import (
	"testing"

	"github.com/pkg/errors"
)

func newTestUniverse(t *testing.T, engine string, w int, h int, topology Topology) Universe {
	t.Helper()
	o := DefaultUniverseOptions
	o.Width = w
	o.Height = h
	o.Topology = topology
	o.Workers = 4
	u, err := New(engine, &o)
	if err != nil {
		t.Fatalf("New(%q): %v", engine, err)
	}
	return u
}

func forEachEngine(t *testing.T, fn func(t *testing.T, engine string)) {
	for _, e := range EngineNames() {
		t.Run(e, func(t *testing.T) {
			fn(t, e)
		})
	}
}

func settle(t *testing.T, u Universe, pp ...Point) {
	t.Helper()
	for _, p := range pp {
		if err := u.Set(p.X, p.Y, Alive); err != nil {
			t.Fatalf("Set%v: %v", p, err)
		}
	}
}

//expectAlive checks that exactly the given cells are alive
func expectAlive(t *testing.T, u Universe, step string, alive ...Point) {
	t.Helper()
	expects := map[Point]bool{}
	for _, p := range alive {
		expects[p] = true
	}
	w, h := u.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := u.Get(x, y)
			if err != nil {
				t.Fatalf("Get(%d,%d): %v", x, y, err)
			}
			if bool(c) != expects[Point{x, y}] {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v\n%s", step, x, y, c, expects[Point{x, y}], u.Area())
			}
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		u := newTestUniverse(t, engine, 6, 4, TopologyClamped)
		for y := 0; y < 4; y++ {
			for x := 0; x < 6; x++ {
				if err := u.Set(x, y, Alive); err != nil {
					t.Fatal(err)
				}
				if c, _ := u.Get(x, y); c != Alive {
					t.Fatalf("(%d,%d) = %v after Set(Alive)", x, y, c)
				}
				//idempotent
				if err := u.Set(x, y, Alive); err != nil {
					t.Fatal(err)
				}
				if err := u.Set(x, y, Dead); err != nil {
					t.Fatal(err)
				}
				if c, _ := u.Get(x, y); c != Dead {
					t.Fatalf("(%d,%d) = %v after Set(Dead)", x, y, c)
				}
			}
		}
		if st := u.Status(); st.LiveCells != 0 {
			t.Fatalf("LiveCells = %d, expected 0", st.LiveCells)
		}
	})
}

func TestOutOfBounds(t *testing.T) {
	u := newTestUniverse(t, DefEngine, 5, 3, TopologyClamped)
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x equals width", 5, 0},
		{"y equals height", 0, 3},
		{"far away", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := u.Get(tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Get: expected ErrOutOfBounds, got %v", err)
			}
			if err := u.Set(tt.x, tt.y, Alive); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Set: expected ErrOutOfBounds, got %v", err)
			}
			if err := u.Toggle(tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Toggle: expected ErrOutOfBounds, got %v", err)
			}
		})
	}
	if st := u.Status(); st.LiveCells != 0 {
		t.Fatalf("failed calls changed the universe, LiveCells = %d", st.LiveCells)
	}
}

func TestToggleInvolution(t *testing.T) {
	u := newTestUniverse(t, DefEngine, 4, 4, TopologyClamped)
	settle(t, u, Point{1, 1})
	for _, p := range []Point{{0, 0}, {1, 1}, {3, 3}} {
		before, _ := u.Get(p.X, p.Y)
		if err := u.Toggle(p.X, p.Y); err != nil {
			t.Fatal(err)
		}
		if mid, _ := u.Get(p.X, p.Y); mid == before {
			t.Fatalf("Toggle%v did not flip the cell", p)
		}
		if err := u.Toggle(p.X, p.Y); err != nil {
			t.Fatal(err)
		}
		if after, _ := u.Get(p.X, p.Y); after != before {
			t.Fatalf("Toggle%v twice: %v, expected %v", p, after, before)
		}
	}
	if st := u.Status(); st.LiveCells != 1 {
		t.Fatalf("LiveCells = %d, expected 1", st.LiveCells)
	}
}

func TestToggleRegionOrderIndependent(t *testing.T) {
	a, b := Point{1, 4}, Point{5, 2}
	corners := [][2]Point{
		{a, b},
		{b, a},
		{{1, 2}, {5, 4}},
		{{5, 4}, {1, 2}},
	}
	var want string
	for i, c := range corners {
		u := newTestUniverse(t, DefEngine, 8, 8, TopologyClamped)
		settle(t, u, Point{2, 3}, Point{0, 0})
		u.ToggleRegion(c[0], c[1])
		got := u.Area().String()
		if i == 0 {
			want = got
			continue
		}
		if got != want {
			t.Fatalf("ToggleRegion%v differs from ToggleRegion%v:\n%s\n%s", c, corners[0], got, want)
		}
	}
	u := newTestUniverse(t, DefEngine, 8, 8, TopologyClamped)
	settle(t, u, Point{2, 3})
	u.ToggleRegion(a, b)
	//15 cells flipped, (2,3) was alive
	if st := u.Status(); st.LiveCells != 14 {
		t.Fatalf("LiveCells = %d, expected 14", st.LiveCells)
	}
	if c, _ := u.Get(2, 3); c != Dead {
		t.Fatal("(2,3) must be flipped to dead")
	}
}

func TestToggleRegionClamps(t *testing.T) {
	u := newTestUniverse(t, DefEngine, 4, 4, TopologyClamped)
	u.ToggleRegion(Point{-3, -3}, Point{1, 1})
	expectAlive(t, u, "clamped top-left", Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1})

	u.Clear()
	u.ToggleRegion(Point{10, 10}, Point{20, 20})
	expectAlive(t, u, "region outside the area")

	u.ToggleRegion(Point{3, 0}, Point{3, 99})
	expectAlive(t, u, "clamped column", Point{3, 0}, Point{3, 1}, Point{3, 2}, Point{3, 3})
}

func TestBirthWithThreeNeighbours(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		u := newTestUniverse(t, engine, 8, 8, TopologyClamped)
		settle(t, u, Point{1, 1}, Point{2, 1}, Point{1, 2})
		u.Step()
		if c, _ := u.Get(2, 2); c != Alive {
			t.Fatalf("(2,2) must be born\n%s", u.Area())
		}
		//the L closes into a block
		expectAlive(t, u, "step 1", Point{1, 1}, Point{2, 1}, Point{1, 2}, Point{2, 2})
	})
}

func TestBlinkerOscillation(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		for _, topology := range []Topology{TopologyClamped, TopologyToroidal} {
			u := newTestUniverse(t, engine, 5, 5, topology)
			settle(t, u, Point{2, 1}, Point{2, 2}, Point{2, 3})

			u.Step()
			expectAlive(t, u, topology.String()+" step 1", Point{1, 2}, Point{2, 2}, Point{3, 2})

			u.Step()
			expectAlive(t, u, topology.String()+" step 2", Point{2, 1}, Point{2, 2}, Point{2, 3})

			if st := u.Status(); st.IterationNum != 2 || st.LiveCells != 3 || !st.Changed {
				t.Fatalf("unexpected status %+v", st)
			}
		}
	})
}

func TestUnderpopulation(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		u := newTestUniverse(t, engine, 6, 6, TopologyClamped)
		for y := 1; y < 5; y++ {
			for x := 1; x < 5; x++ {
				u.Clear()
				settle(t, u, Point{x, y})
				u.Step()
				expectAlive(t, u, "isolated cell")
			}
		}
	})
}

func TestClearedUniverseStaysEmpty(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		u := newTestUniverse(t, engine, 7, 5, TopologyClamped)
		u.SettleWithRandomData(7)
		u.Clear()
		u.Step()
		expectAlive(t, u, "after clear")
		if st := u.Status(); st.LiveCells != 0 || st.Changed {
			t.Fatalf("unexpected status %+v", st)
		}
	})
}

func TestStillLifeUnchanged(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		u := newTestUniverse(t, engine, 6, 6, TopologyClamped)
		settle(t, u, Point{2, 2}, Point{3, 2}, Point{2, 3}, Point{3, 3})
		u.Step()
		if st := u.Status(); st.Changed || st.LiveCells != 4 {
			t.Fatalf("block must be stable, status %+v", st)
		}
	})
}

func TestEdgeTopology(t *testing.T) {
	forEachEngine(t, func(t *testing.T, engine string) {
		//a blinker lying on the top edge
		u := newTestUniverse(t, engine, 5, 5, TopologyClamped)
		settle(t, u, Point{0, 0}, Point{1, 0}, Point{2, 0})
		u.Step()
		expectAlive(t, u, "clamped", Point{1, 0}, Point{1, 1})

		u = newTestUniverse(t, engine, 5, 5, TopologyToroidal)
		settle(t, u, Point{0, 0}, Point{1, 0}, Point{2, 0})
		u.Step()
		expectAlive(t, u, "toroidal", Point{1, 4}, Point{1, 0}, Point{1, 1})

		//corners are neighbours of each other on a torus
		u = newTestUniverse(t, engine, 5, 5, TopologyToroidal)
		settle(t, u, Point{0, 0}, Point{4, 0}, Point{0, 4})
		u.Step()
		if c, _ := u.Get(4, 4); c != Alive {
			t.Fatalf("toroidal corner (4,4) must be born\n%s", u.Area())
		}
	})
}

func TestEnginesAgree(t *testing.T) {
	for _, topology := range []Topology{TopologyClamped, TopologyToroidal} {
		var want []string
		for _, e := range EngineNames() {
			u := newTestUniverse(t, e, 37, 23, topology)
			u.SettleWithRandomData(42)
			var got []string
			for i := 0; i < 20; i++ {
				u.Step()
				got = append(got, u.Area().String())
			}
			if want == nil {
				want = got
				continue
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("%s %s: generation %d differs", topology, e, i+1)
				}
			}
		}
	}
}

func TestSettleTemplate(t *testing.T) {
	u := newTestUniverse(t, DefEngine, 5, 5, TopologyClamped)
	if err := u.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	expectAlive(t, u, "centered blinker", Point{1, 2}, Point{2, 2}, Point{3, 2})

	if err := u.SettleTemplate("no-such"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}

	u.AddTemplate(Template{"dot", "", [][]int{{9, 9}}})
	u.Clear()
	if err := u.SettleTemplate("dot"); err != nil {
		t.Fatal(err)
	}
	expectAlive(t, u, "centered dot", Point{2, 2})

	names := []string{}
	for _, tmpl := range u.Templates() {
		names = append(names, tmpl.Name)
	}
	if len(names) != len(builtinTemplates)+1 || names[0] != "blinker" {
		t.Fatalf("unexpected templates %v", names)
	}
}

func TestSettleSkipsOutside(t *testing.T) {
	u := newTestUniverse(t, DefEngine, 3, 3, TopologyClamped)
	u.Settle([][]int{{0, 0}, {3, 0}, {-1, 2}, {2, 2}, {1}})
	expectAlive(t, u, "settle", Point{0, 0}, Point{2, 2})
}

func TestSettleWithRandomDataDeterministic(t *testing.T) {
	a := newTestUniverse(t, DefEngine, 30, 20, TopologyClamped)
	b := newTestUniverse(t, "base", 30, 20, TopologyClamped)
	a.SettleWithRandomData(99)
	b.SettleWithRandomData(99)
	if a.Area().String() != b.Area().String() {
		t.Fatal("same seed produced different populations")
	}
	if a.Status().LiveCells == 0 {
		t.Fatal("random population is empty")
	}
	b.SettleWithRandomData(100)
	if a.Area().String() == b.Area().String() {
		t.Fatal("different seeds produced the same population")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	o := DefaultUniverseOptions
	o.Width = 0
	if _, err := New(DefEngine, &o); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := New("warp", nil); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
	u, err := New("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := u.Dimensions(); w != DefWidth || h != DefHeight {
		t.Fatalf("default dimensions %dx%d", w, h)
	}
	if u.Options().Advanced["engine"] != DefEngine {
		t.Fatalf("engine = %v", u.Options().Advanced["engine"])
	}
}

func TestParseTopology(t *testing.T) {
	tests := []struct {
		in      string
		want    Topology
		wantErr bool
	}{
		{"", TopologyClamped, false},
		{"clamped", TopologyClamped, false},
		{"Toroidal", TopologyToroidal, false},
		{"wrap", TopologyToroidal, false},
		{"sphere", TopologyClamped, true},
	}
	for _, tt := range tests {
		got, err := ParseTopology(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTopology(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestRect(t *testing.T) {
	r := NewRect(Point{4, 1}, Point{2, 3})
	if r.Min != (Point{2, 1}) || r.Max != (Point{4, 3}) {
		t.Fatalf("NewRect not normalized: %v", r)
	}
	if r.Cells() != 9 {
		t.Fatalf("Cells = %d", r.Cells())
	}
	if !r.Contains(Point{2, 3}) || r.Contains(Point{5, 3}) {
		t.Fatal("Contains is wrong on the edges")
	}
	if c, ok := r.Clamp(3, 3); !ok || c.Max != (Point{2, 2}) {
		t.Fatalf("Clamp = %v, %v", c, ok)
	}
	if _, ok := r.Clamp(2, 1); ok {
		t.Fatal("box fully outside must not clamp")
	}
}
