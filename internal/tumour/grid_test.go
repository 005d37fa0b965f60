package tumour

import "testing"

func TestFreeNeighborsInterior(t *testing.T) {
	g := NewGrid(5)
	free := g.FreeNeighbors(Cell{Row: 2, Col: 2}, nil)
	if len(free) != 8 {
		t.Fatalf("interior cell has %d free neighbours, want 8", len(free))
	}
}

func TestFreeNeighborsCorner(t *testing.T) {
	g := NewGrid(5)
	free := g.FreeNeighbors(Cell{Row: 0, Col: 0}, nil)
	if len(free) != 3 {
		t.Fatalf("corner cell has %d free neighbours, want 3", len(free))
	}
	for _, c := range free {
		if c.Row < 0 || c.Row >= 5 || c.Col < 0 || c.Col >= 5 {
			t.Fatalf("neighbour %v escapes the lattice", c)
		}
	}
}

func TestFreeNeighborsExcludesOccupied(t *testing.T) {
	g := NewGrid(5)
	g.Set(Cell{Row: 1, Col: 2}, 1)
	g.Set(Cell{Row: 3, Col: 2}, 4)
	free := g.FreeNeighbors(Cell{Row: 2, Col: 2}, nil)
	if len(free) != 6 {
		t.Fatalf("got %d free neighbours, want 6", len(free))
	}
	for _, c := range free {
		if g.At(c) != 0 {
			t.Fatalf("occupied site %v reported free", c)
		}
	}
}

func TestSetZeroClears(t *testing.T) {
	g := NewGrid(5)
	c := Cell{Row: 2, Col: 2}
	g.Set(c, 7)
	if g.Occupied() != 1 {
		t.Fatalf("occupied = %d, want 1", g.Occupied())
	}
	g.Set(c, 0)
	if g.Occupied() != 0 || g.At(c) != 0 {
		t.Fatal("Set(c, 0) did not clear the site")
	}
}

func TestSnapshotCopies(t *testing.T) {
	g := NewGrid(5)
	g.Set(Cell{Row: 1, Col: 1}, 3)
	snap := g.Snapshot()
	snap[Cell{Row: 0, Col: 0}] = 9
	if g.Occupied() != 1 {
		t.Fatal("mutating a snapshot leaked into the grid")
	}
}
