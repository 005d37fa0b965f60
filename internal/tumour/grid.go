package tumour

// Cell addresses one lattice site by row and column.
type Cell struct {
	Row int
	Col int
}

// Grid is the sparse occupancy map of the lattice. A missing key means the
// site is empty; a present key always holds a nonzero clone-id, so grid
// occupancy stays bijective with the live cell pool.
type Grid struct {
	size  int
	cells map[Cell]int
}

// NewGrid allocates an empty lattice with the given side length.
func NewGrid(size int) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{size: size, cells: make(map[Cell]int)}
}

// Size returns the lattice side length.
func (g *Grid) Size() int { return g.size }

// At returns the clone-id occupying c, or 0 when the site is empty.
func (g *Grid) At(c Cell) int { return g.cells[c] }

// Set marks c occupied by the given clone-id. Setting id 0 clears the site,
// keeping "value 0" and "key absent" indistinguishable.
func (g *Grid) Set(c Cell, id int) {
	if id == 0 {
		delete(g.cells, c)
		return
	}
	g.cells[c] = id
}

// Clear empties the site at c.
func (g *Grid) Clear(c Cell) { delete(g.cells, c) }

// Occupied returns the number of occupied sites.
func (g *Grid) Occupied() int { return len(g.cells) }

// Snapshot copies the occupancy map for archiving.
func (g *Grid) Snapshot() map[Cell]int {
	m := make(map[Cell]int, len(g.cells))
	for c, id := range g.cells {
		m[c] = id
	}
	return m
}

// mooreOffsets enumerates the 8-neighbourhood in a fixed order so neighbour
// choice stays reproducible for a given seed.
var mooreOffsets = [8][2]int{
	{-1, 1}, {0, 1}, {1, 1}, {-1, 0}, {1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// FreeNeighbors appends to buf the empty Moore-neighbourhood sites of c and
// returns the filled slice. Coordinates outside the lattice are treated as
// permanently occupied, so growth never wraps past an edge.
func (g *Grid) FreeNeighbors(c Cell, buf []Cell) []Cell {
	buf = buf[:0]
	for _, off := range mooreOffsets {
		n := Cell{Row: c.Row + off[0], Col: c.Col + off[1]}
		if n.Row < 0 || n.Row >= g.size || n.Col < 0 || n.Col >= g.size {
			continue
		}
		if g.cells[n] == 0 {
			buf = append(buf, n)
		}
	}
	return buf
}
