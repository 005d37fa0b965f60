package tumour

import (
	"errors"
	"log/slog"
	"math"

	"github.com/bezfeng/cancer-sim/internal/core"
	"github.com/bezfeng/cancer-sim/internal/params"
)

// DeathRecord notes a cell removed by the death pass and when it died.
type DeathRecord struct {
	Cell       Cell
	Generation int
}

// Tumour is the growth engine: a stochastic cellular automaton driving
// clonal expansion on a sparse 2D lattice. Each generation runs a shuffled
// division pass, merges the newborn cells, then runs a death pass. All
// state mutation is single-threaded and strictly ordered so that mutation
// ids are minted monotonically.
type Tumour struct {
	p   params.Parameters
	rng *core.RNG

	grid   *Grid
	ledger *Ledger
	pool   []Cell

	beneficial      map[int]struct{}
	mutationCounter int
	generation      int

	growth []int
	deaths []DeathRecord

	display []uint8
	seed    int64
}

var _ core.Sim = (*Tumour)(nil)

// ErrNotSeeded is returned when a run is attempted before Reset.
var ErrNotSeeded = errors.New("tumour: Reset must be called before running")

// New constructs an engine for the given (already validated) parameter
// bundle. Call Reset with a seed before stepping.
func New(p params.Parameters) *Tumour {
	return &Tumour{p: p}
}

// Name returns the simulation identifier.
func (t *Tumour) Name() string { return "tumour" }

// Size reports the lattice dimensions.
func (t *Tumour) Size() core.Size {
	return core.Size{W: t.p.MatrixSize, H: t.p.MatrixSize}
}

// Cells exposes the display buffer (empty / tumour / advantageous lineage).
func (t *Tumour) Cells() []uint8 { return t.display }

// Grid exposes the sparse lattice for archiving and tests.
func (t *Tumour) Grid() *Grid { return t.grid }

// Ledger exposes the mutation ancestry record.
func (t *Tumour) Ledger() *Ledger { return t.ledger }

// Pool exposes the live cell coordinates.
func (t *Tumour) Pool() []Cell { return t.pool }

// Population returns the current live-cell count.
func (t *Tumour) Population() int { return len(t.pool) }

// Generation returns the number of completed generations.
func (t *Tumour) Generation() int { return t.generation }

// GrowthHistory returns the population samples, two per generation (after
// the division merge and after the death pass).
func (t *Tumour) GrowthHistory() []int { return t.growth }

// Deaths returns every cell terminated by a death pass, with the
// generation it died in.
func (t *Tumour) Deaths() []DeathRecord { return t.deaths }

// Params returns the parameter bundle the engine was built with.
func (t *Tumour) Params() params.Parameters { return t.p }

// Seed returns the seed of the current run.
func (t *Tumour) Seed() int64 { return t.seed }

// Reset seeds the lattice for a fresh run: one cell at the centre in single
// mode, two cells at fixed fractional offsets in double mode. The RNG is
// seeded here, exactly once per run.
func (t *Tumour) Reset(seed int64) {
	m := t.p.MatrixSize
	t.rng = core.NewRNG(seed)
	t.seed = seed
	t.grid = NewGrid(m)
	t.pool = t.pool[:0]
	t.beneficial = make(map[int]struct{})
	t.generation = 0
	t.growth = t.growth[:0]
	t.deaths = t.deaths[:0]
	t.display = make([]uint8, m*m)

	roots := t.p.Roots()
	t.ledger = NewLedger(roots)
	t.mutationCounter = roots

	switch t.p.TumourMultiplicity {
	case params.Double:
		first := Cell{Row: int(float64(m) * 0.45), Col: int(float64(m) * 0.5)}
		second := Cell{Row: int(float64(m) * 0.65), Col: int(float64(m) * 0.51)}
		t.occupy(first, 1)
		t.occupy(second, 2)
		slog.Debug("seeded double tumour", "first", first, "second", second)
	default:
		centre := Cell{Row: m / 2, Col: m / 2}
		t.occupy(centre, 1)
		slog.Debug("seeded single tumour", "cell", centre)
	}
}

// Step advances the simulation by one generation. Newborn cells collect in
// a temporary pool and only join the live pool after the division pass, so
// a cell created this generation neither divides nor dies until the next
// one. Population size is recorded after the merge and again after the
// death pass.
func (t *Tumour) Step() {
	// Shuffling removes the bias of low clone-ids always dividing first
	// into the scarce neighbour slots.
	t.rng.Shuffle(len(t.pool), func(i, j int) { t.pool[i], t.pool[j] = t.pool[j], t.pool[i] })

	var newborn []Cell
	buf := make([]Cell, 0, 8)
	for _, cell := range t.pool {
		free := t.grid.FreeNeighbors(cell, buf)
		if len(free) == 0 {
			// Exhausted space: no division for this cell this generation.
			continue
		}
		advantaged := t.isBeneficial(t.grid.At(cell))
		prob := t.p.DivisionProbability
		if advantaged {
			prob = t.p.AdvantageousDivisionProbability
		}
		if t.rng.Bernoulli(prob) {
			newborn = t.divide(cell, advantaged, free, newborn)
		}
	}

	t.pool = append(t.pool, newborn...)
	t.growth = append(t.growth, len(t.pool))
	t.deathPass()
	t.growth = append(t.growth, len(t.pool))
	t.generation++
}

// Run executes every configured generation and returns the final VAF
// spectrum. The grid, ledger, death history and growth history remain
// readable afterwards for archiving.
func (t *Tumour) Run() ([]Bin, error) {
	if t.rng == nil {
		return nil, ErrNotSeeded
	}
	for g := 0; g < t.p.NumberOfGenerations; g++ {
		t.Step()
		slog.Debug("generation finished", "generation", g, "population", len(t.pool))
	}
	return t.Spectrum()
}

// Spectrum reconstructs every live cell's mutation list, histograms the
// whole population and applies the multiplicity model.
func (t *Tumour) Spectrum() ([]Bin, error) {
	if t.rng == nil {
		return nil, ErrNotSeeded
	}
	bins, err := Histogram(t.ReconstructAll(t.pool))
	if err != nil {
		return nil, err
	}
	return ScaleMultiplicity(bins, t.p, t.rng), nil
}

// ReconstructAll returns the root-to-leaf mutation list of each given cell.
func (t *Tumour) ReconstructAll(cells []Cell) [][]int {
	profiles := make([][]int, 0, len(cells))
	for _, c := range cells {
		profiles = append(profiles, t.ledger.MutationsOf(t.grid.At(c)))
	}
	return profiles
}

// divide places a daughter on one uniformly chosen free neighbour and runs
// the mutation step. The daughter occupies the grid immediately (blocking
// the slot for later divisions this generation) but enters the live pool
// only at the merge.
func (t *Tumour) divide(mother Cell, advantaged bool, free []Cell, newborn []Cell) []Cell {
	daughter := free[t.rng.IntN(len(free))]
	newborn = append(newborn, daughter)
	t.mutate(mother, daughter, advantaged)
	return newborn
}

// mutate decides whether this division carries a mutation event. When it
// does, replication infidelity hits both progeny: the daughter and the
// mother each fork a fresh lineage under the mother's pre-division
// lineage endpoint.
func (t *Tumour) mutate(mother, daughter Cell, advantaged bool) {
	motherID := t.grid.At(mother)
	if !t.rng.Bernoulli(t.p.MutationRate) {
		// Clean replication: the daughter inherits the mother's lineage.
		t.setCell(daughter, motherID)
		return
	}

	parent := t.ledger.Entry(motherID).Own

	t.mutationCounter++
	daughterID := t.ledger.Append(parent, t.mutationCounter)
	t.setCell(daughter, daughterID)

	if advantaged {
		// The phenotype follows the lineage: an advantaged mother's mutated
		// daughter keeps it under her fresh clone-id.
		t.beneficial[daughterID] = struct{}{}
		t.refreshDisplay(daughter)
	} else if t.rng.Bernoulli(t.p.AdvantageousMutationProbability) &&
		len(t.beneficial) == 0 &&
		t.generation == t.p.TimeOfAdvantageousMutation {
		// The single advantageous sweep, admissible only at the configured
		// generation. The draw is consumed before the gates, so RNG
		// consumption does not depend on the generation index.
		t.beneficial[daughterID] = struct{}{}
		t.refreshDisplay(daughter)
		slog.Info("advantageous mutation seeded", "clone", daughterID, "generation", t.generation)
	}

	t.mutationCounter++
	motherID = t.ledger.Append(parent, t.mutationCounter)
	t.setCell(mother, motherID)
}

// deathPass removes floor(p * |partition|) cells from each of the neutral
// and advantaged partitions of the live pool, sampled uniformly without
// replacement, using the death probability matching the partition.
func (t *Tumour) deathPass() {
	if len(t.pool) == 0 {
		return
	}
	var neutral, advantaged []int
	for i, c := range t.pool {
		if t.isBeneficial(t.grid.At(c)) {
			advantaged = append(advantaged, i)
		} else {
			neutral = append(neutral, i)
		}
	}

	doomed := make(map[int]bool)
	t.sampleDoomed(neutral, t.p.DeathProbability, doomed)
	t.sampleDoomed(advantaged, t.p.FitnessAdvantageDeathProbability, doomed)
	if len(doomed) == 0 {
		return
	}

	survivors := t.pool[:0]
	for i, c := range t.pool {
		if doomed[i] {
			t.terminate(c)
			continue
		}
		survivors = append(survivors, c)
	}
	t.pool = survivors
}

// sampleDoomed marks floor(p * len(group)) pool indices for termination.
func (t *Tumour) sampleDoomed(group []int, p float64, doomed map[int]bool) {
	k := int(math.Floor(p * float64(len(group))))
	if k <= 0 {
		return
	}
	t.rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
	for _, idx := range group[:k] {
		doomed[idx] = true
	}
}

// terminate clears a cell from the grid and records its death. Pool removal
// happens at the caller, which rebuilds the survivor list in one pass.
func (t *Tumour) terminate(c Cell) {
	t.grid.Clear(c)
	t.refreshDisplay(c)
	t.deaths = append(t.deaths, DeathRecord{Cell: c, Generation: t.generation})
}

// occupy seeds a cell into grid and pool at reset time.
func (t *Tumour) occupy(c Cell, id int) {
	t.setCell(c, id)
	t.pool = append(t.pool, c)
}

// setCell writes the grid and keeps the display buffer in sync.
func (t *Tumour) setCell(c Cell, id int) {
	t.grid.Set(c, id)
	t.refreshDisplay(c)
}

func (t *Tumour) isBeneficial(id int) bool {
	_, ok := t.beneficial[id]
	return ok
}
