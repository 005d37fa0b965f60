package tumour

import (
	"slices"

	"github.com/bezfeng/cancer-sim/internal/core"
	"github.com/bezfeng/cancer-sim/internal/params"
)

// Biopsy emulates sequencing a tissue sample smaller than the full tumour:
// it reconstructs the lineage of each sampled cell, histograms the result,
// applies the multiplicity model and returns the spectrum ordered by
// mutation id.
func (t *Tumour) Biopsy(sample []Cell) ([]Bin, error) {
	if t.rng == nil {
		return nil, ErrNotSeeded
	}
	return BiopsyFrom(t.grid.cells, t.ledger, sample, t.p, t.rng)
}

// RandomBiopsy samples n live cells uniformly without replacement and
// biopsies them. When n exceeds the population the whole pool is used.
func (t *Tumour) RandomBiopsy(n int) ([]Bin, error) {
	if t.rng == nil {
		return nil, ErrNotSeeded
	}
	if n > len(t.pool) {
		n = len(t.pool)
	}
	picks := make([]Cell, len(t.pool))
	copy(picks, t.pool)
	t.rng.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })
	return t.Biopsy(picks[:n])
}

// BiopsyFrom runs the biopsy pipeline against a bare grid snapshot and
// ledger, without a live engine. It is the reconstruction path for archived
// runs: sampling, histogramming and multiplicity scaling all happen here
// exactly as in a live biopsy.
func BiopsyFrom(grid map[Cell]int, ledger *Ledger, sample []Cell, p params.Parameters, rng *core.RNG) ([]Bin, error) {
	profiles := make([][]int, 0, len(sample))
	for _, c := range sample {
		profiles = append(profiles, ledger.MutationsOf(grid[c]))
	}
	bins, err := Histogram(profiles)
	if err != nil {
		return nil, err
	}
	scaled := ScaleMultiplicity(bins, p, rng)
	slices.SortFunc(scaled, func(a, b Bin) int { return a.MutationID - b.MutationID })
	return scaled, nil
}
