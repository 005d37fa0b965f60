package tumour

import (
	"errors"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bezfeng/cancer-sim/internal/core"
	"github.com/bezfeng/cancer-sim/internal/params"
)

// Bin pairs a mutation id with its occurrence count across a cell set. The
// count is the raw allele count; dividing by population size to get a
// frequency is the caller's concern.
type Bin struct {
	MutationID int
	Count      float64
}

// ErrNoMutations signals that a cell set carried no mutations at all, so no
// spectrum can be built from it.
var ErrNoMutations = errors.New("tumour: no mutations in cell set")

// clonalMutationID is the tumour-founding mutation, the one amplified by
// the clonal multiplicity factor.
const clonalMutationID = 1

// Histogram flattens per-cell mutation lists into occurrence counts, one
// integer-wide bin per id from the smallest to the largest id present.
// Zero-count ids inside that range keep their bins.
func Histogram(profiles [][]int) ([]Bin, error) {
	mn, mx := 0, 0
	seen := false
	for _, profile := range profiles {
		for _, id := range profile {
			if !seen {
				mn, mx = id, id
				seen = true
				continue
			}
			if id < mn {
				mn = id
			}
			if id > mx {
				mx = id
			}
		}
	}
	if !seen {
		return nil, ErrNoMutations
	}

	counts := make([]float64, mx-mn+1)
	for _, profile := range profiles {
		for _, id := range profile {
			counts[id-mn]++
		}
	}

	bins := make([]Bin, 0, len(counts))
	for i, c := range counts {
		bins = append(bins, Bin{MutationID: mn + i, Count: c})
	}
	return bins, nil
}

// ScaleMultiplicity applies the multiplicity model to a raw histogram: the
// founder bin is replicated number_of_clonal times (clonal amplification),
// every other bin a Poisson(mutations_per_division) number of times
// (passenger mutations acquired alongside each division). Applied exactly
// once, after histogram construction, never during growth.
func ScaleMultiplicity(bins []Bin, p params.Parameters, rng *core.RNG) []Bin {
	poisson := distuv.Poisson{Lambda: float64(p.MutationsPerDivision), Src: rng.Src()}
	scaled := make([]Bin, 0, len(bins))
	for _, bin := range bins {
		copies := 0
		switch {
		case bin.MutationID == clonalMutationID:
			copies = p.NumberOfClonal
		case p.MutationsPerDivision > 0:
			copies = int(poisson.Rand())
		}
		for i := 0; i < copies; i++ {
			scaled = append(scaled, bin)
		}
	}
	return scaled
}
