// Command biopsy reruns lineage reconstruction against an archived run,
// sampling a subset of the preserved tumour without regrowing it.
package main

import (
	"flag"
	"fmt"
	"log"
	"slices"

	"github.com/bezfeng/cancer-sim/internal/core"
	"github.com/bezfeng/cancer-sim/internal/export"
	"github.com/bezfeng/cancer-sim/internal/tumour"
)

func main() {
	archivePath := flag.String("archive", "", "state.gob produced by cancer-sim")
	n := flag.Int("n", 100, "number of cells to sample")
	seed := flag.Int64("seed", 1, "seed for the sampling and multiplicity draws")
	out := flag.String("o", "", "write the biopsy VAF here instead of stdout")
	flag.Parse()

	if *archivePath == "" {
		log.Fatal("-archive is required")
	}
	if *seed <= 0 {
		log.Fatalf("seed must be a positive integer, got %d", *seed)
	}

	arch, err := export.Load(*archivePath)
	if err != nil {
		log.Fatalf("load archive: %v", err)
	}

	// Map iteration order is random, so sort before sampling to keep the
	// draw reproducible for a given seed.
	cells := make([]tumour.Cell, 0, len(arch.Grid))
	for c := range arch.Grid {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b tumour.Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})

	rng := core.NewRNG(*seed)
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	if *n < len(cells) {
		cells = cells[:*n]
	}

	vaf, err := tumour.BiopsyFrom(arch.Grid, tumour.Restore(arch.Ledger), cells, arch.Params, rng)
	if err != nil {
		log.Fatalf("biopsy: %v", err)
	}

	if *out != "" {
		if err := export.WriteVAF(*out, vaf); err != nil {
			log.Fatalf("write biopsy: %v", err)
		}
		return
	}
	for _, bin := range vaf {
		fmt.Printf("%d\t%g\n", bin.MutationID, bin.Count)
	}
}
